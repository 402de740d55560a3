package testsupport

import (
	"context"
	"testing"
	"time"

	"scribe/internal/config"
	"scribe/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// SeedImage inserts an image row directly and returns its identifier.
func SeedImage(t testing.TB, st *store.Store, path string) int64 {
	t.Helper()

	id, err := st.InsertImage(context.Background(), store.Image{
		CapturedAt: time.Now().UTC(),
		Path:       path,
		LocationID: 2,
		RobotID:    2,
		ObjectID:   2,
	}, nil)
	if err != nil {
		t.Fatalf("store.InsertImage: %v", err)
	}
	return id
}
