package scanner_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"scribe/internal/scanner"
	"scribe/internal/testsupport"
)

func TestListSortsAndFilters(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.jpg", "a.jpg", "c.txt", "d.JPG"} {
		testsupport.WriteFile(t, dir, name, "x")
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.jpg"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got := scanner.List(dir, scanner.HasExtension(".jpg"), nil)
	want := []string{"a.jpg", "b.jpg", "d.JPG"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestListExcludesSkipped(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.jpg", "b.jpg"} {
		testsupport.WriteFile(t, dir, name, "x")
	}

	got := scanner.List(dir, scanner.HasExtension(".jpg"), func(name string) bool {
		return name == "a.jpg"
	})
	want := []string{"b.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestListUnreadableDirectoryIsEmpty(t *testing.T) {
	got := scanner.List(filepath.Join(t.TempDir(), "missing"), nil, nil)
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}
