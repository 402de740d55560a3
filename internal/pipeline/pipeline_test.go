package pipeline_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"scribe/internal/ingest"
	"scribe/internal/logging"
	"scribe/internal/pipeline"
	"scribe/internal/testsupport"
)

type countingTicker struct {
	ticks atomic.Int64
	err   error
}

func (c *countingTicker) Tick(ctx context.Context) (ingest.TickSummary, error) {
	c.ticks.Add(1)
	return ingest.TickSummary{}, c.err
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestManagerTicksUntilStopped(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithPollInterval(1))
	ticker := &countingTicker{}
	mgr := pipeline.NewManager(cfg, ticker, logging.NewNop())

	if err := mgr.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := mgr.Start(context.Background()); err == nil {
		t.Fatal("second Start must fail while running")
	}

	waitFor(t, 2*time.Second, func() bool { return ticker.ticks.Load() >= 1 })
	mgr.Stop()
	if mgr.Running() {
		t.Fatal("manager still running after Stop")
	}

	// No ticks after Stop.
	settled := ticker.ticks.Load()
	time.Sleep(50 * time.Millisecond)
	if ticker.ticks.Load() != settled {
		t.Fatal("ticker advanced after Stop")
	}
}

func TestManagerRetriesAfterTickError(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithPollInterval(1))
	cfg.Ingest.ErrorRetryInterval = 1
	ticker := &countingTicker{err: errors.New("database unreachable")}
	mgr := pipeline.NewManager(cfg, ticker, logging.NewNop())

	if err := mgr.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer mgr.Stop()

	waitFor(t, 5*time.Second, func() bool { return ticker.ticks.Load() >= 2 })
}

func TestManagerStopWithoutStart(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	mgr := pipeline.NewManager(cfg, &countingTicker{}, logging.NewNop())
	mgr.Stop()
}
