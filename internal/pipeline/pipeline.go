// Package pipeline runs the polling loop that drives ingestion.
//
// A single goroutine ticks the ingestor at the configured interval. Store
// connectivity loss is logged and retried after the error-retry interval
// instead of crashing the daemon. Stop cancels the loop and waits for the
// in-flight tick to finish, so artifact transactions either commit or roll
// back before exit.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"scribe/internal/config"
	"scribe/internal/ingest"
	"scribe/internal/logging"
)

// Ticker is the unit of work the manager drives once per poll interval.
type Ticker interface {
	Tick(ctx context.Context) (ingest.TickSummary, error)
}

// Manager owns the ingestion poll loop.
type Manager struct {
	cfg           *config.Config
	ingestor      Ticker
	logger        *slog.Logger
	pollInterval  time.Duration
	retryInterval time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewManager constructs a manager around the given ingestor.
func NewManager(cfg *config.Config, ingestor Ticker, logger *slog.Logger) *Manager {
	return &Manager{
		cfg:           cfg,
		ingestor:      ingestor,
		logger:        logging.WithComponent(logger, "pipeline"),
		pollInterval:  time.Duration(cfg.Ingest.PollInterval) * time.Second,
		retryInterval: time.Duration(cfg.Ingest.ErrorRetryInterval) * time.Second,
	}
}

// Start begins background processing.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return errors.New("pipeline already running")
	}
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.running = true
	m.wg.Add(1)
	m.mu.Unlock()

	go m.run(runCtx)
	return nil
}

// Stop terminates background processing and waits for the in-flight tick.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel := m.cancel
	m.running = false
	m.cancel = nil
	m.mu.Unlock()

	cancel()
	m.wg.Wait()
}

// Running reports whether the poll loop is active.
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *Manager) run(ctx context.Context) {
	defer m.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		tickID := uuid.NewString()
		summary, err := m.ingestor.Tick(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			m.logger.Error("ingestion tick failed",
				logging.Error(err),
				logging.String(logging.FieldTickID, tickID),
				logging.String(logging.FieldEventType, "tick_failed"),
				logging.String(logging.FieldErrorHint, "check telemetry database access"),
			)
			if !m.sleep(ctx, m.retryInterval) {
				return
			}
			continue
		}

		if summary.Total() > 0 {
			m.logger.Info("ingestion tick complete",
				logging.String(logging.FieldTickID, tickID),
				logging.Int("persisted", summary.Persisted),
				logging.Int("skipped", summary.Skipped),
				logging.Int("failed", summary.Failed),
				logging.Int("rows", summary.Rows),
			)
		}

		if !m.sleep(ctx, m.pollInterval) {
			return
		}
	}
}

func (m *Manager) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
