// Package hoststats produces host-resource telemetry snapshots.
//
// When enabled, a collector goroutine samples CPU, memory, temperatures, and
// network throughput at a fixed interval and atomically rewrites the
// host-stats JSON file in the telemetry drop location. The file uses the
// same field spellings and human-readable value formatting as the external
// producers, so the ingest pipeline consumes it like any other snapshot.
package hoststats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"scribe/internal/config"
	"scribe/internal/fileutil"
	"scribe/internal/logging"
)

// snapshotFile is the filename the collector maintains in the telemetry
// directory. It must stay on the classifier's host-stats name list.
const snapshotFile = "pi5_latest.json"

const timestampLayout = "2006-01-02 15:04:05"

// Snapshot is one formatted host-resource sample.
type Snapshot struct {
	At       time.Time
	CPU      string
	RAM      string
	CPUTemp  string
	GPUTemp  string
	Upload   string
	Download string
}

// Prober samples the host. Implementations keep whatever state they need for
// rate calculations between calls.
type Prober interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

// Collector periodically writes host snapshots to the telemetry directory.
type Collector struct {
	cfg      *config.Config
	logger   *slog.Logger
	prober   Prober
	interval time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// Option customizes collector construction.
type Option func(*Collector)

// WithProber substitutes the host prober.
func WithProber(p Prober) Option {
	return func(c *Collector) {
		c.prober = p
	}
}

// NewCollector constructs a collector over the configured telemetry
// directory.
func NewCollector(cfg *config.Config, logger *slog.Logger, opts ...Option) *Collector {
	c := &Collector{
		cfg:      cfg,
		logger:   logging.WithComponent(logger, "hoststats"),
		prober:   newHostProber(),
		interval: time.Duration(cfg.HostStats.Interval) * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Path returns the snapshot file location.
func (c *Collector) Path() string {
	return filepath.Join(c.cfg.Paths.TelemetryDir, snapshotFile)
}

// Start begins background sampling.
func (c *Collector) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return errors.New("hoststats collector already running")
	}
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.running = true
	c.wg.Add(1)
	c.mu.Unlock()

	go c.run(runCtx)
	return nil
}

// Stop terminates background sampling and waits for completion.
func (c *Collector) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	cancel := c.cancel
	c.running = false
	c.cancel = nil
	c.mu.Unlock()

	cancel()
	c.wg.Wait()
}

func (c *Collector) run(ctx context.Context) {
	defer c.wg.Done()

	for {
		if err := c.collectOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			c.logger.Warn("host snapshot failed", logging.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(c.interval):
		}
	}
}

func (c *Collector) collectOnce(ctx context.Context) error {
	snap, err := c.prober.Snapshot(ctx)
	if err != nil {
		return err
	}
	return WriteSnapshot(c.Path(), snap)
}

// WriteSnapshot atomically replaces the snapshot file at path.
func WriteSnapshot(path string, snap Snapshot) error {
	at := snap.At
	if at.IsZero() {
		at = time.Now()
	}
	payload := map[string]string{
		"CPU":             snap.CPU,
		"RAM":             snap.RAM,
		"CPU Temp":        snap.CPUTemp,
		"GPU Temp":        snap.GPUTemp,
		"Upload (KB/s)":   snap.Upload,
		"Download (KB/s)": snap.Download,
		"Timestamp":       at.Format(timestampLayout),
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode host snapshot: %w", err)
	}
	return fileutil.WriteFileAtomic(path, append(data, '\n'), 0o644)
}
