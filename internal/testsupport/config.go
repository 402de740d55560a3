package testsupport

import (
	"path/filepath"
	"testing"

	"scribe/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.FramesDir = filepath.Join(base, "frames")
	cfg.Paths.TelemetryDir = filepath.Join(base, "logs")
	cfg.Paths.LogDir = filepath.Join(base, "state")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure test directories: %v", err)
	}
	return &cfg
}

// WithPollInterval overrides the ingest poll interval (seconds).
func WithPollInterval(seconds int) ConfigOption {
	return func(c *config.Config) {
		c.Ingest.PollInterval = seconds
	}
}

// WithHostStats enables the host-stats producer with the given interval.
func WithHostStats(seconds int) ConfigOption {
	return func(c *config.Config) {
		c.HostStats.Enabled = true
		c.HostStats.Interval = seconds
	}
}
