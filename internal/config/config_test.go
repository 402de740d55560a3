package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scribe/internal/config"
)

func TestDefaultValidates(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadAppliesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
frames_dir = "` + filepath.Join(dir, "frames") + `"
telemetry_dir = "` + filepath.Join(dir, "logs") + `"
log_dir = "` + filepath.Join(dir, "state") + `"

[ingest]
poll_interval = 3
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, found, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !found {
		t.Fatal("expected config file to be found")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path %s", resolved)
	}
	if cfg.Ingest.PollInterval != 3 {
		t.Fatalf("expected poll_interval override, got %d", cfg.Ingest.PollInterval)
	}
	if cfg.Ingest.DetectionLog != "ai_log.txt" {
		t.Fatalf("expected default detection_log, got %q", cfg.Ingest.DetectionLog)
	}
}

func TestLoadMissingExplicitPathFails(t *testing.T) {
	if _, _, _, err := config.Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestValidateRejectsPathlikeFilenames(t *testing.T) {
	cfg := config.Default()
	cfg.Ingest.DetectionLog = "sub/ai_log.txt"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "bare filename") {
		t.Fatalf("expected bare filename error, got %v", err)
	}
}

func TestValidateRejectsNonPositiveIntervals(t *testing.T) {
	cfg := config.Default()
	cfg.Ingest.PollInterval = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero poll_interval")
	}

	cfg = config.Default()
	cfg.HostStats.Enabled = true
	cfg.HostStats.Interval = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero host_stats.interval")
	}
}

func TestEnsureDirectoriesCreatesTree(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.FramesDir = filepath.Join(dir, "frames")
	cfg.Paths.TelemetryDir = filepath.Join(dir, "logs")
	cfg.Paths.LogDir = filepath.Join(dir, "state")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, p := range []string{cfg.Paths.FramesDir, cfg.Paths.TelemetryDir, cfg.Paths.LogDir} {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s, err=%v", p, err)
		}
	}
}
