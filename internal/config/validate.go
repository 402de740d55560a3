package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateIngest(); err != nil {
		return err
	}
	if err := c.validateHostStats(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.FramesDir) == "" {
		return errors.New("paths.frames_dir must be set")
	}
	if strings.TrimSpace(c.Paths.TelemetryDir) == "" {
		return errors.New("paths.telemetry_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateIngest() error {
	if err := ensurePositiveMap(map[string]int{
		"ingest.poll_interval":        c.Ingest.PollInterval,
		"ingest.error_retry_interval": c.Ingest.ErrorRetryInterval,
	}); err != nil {
		return err
	}
	for name, value := range map[string]string{
		"ingest.detection_log": c.Ingest.DetectionLog,
		"ingest.sidecar_file":  c.Ingest.SidecarFile,
		"ingest.journal_file":  c.Ingest.JournalFile,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must be set", name)
		}
		if strings.ContainsAny(value, "/\\") {
			return fmt.Errorf("%s must be a bare filename, not a path", name)
		}
	}
	return nil
}

func (c *Config) validateHostStats() error {
	if !c.HostStats.Enabled {
		return nil
	}
	if c.HostStats.Interval <= 0 {
		return errors.New("host_stats.interval must be positive when host_stats.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for name, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}
