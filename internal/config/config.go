package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/sys/unix"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the watched drop locations and scribe's own state directory.
type Paths struct {
	FramesDir    string `toml:"frames_dir"`
	TelemetryDir string `toml:"telemetry_dir"`
	LogDir       string `toml:"log_dir"`
}

// Ingest contains pipeline timing and artifact naming configuration.
type Ingest struct {
	PollInterval       int    `toml:"poll_interval"`
	ErrorRetryInterval int    `toml:"error_retry_interval"`
	DetectionLog       string `toml:"detection_log"`
	SidecarFile        string `toml:"sidecar_file"`
	JournalFile        string `toml:"journal_file"`
	LocationID         int64  `toml:"location_id"`
	RobotID            int64  `toml:"robot_id"`
	ObjectID           int64  `toml:"object_id"`
	ActorID            int64  `toml:"actor_id"`
}

// HostStats contains configuration for the host-resource snapshot producer.
type HostStats struct {
	Enabled  bool `toml:"enabled"`
	Interval int  `toml:"interval"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config is the root configuration object.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Ingest    Ingest    `toml:"ingest"`
	HostStats HostStats `toml:"host_stats"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the canonical config file location.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "scribe", "config.toml"), nil
}

// Load reads configuration from path (or the default location when path is
// empty), applying defaults for any unset field. The returned bool reports
// whether a config file was found.
func Load(path string) (*Config, string, bool, error) {
	resolved, explicit, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	cfg := Default()

	data, err := os.ReadFile(resolved)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, resolved, true, fmt.Errorf("parse config %s: %w", resolved, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if explicit {
			return nil, resolved, false, fmt.Errorf("config file %s does not exist", resolved)
		}
		if err := cfg.normalize(); err != nil {
			return nil, resolved, false, err
		}
		return &cfg, resolved, false, nil
	default:
		return nil, resolved, false, fmt.Errorf("read config %s: %w", resolved, err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, resolved, true, err
	}
	return &cfg, resolved, true, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if strings.TrimSpace(path) != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", true, err
		}
		return expanded, true, nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.FramesDir, err = ExpandPath(c.Paths.FramesDir); err != nil {
		return err
	}
	if c.Paths.TelemetryDir, err = ExpandPath(c.Paths.TelemetryDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return err
	}
	return nil
}

// EnsureDirectories creates the watched and state directories and verifies
// they are accessible.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.FramesDir, c.Paths.TelemetryDir, c.Paths.LogDir}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			return errors.New("configured directory path is empty")
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
		if err := unix.Access(dir, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
			return fmt.Errorf("directory %s is not accessible: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the SQLite database location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.LogDir, "scribe.db")
}

// DetectionLogPath returns the absolute path of the detection tail log.
func (c *Config) DetectionLogPath() string {
	return filepath.Join(c.Paths.TelemetryDir, c.Ingest.DetectionLog)
}

// SidecarPath returns the absolute path of the image sidecar file.
func (c *Config) SidecarPath() string {
	return filepath.Join(c.Paths.TelemetryDir, c.Ingest.SidecarFile)
}

// JournalPath returns the absolute path of the append-only audit journal.
func (c *Config) JournalPath() string {
	return filepath.Join(c.Paths.TelemetryDir, c.Ingest.JournalFile)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(pathValue string) (string, error) {
	trimmed := strings.TrimSpace(pathValue)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			return home, nil
		}
		return filepath.Join(home, trimmed[2:]), nil
	}
	return trimmed, nil
}

// CreateSample writes the annotated sample configuration to path.
func CreateSample(path string) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file %s already exists", expanded)
	}
	return os.WriteFile(expanded, []byte(sampleConfig), 0o644)
}
