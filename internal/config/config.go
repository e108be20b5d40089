// Package config provides configuration management for the Loopdeck Agent.
// Configuration is loaded from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// Default values
	DefaultPort           = 8917
	DefaultLogLevel       = "info"
	DefaultDataDir        = ".loopdeck"
	DefaultPollIntervalMs = 250

	// Environment variable names
	EnvPort           = "LOOPDECK_PORT"
	EnvLogLevel       = "LOOPDECK_LOG_LEVEL"
	EnvDataDir        = "LOOPDECK_DATA_DIR"
	EnvPollIntervalMs = "LOOPDECK_POLL_INTERVAL_MS"
	EnvHeadless       = "LOOPDECK_HEADLESS"
	EnvExportDir      = "LOOPDECK_EXPORT_DIR"

	// Database filename
	DBFilename = "loopdeck.db"
)

// Config defines the application configuration interface
type Config interface {
	Port() int
	LogLevel() string
	DataDir() string
	DBPath() string
	ExportDir() string
	PollInterval() time.Duration
	Headless() bool
}

// EnvConfig reads configuration from environment variables
type EnvConfig struct {
	port           int
	logLevel       string
	dataDir        string
	exportDir      string
	pollIntervalMs int
	headless       bool
}

// New creates a new EnvConfig with defaults and environment variable overrides.
// A .env file is merged into the environment when one exists; a missing file
// is not an error.
func New() (*EnvConfig, error) {
	godotenv.Load()

	cfg := &EnvConfig{
		port:           DefaultPort,
		logLevel:       DefaultLogLevel,
		dataDir:        defaultDataDir(),
		pollIntervalMs: DefaultPollIntervalMs,
	}

	// Override port from environment
	if p := os.Getenv(EnvPort); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		if port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid %s: port must be between 1 and 65535", EnvPort)
		}
		cfg.port = port
	}

	// Override log level from environment
	if ll := os.Getenv(EnvLogLevel); ll != "" {
		cfg.logLevel = ll
	}

	// Override data directory from environment
	if dd := os.Getenv(EnvDataDir); dd != "" {
		cfg.dataDir = dd
	}

	if ed := os.Getenv(EnvExportDir); ed != "" {
		cfg.exportDir = ed
	}

	if pi := os.Getenv(EnvPollIntervalMs); pi != "" {
		ms, err := strconv.Atoi(pi)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvPollIntervalMs, err)
		}
		if ms < 50 {
			return nil, fmt.Errorf("invalid %s: interval must be at least 50ms", EnvPollIntervalMs)
		}
		cfg.pollIntervalMs = ms
	}

	if h := os.Getenv(EnvHeadless); h == "1" || h == "true" {
		cfg.headless = true
	}

	return cfg, nil
}

// Port returns the HTTP server port
func (c *EnvConfig) Port() int {
	return c.port
}

// LogLevel returns the log level (debug, info, warn, error)
func (c *EnvConfig) LogLevel() string {
	return c.logLevel
}

// DataDir returns the data directory path
func (c *EnvConfig) DataDir() string {
	return c.dataDir
}

// DBPath returns the full path to the SQLite database file
func (c *EnvConfig) DBPath() string {
	return filepath.Join(c.dataDir, DBFilename)
}

// ExportDir returns the default directory for exported segment lists
func (c *EnvConfig) ExportDir() string {
	if c.exportDir != "" {
		return c.exportDir
	}
	return filepath.Join(c.dataDir, "exports")
}

// PollInterval returns how often the synchronizer samples the player
func (c *EnvConfig) PollInterval() time.Duration {
	return time.Duration(c.pollIntervalMs) * time.Millisecond
}

// Headless reports whether the system tray should be skipped
func (c *EnvConfig) Headless() bool {
	return c.headless
}

// defaultDataDir returns the default data directory path
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home is not available
		return DefaultDataDir
	}
	return filepath.Join(home, DefaultDataDir)
}

// Version information (set at build time via ldflags)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
