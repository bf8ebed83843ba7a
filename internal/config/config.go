// Package config loads runtime settings for the GophChat CLI.
//
// Sources are applied in order: defaults, then a JSON file (if -c/-config is
// given), then command-line flags. Later sources take precedence.
package config

import "time"

// LogBackend selects the structured-logging implementation.
type LogBackend string

const (
	LogBackendSlog LogBackend = "slog"
	LogBackendZap  LogBackend = "zap"
)

// Config holds runtime settings for the GophChat CLI.
//
// Fields:
//   - StorageDir: directory the key-value files live in.
//   - StoragePassword: passphrase encrypting the key-value files at rest.
//   - PollInterval: period of the chat sync loop.
//   - LogBackend: "slog" or "zap".
//   - Development: verbose, human-readable logging.
type Config struct {
	StorageDir      string
	StoragePassword string
	PollInterval    time.Duration
	LogBackend      LogBackend
	Development     bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorageDir = ".gophchat"
	c.StoragePassword = "gophchat-local"
	c.PollInterval = 2 * time.Second
	c.LogBackend = LogBackendSlog
	c.Development = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
