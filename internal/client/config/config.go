package config

import "time"

// Config holds runtime settings for the storefront CLI.
//
// Fields:
//   - APIBaseURL: scheme://host[:port] of the storefront REST API.
//   - DatabasePath: SQLite file holding the persisted session and the local cart.
//   - RequestTimeout: per-request timeout of the HTTP client.
//   - LogLevel: debug, info, warn or error.
//   - LogFormat: text, json (slog) or console (zerolog).
type Config struct {
	APIBaseURL     string
	DatabasePath   string
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.DatabasePath = "storefront.db"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
