package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type envConfig struct {
	APIBaseURL     string        `env:"STOREFRONT_API_URL"`
	DatabasePath   string        `env:"STOREFRONT_DB"`
	RequestTimeout time.Duration `env:"STOREFRONT_TIMEOUT"`
	LogLevel       string        `env:"STOREFRONT_LOG_LEVEL"`
	LogFormat      string        `env:"STOREFRONT_LOG_FORMAT"`
}

// parseEnv overlays Config with STOREFRONT_* environment variables. Unset
// variables keep the values of earlier layers. Panics on malformed values.
func parseEnv(cfg *Config) {
	ec := envConfig{
		APIBaseURL:     cfg.APIBaseURL,
		DatabasePath:   cfg.DatabasePath,
		RequestTimeout: cfg.RequestTimeout,
		LogLevel:       cfg.LogLevel,
		LogFormat:      cfg.LogFormat,
	}
	if err := env.Parse(&ec); err != nil {
		panic(fmt.Errorf("parse env: %w", err))
	}

	cfg.APIBaseURL = ec.APIBaseURL
	cfg.DatabasePath = ec.DatabasePath
	cfg.RequestTimeout = ec.RequestTimeout
	cfg.LogLevel = ec.LogLevel
	cfg.LogFormat = ec.LogFormat
}
