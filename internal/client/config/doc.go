// Package config loads runtime configuration for the storefront CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the storefront API
//	-d string   path of the local SQLite database
//	-t int      request timeout (seconds)
//	-l string   log level
//
// Environment
//
//	STOREFRONT_API_URL, STOREFRONT_DB, STOREFRONT_TIMEOUT ("10s"),
//	STOREFRONT_LOG_LEVEL, STOREFRONT_LOG_FORMAT
//
// # JSON schema
//
// The JSON loader uses timex.Duration, so the timeout can be either a string
// like "10s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://shop.example.com",
//	  "database_path": "/home/me/.storefront.db",
//	  "request_timeout": "10s",
//	  "log_level": "debug",
//	  "log_format": "console"
//	}
package config
