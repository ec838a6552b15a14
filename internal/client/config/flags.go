package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/storefront/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   base URL of the storefront API
//	-d string   path of the local SQLite database
//	-t int      request timeout in seconds
//	-l string   log level
//
// Only these flags are picked out of os.Args (see flagx.FilterArgs) so other
// components can own the rest.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the storefront API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
