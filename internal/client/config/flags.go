package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/storefront/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-a string     API base URL
//	-t duration   request timeout
//	-d string     local database file
//	-r float      requests per second (0 = unlimited)
//	-l string     log level
//
// Only these flags are looked at (see flagx.FilterArgs). Panics on a parse
// error.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d", "-r", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "storefront API base URL")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "API request timeout")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database file")
	fs.Float64Var(&cfg.RequestsPerSecond, "r", cfg.RequestsPerSecond, "API requests per second, 0 for unlimited")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
