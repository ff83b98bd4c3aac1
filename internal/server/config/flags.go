package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/storefront/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     HTTP bind address (e.g. ":8080")
//	-s string     JWT HMAC secret key
//	-t duration   token validity (e.g. "24h")
//	-r float      requests per second, 0 for unlimited
//	-l string     log level
//
// os.Args is filtered with flagx.FilterArgs first, so flags meant for other
// loaders (-c) do not break parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-t", "-r", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to run server")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.DurationVar(&config.TokenValidityDuration, "t", config.TokenValidityDuration, "token validity duration")
	fs.Float64Var(&config.RateLimit, "r", config.RateLimit, "requests per second, 0 for unlimited")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
