package config

import (
	"errors"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables understood by parseEnv.
const (
	EnvAPIBaseURL     = "STOREFRONT_API_BASE_URL"
	EnvRequestTimeout = "STOREFRONT_REQUEST_TIMEOUT"
	EnvDatabasePath   = "STOREFRONT_DB_PATH"
	EnvRateLimit      = "STOREFRONT_RATE_LIMIT"
	EnvLogLevel       = "STOREFRONT_LOG_LEVEL"
	EnvLogFormat      = "STOREFRONT_LOG_FORMAT"
)

// loadDotEnv copies variables from the given files (default ".env") into the
// process environment without overriding variables that are already set. A
// missing file is not an error.
func loadDotEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
}

// parseEnv overlays cfg with the environment variables found by lookup.
// Panics on malformed values, like the other loaders.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAPIBaseURL); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := lookup(EnvRequestTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := lookup(EnvDatabasePath); ok && v != "" {
		cfg.DatabasePath = v
	}
	if v, ok := lookup(EnvRateLimit); ok && v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			panic(err)
		}
		cfg.RequestsPerSecond = rps
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		cfg.LogFormat = v
	}
}
