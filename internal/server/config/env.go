package config

import (
	"errors"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables understood by parseEnv.
const (
	EnvAddr           = "STOREFRONT_SERVER_ADDR"
	EnvSecretKey      = "STOREFRONT_JWT_SECRET"
	EnvTokenValidity  = "STOREFRONT_TOKEN_VALIDITY"
	EnvRateLimit      = "STOREFRONT_SERVER_RATE_LIMIT"
	EnvAllowedOrigins = "STOREFRONT_ALLOWED_ORIGINS"
	EnvLogFormat      = "STOREFRONT_SERVER_LOG_FORMAT"
	EnvLogLevel       = "STOREFRONT_SERVER_LOG_LEVEL"
)

func loadDotEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
}

// parseEnv overlays cfg with the environment variables found by lookup.
// STOREFRONT_ALLOWED_ORIGINS is a comma-separated list. Panics on malformed
// values.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAddr); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := lookup(EnvSecretKey); ok && v != "" {
		cfg.SecretKey = v
	}
	if v, ok := lookup(EnvTokenValidity); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.TokenValidityDuration = d
	}
	if v, ok := lookup(EnvRateLimit); ok && v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			panic(err)
		}
		cfg.RateLimit = rps
	}
	if v, ok := lookup(EnvAllowedOrigins); ok && v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.AllowedOrigins = origins
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		cfg.LogFormat = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
}
