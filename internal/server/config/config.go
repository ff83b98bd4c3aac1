// Package config handles configuration for the development API server,
// including defaults, the environment, a JSON overlay and command-line flags.
package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/storefront/internal/logging"
)

// Config holds runtime settings of the development API server.
//
// Fields:
//   - Addr: HTTP bind address.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Empty means a random
//     key is generated at start-up, so tokens do not survive a restart.
//   - TokenValidityDuration: lifetime of issued tokens.
//   - RateLimit / RateBurst: server-wide request limiter; 0 disables it.
//   - AllowedOrigins: CORS origins.
type Config struct {
	Addr                  string
	SecretKey             string
	TokenValidityDuration time.Duration
	RateLimit             float64
	RateBurst             int
	AllowedOrigins        []string
	LogFormat             string
	LogLevel              string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.SecretKey = ""
	c.TokenValidityDuration = 24 * time.Hour
	c.RateLimit = 50
	c.RateBurst = 100
	c.AllowedOrigins = []string{"*"}
	c.LogFormat = logging.FormatJSON
	c.LogLevel = "info"
}

// LoadConfig applies defaults, then the environment (including a .env file
// in the working directory), then an optional JSON file, then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	loadDotEnv()
	parseEnv(cfg, os.LookupEnv)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
