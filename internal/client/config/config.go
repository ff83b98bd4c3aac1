package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/storefront/internal/logging"
)

// Config holds runtime settings of the storefront shell.
type Config struct {
	// APIBaseURL is the root of the storefront REST API.
	APIBaseURL string
	// RequestTimeout bounds every API call.
	RequestTimeout time.Duration
	// DatabasePath is the local SQLite file holding the persisted credential
	// and the guest cart.
	DatabasePath string
	// RequestsPerSecond throttles API calls; 0 disables throttling.
	RequestsPerSecond float64

	RollbackOnProfileFailure bool
	InvalidateOnUnauthorized bool

	LogFormat string
	LogLevel  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "storefront.db"
	c.RequestsPerSecond = 0
	c.RollbackOnProfileFailure = true
	c.InvalidateOnUnauthorized = true
	c.LogFormat = logging.FormatConsole
	c.LogLevel = "warn"
}

// LoadConfig applies defaults, then the environment (including a .env file
// in the working directory), then an optional JSON file, then flags. Later
// sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	loadDotEnv()
	parseEnv(cfg, os.LookupEnv)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
