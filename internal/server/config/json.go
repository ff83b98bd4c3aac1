package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/storefront/internal/flagx"
	"github.com/dmitrijs2005/storefront/internal/timex"
)

// JsonConfig is the JSON form of Config. Interval fields use timex.Duration,
// which accepts both "1h" strings and integer nanoseconds. Absent fields
// leave the corresponding Config value alone.
type JsonConfig struct {
	Addr                  string          `json:"addr"`
	SecretKey             string          `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	RateLimit             *float64        `json:"rate_limit"`
	RateBurst             *int            `json:"rate_burst"`
	AllowedOrigins        []string        `json:"allowed_origins"`
	LogFormat             string          `json:"log_format"`
	LogLevel              string          `json:"log_level"`
}

// parseJson loads the file named by -c or -config into config. Without
// either flag nothing is loaded. Panics if the file cannot be read or
// decoded.
func parseJson(config *Config) {
	path := flagx.ConfigFile(os.Args[1:])
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.Addr != "" {
		config.Addr = c.Addr
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.RateLimit != nil {
		config.RateLimit = *c.RateLimit
	}
	if c.RateBurst != nil {
		config.RateBurst = *c.RateBurst
	}
	if c.AllowedOrigins != nil {
		config.AllowedOrigins = c.AllowedOrigins
	}
	if c.LogFormat != "" {
		config.LogFormat = c.LogFormat
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
}
