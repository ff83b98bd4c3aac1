package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/storefront/internal/flagx"
	"github.com/dmitrijs2005/storefront/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent fields
// leave the corresponding Config value alone.
type JsonConfig struct {
	APIBaseURL               string          `json:"api_base_url"`
	RequestTimeout           *timex.Duration `json:"request_timeout"`
	DatabasePath             string          `json:"database_path"`
	RequestsPerSecond        *float64        `json:"requests_per_second"`
	RollbackOnProfileFailure *bool           `json:"rollback_on_profile_failure"`
	InvalidateOnUnauthorized *bool           `json:"invalidate_on_unauthorized"`
	LogFormat                string          `json:"log_format"`
	LogLevel                 string          `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c or -config. Without
// either flag it does nothing. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigFile(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestsPerSecond != nil {
		cfg.RequestsPerSecond = *jc.RequestsPerSecond
	}
	if jc.RollbackOnProfileFailure != nil {
		cfg.RollbackOnProfileFailure = *jc.RollbackOnProfileFailure
	}
	if jc.InvalidateOnUnauthorized != nil {
		cfg.InvalidateOnUnauthorized = *jc.InvalidateOnUnauthorized
	}
	if jc.LogFormat != "" {
		cfg.LogFormat = jc.LogFormat
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
