package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	want := &Config{
		APIBaseURL:               "http://127.0.0.1:8080",
		RequestTimeout:           15 * time.Second,
		DatabasePath:             "storefront.db",
		RollbackOnProfileFailure: true,
		InvalidateOnUnauthorized: true,
		LogFormat:                "console",
		LogLevel:                 "warn",
	}
	assert.Empty(t, cmp.Diff(want, defaults()))
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Chdir(t.TempDir())
	t.Setenv(EnvAPIBaseURL, "http://env.example:1")
	t.Setenv(EnvDatabasePath, "env.db")
	t.Setenv(EnvLogLevel, "info")

	path := writeTempJSON(t, "", "", map[string]any{
		"database_path": "json.db",
		"log_level":     "debug",
	})
	os.Args = []string{"testbin", "-c", path, "-l", "error"}

	cfg := LoadConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "http://env.example:1", cfg.APIBaseURL)
	assert.Equal(t, "json.db", cfg.DatabasePath)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}
