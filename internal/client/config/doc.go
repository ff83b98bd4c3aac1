// Package config loads runtime configuration for the storefront shell.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, after a .env file in the working directory has
//     been loaded into the environment (github.com/joho/godotenv).
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override everything else.
//
// # Environment
//
//	STOREFRONT_API_BASE_URL     API base URL
//	STOREFRONT_REQUEST_TIMEOUT  request timeout ("15s")
//	STOREFRONT_DB_PATH          local database file
//	STOREFRONT_RATE_LIMIT       requests per second
//	STOREFRONT_LOG_LEVEL        debug, info, warn, error
//	STOREFRONT_LOG_FORMAT       console, text, json
//
// # JSON schema
//
// Intervals use timex.Duration, so they can be strings like "15s" or integer
// nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:8080",
//	  "request_timeout": "15s",
//	  "database_path": "storefront.db",
//	  "requests_per_second": 5,
//	  "rollback_on_profile_failure": true,
//	  "invalidate_on_unauthorized": true,
//	  "log_format": "console",
//	  "log_level": "warn"
//	}
package config
