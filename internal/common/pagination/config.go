// Package pagination parses and validates the optional offset/limit window
// used by list endpoints, and records list metrics and logs.
package pagination

import (
	"simple-cms/pkg/config"
)

// Config holds pagination configuration settings.
type Config struct {
	// MaxLimit caps the limit a client may request. Zero disables the cap.
	MaxLimit int
}

// DefaultConfig returns the default pagination configuration.
func DefaultConfig() Config {
	return Config{
		MaxLimit: 1000,
	}
}

// LoadFromEnv loads pagination config from environment variables.
// Supported environment variables:
//   - PAGINATION_MAX_LIMIT: Maximum items per request (0 = unbounded)
//
// Negative values fall back to the default.
func LoadFromEnv() Config {
	cfg := DefaultConfig()
	if v := config.GetEnvInt("PAGINATION_MAX_LIMIT", cfg.MaxLimit); v >= 0 {
		cfg.MaxLimit = v
	}
	return cfg
}
