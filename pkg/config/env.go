// Package config reads typed settings from environment variables. Malformed
// values never abort startup: they are logged and replaced by the default.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

func lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func warnInvalid(key, value string, def any, err error) {
	slog.Warn("invalid value for environment variable, using default",
		slog.String("key", key),
		slog.String("value", value),
		slog.Any("default", def),
		slog.String("error", err.Error()))
}

// GetEnvString returns the variable or defaultValue when it is unset or blank.
//
//	addr := GetEnvString("HTTP_ADDR", ":8080")
func GetEnvString(key, defaultValue string) string {
	if v, ok := lookup(key); ok {
		return v
	}
	return defaultValue
}

// GetEnvInt parses the variable as a base-10 integer.
//
//	maxLimit := GetEnvInt("PAGINATION_MAX_LIMIT", 1000)
func GetEnvInt(key string, defaultValue int) int {
	v, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		warnInvalid(key, v, defaultValue, err)
		return defaultValue
	}
	return n
}

// GetEnvFloat parses the variable as a float64.
//
//	rps := GetEnvFloat("RATELIMIT_RPS", 10)
func GetEnvFloat(key string, defaultValue float64) float64 {
	v, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		warnInvalid(key, v, defaultValue, err)
		return defaultValue
	}
	return f
}

// GetEnvBool accepts the spellings understood by strconv.ParseBool.
//
//	migrate := GetEnvBool("ENSURE_DB_CREATED", true)
func GetEnvBool(key string, defaultValue bool) bool {
	v, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		warnInvalid(key, v, defaultValue, err)
		return defaultValue
	}
	return b
}

// GetEnvDuration parses the variable with time.ParseDuration ("30s", "5m").
//
//	timeout := GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second)
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		warnInvalid(key, v, defaultValue.String(), err)
		return defaultValue
	}
	return d
}
