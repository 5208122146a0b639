// Package config loads the optional security YAML file that names the
// credential header, the environment variable holding the shared secret and
// the routes that skip authentication.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHeaderName = "SuperToken"
	DefaultSecretEnv  = "SUPER_SECRET_TOKEN"
)

// ErrSecretNotSet is returned by Secret when the configured variable is empty.
var ErrSecretNotSet = errors.New("shared secret not set")

// PublicEndpoint is one route exempt from authentication. An empty method
// matches every method.
type PublicEndpoint struct {
	Method string `yaml:"method"`
	Path   string `yaml:"path"`
}

// SecurityConfig represents security configuration.
type SecurityConfig struct {
	Security struct {
		Auth struct {
			HeaderName string `yaml:"header_name"`
			SecretEnv  string `yaml:"secret_env"`
		} `yaml:"auth"`
		// PublicEndpoints replaces the built-in list when non-empty.
		PublicEndpoints []PublicEndpoint `yaml:"public_endpoints"`
	} `yaml:"security"`
}

// DefaultSecurityConfig is used when no file is configured.
func DefaultSecurityConfig() *SecurityConfig {
	var c SecurityConfig
	c.applyDefaults()
	return &c
}

// LoadSecurityConfig reads path, fills defaults and validates the result.
// An empty path yields DefaultSecurityConfig.
func LoadSecurityConfig(path string) (*SecurityConfig, error) {
	if path == "" {
		return DefaultSecurityConfig(), nil
	}

	// #nosec G304 -- path comes from SECURITY_CONFIG_PATH, not from requests
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config SecurityConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// 空ファイルはデフォルト設定として扱う
	if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	config.applyDefaults()

	if err := validateSecurityConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}

func (c *SecurityConfig) applyDefaults() {
	if strings.TrimSpace(c.Security.Auth.HeaderName) == "" {
		c.Security.Auth.HeaderName = DefaultHeaderName
	}
	if strings.TrimSpace(c.Security.Auth.SecretEnv) == "" {
		c.Security.Auth.SecretEnv = DefaultSecretEnv
	}
}

var allowedMethods = map[string]bool{
	"":                 true,
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
}

func validateSecurityConfig(config *SecurityConfig) error {
	name := config.Security.Auth.HeaderName
	if strings.ContainsAny(name, " \t:\r\n") {
		return fmt.Errorf("header_name %q is not a valid header name", name)
	}

	for i, ep := range config.Security.PublicEndpoints {
		if !allowedMethods[strings.ToUpper(ep.Method)] {
			return fmt.Errorf("public_endpoints[%d]: unsupported method %q", i, ep.Method)
		}
		if !strings.HasPrefix(ep.Path, "/") {
			return fmt.Errorf("public_endpoints[%d]: path %q must start with /", i, ep.Path)
		}
	}
	return nil
}

// HeaderName returns the credential header name.
func (c *SecurityConfig) HeaderName() string {
	return c.Security.Auth.HeaderName
}

// SecretEnv returns the environment variable holding the shared secret.
func (c *SecurityConfig) SecretEnv() string {
	return c.Security.Auth.SecretEnv
}

// PublicEndpoints returns the configured public routes, possibly empty.
func (c *SecurityConfig) PublicEndpoints() []PublicEndpoint {
	return c.Security.PublicEndpoints
}

// Secret reads the shared secret from the configured environment variable.
func (c *SecurityConfig) Secret() (string, error) {
	v := os.Getenv(c.SecretEnv())
	if v == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrSecretNotSet, c.SecretEnv())
	}
	return v, nil
}
