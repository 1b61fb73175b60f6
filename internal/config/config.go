// Package config provides gateway configuration from environment
// variables, with an optional YAML file overlay.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Transport selection values.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
	TransportBoth  = "both"
)

// Config holds gateway configuration.
type Config struct {
	// Transport selects the front end(s): stdio, http, or both.
	Transport string `envconfig:"TRANSPORT" default:"stdio" yaml:"transport"`
	// Port is the HTTP listen port (Cloud Run convention).
	Port int `envconfig:"PORT" default:"8080" yaml:"port"`
	// AuditDB is an optional SQLite path for the invocation audit log.
	// Empty disables auditing.
	AuditDB string `envconfig:"AUDIT_DB" yaml:"audit_db"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" yaml:"log_level"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ApplyFile overlays values from a YAML config file.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportStdio, TransportHTTP, TransportBoth:
	default:
		return fmt.Errorf("invalid transport %q: must be stdio, http, or both", c.Transport)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}

// ServeHTTP reports whether the HTTP transport is enabled.
func (c *Config) ServeHTTP() bool {
	return c.Transport == TransportHTTP || c.Transport == TransportBoth
}

// ServeStdio reports whether the stdio transport is enabled.
func (c *Config) ServeStdio() bool {
	return c.Transport == TransportStdio || c.Transport == TransportBoth
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
