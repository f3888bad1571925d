// Package config provides configuration structs and utilities for the gzio CLI.
package config

import (
	"fmt"
	"time"
)

// Config represents the root configuration for the gzio CLI. The
// library package takes no configuration; everything here drives the
// command-line surface only.
type Config struct {
	Logging       LoggingConfig       `yaml:"logging"`
	Observability ObservabilityConfig `yaml:"observability"`
	Watch         WatchConfig         `yaml:"watch"`
}

// LoggingConfig holds configuration for CLI logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// ObservabilityConfig holds configuration for observability features.
type ObservabilityConfig struct {
	Tracing TracingConfig `yaml:"tracing"`
}

// TracingConfig holds configuration for distributed tracing.
type TracingConfig struct {
	Enabled      bool    `yaml:"enabled"`       // Whether tracing is enabled
	ExporterType string  `yaml:"exporter_type"` // none, stdout, otlp
	OTLPEndpoint string  `yaml:"otlp_endpoint"` // OTLP collector endpoint
	SampleRate   float64 `yaml:"sample_rate"`   // Sampling rate (0.0 to 1.0)
	ServiceName  string  `yaml:"service_name"`  // Service name for traces
}

// WatchConfig holds configuration for the watch command.
type WatchConfig struct {
	Debounce   time.Duration `yaml:"debounce"`    // Quiet period before a change is acted on
	BufferSize int           `yaml:"buffer_size"` // Event channel capacity
}

// Default configuration values.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	DefaultTracingEnabled      = false
	DefaultTracingExporterType = "none"
	DefaultTracingSampleRate   = 1.0
	DefaultTracingServiceName  = "gzio"

	DefaultWatchDebounce   = 100 * time.Millisecond
	DefaultWatchBufferSize = 100
)

// Valid log levels.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Valid log formats.
var validLogFormats = map[string]bool{
	"json": true,
	"text": true,
}

// Valid tracing exporter types.
var validTracingExporterTypes = map[string]bool{
	"none":   true,
	"stdout": true,
	"otlp":   true,
}

// NewDefaultConfig creates a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Observability: ObservabilityConfig{
			Tracing: TracingConfig{
				Enabled:      DefaultTracingEnabled,
				ExporterType: DefaultTracingExporterType,
				SampleRate:   DefaultTracingSampleRate,
				ServiceName:  DefaultTracingServiceName,
			},
		},
		Watch: WatchConfig{
			Debounce:   DefaultWatchDebounce,
			BufferSize: DefaultWatchBufferSize,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}
	if !validTracingExporterTypes[c.Observability.Tracing.ExporterType] {
		return fmt.Errorf("invalid tracing exporter type: %s", c.Observability.Tracing.ExporterType)
	}
	if rate := c.Observability.Tracing.SampleRate; rate < 0.0 || rate > 1.0 {
		return fmt.Errorf("tracing sample rate must be between 0.0 and 1.0, got %g", rate)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch debounce must not be negative, got %s", c.Watch.Debounce)
	}
	if c.Watch.BufferSize <= 0 {
		return fmt.Errorf("watch buffer size must be positive, got %d", c.Watch.BufferSize)
	}
	return nil
}
