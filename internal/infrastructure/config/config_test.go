package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Logging.Level != DefaultLogLevel {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, DefaultLogLevel)
	}
	if cfg.Logging.Format != DefaultLogFormat {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, DefaultLogFormat)
	}
	if cfg.Observability.Tracing.Enabled {
		t.Error("tracing should be disabled by default")
	}
	if cfg.Observability.Tracing.ServiceName != DefaultTracingServiceName {
		t.Errorf("ServiceName = %q, want %q", cfg.Observability.Tracing.ServiceName, DefaultTracingServiceName)
	}
	if cfg.Watch.Debounce != DefaultWatchDebounce {
		t.Errorf("Watch.Debounce = %v, want %v", cfg.Watch.Debounce, DefaultWatchDebounce)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }, "invalid log level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "invalid log format"},
		{"bad exporter", func(c *Config) { c.Observability.Tracing.ExporterType = "jaeger" }, "invalid tracing exporter"},
		{"sample rate too high", func(c *Config) { c.Observability.Tracing.SampleRate = 1.5 }, "sample rate"},
		{"sample rate negative", func(c *Config) { c.Observability.Tracing.SampleRate = -0.1 }, "sample rate"},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -time.Second }, "debounce"},
		{"zero buffer", func(c *Config) { c.Watch.BufferSize = 0 }, "buffer size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoader_Load_MissingFile(t *testing.T) {
	loader, err := NewLoader(t.TempDir())
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}

	cfg, err := loader.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logging.Level != DefaultLogLevel {
		t.Errorf("missing file should yield defaults, got level %q", cfg.Logging.Level)
	}
}

func TestLoader_Load_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `logging:
  level: debug
  format: json
observability:
  tracing:
    enabled: true
    exporter_type: stdout
    sample_rate: 0.5
watch:
  # durations are encoded as nanoseconds, the way Save writes them
  debounce: 250000000
  buffer_size: 16
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	loader, err := NewLoader(dir)
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}
	cfg, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
	if !cfg.Observability.Tracing.Enabled {
		t.Error("tracing should be enabled")
	}
	if cfg.Observability.Tracing.ExporterType != "stdout" {
		t.Errorf("ExporterType = %q, want stdout", cfg.Observability.Tracing.ExporterType)
	}
	if cfg.Observability.Tracing.SampleRate != 0.5 {
		t.Errorf("SampleRate = %g, want 0.5", cfg.Observability.Tracing.SampleRate)
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want %v", cfg.Watch.Debounce, 250*time.Millisecond)
	}
	if cfg.Watch.BufferSize != 16 {
		t.Errorf("Watch.BufferSize = %d, want 16", cfg.Watch.BufferSize)
	}

	// Unspecified fields keep their defaults.
	if cfg.Observability.Tracing.ServiceName != DefaultTracingServiceName {
		t.Errorf("ServiceName = %q, want default %q", cfg.Observability.Tracing.ServiceName, DefaultTracingServiceName)
	}
}

func TestLoader_Load_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("logging: [not a map"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	loader, err := NewLoader(dir)
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}
	if _, err := loader.Load(path); err == nil {
		t.Error("Load() should fail on invalid YAML")
	}
}

func TestLoader_SaveAndReload(t *testing.T) {
	dir := t.TempDir()
	loader, err := NewLoader(dir)
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}

	cfg := NewDefaultConfig()
	cfg.Logging.Level = "warn"
	cfg.Observability.Tracing.Enabled = true
	cfg.Observability.Tracing.ExporterType = "otlp"
	cfg.Observability.Tracing.OTLPEndpoint = "localhost:4318"

	if err := loader.Save(cfg, ""); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded, err := loader.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if reloaded.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", reloaded.Logging.Level)
	}
	if reloaded.Observability.Tracing.OTLPEndpoint != "localhost:4318" {
		t.Errorf("OTLPEndpoint = %q, want localhost:4318", reloaded.Observability.Tracing.OTLPEndpoint)
	}

	data, err := os.ReadFile(loader.DefaultConfigPath())
	if err != nil {
		t.Fatalf("failed to read saved config: %v", err)
	}
	if !strings.HasPrefix(string(data), "# gzio Configuration") {
		t.Error("saved config should carry the header comment")
	}
}
