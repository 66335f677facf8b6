// Package config handles loading and validating the client and development
// server configuration from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Backend modes.
const (
	BackendReal = "real"
	BackendMock = "mock"
)

// Storage drivers.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Config is the top-level application configuration.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Backend   BackendConfig   `yaml:"backend"`
	Storage   StorageConfig   `yaml:"storage"`
	Scraps    ScrapsConfig    `yaml:"scraps"`
	DevServer DevServerConfig `yaml:"dev_server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Tracing   TracingConfig   `yaml:"tracing"`
}

// APIConfig defines how the gateway reaches the backend.
type APIConfig struct {
	BaseURL      string          `yaml:"base_url"`
	BasePath     string          `yaml:"base_path"`
	Timeout      time.Duration   `yaml:"timeout"`
	RegisterPath string          `yaml:"register_path"` // /auth/register or /auth/signup
	RateLimit    RateLimitConfig `yaml:"rate_limit"`
}

// Endpoint returns the base URL joined with the base path.
func (a *APIConfig) Endpoint() string {
	return a.BaseURL + a.BasePath
}

// RateLimitConfig defines outbound request pacing.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// BackendConfig selects the real backend or the in-process mock.
type BackendConfig struct {
	Mode        string        `yaml:"mode"` // real, mock
	MockLatency time.Duration `yaml:"mock_latency"`
}

// StorageConfig defines where durable client state lives.
type StorageConfig struct {
	Driver string `yaml:"driver"` // memory, file, sqlite, postgres
	Path   string `yaml:"path"`
	DSN    string `yaml:"dsn"`
}

// ScrapsConfig defines bookmark reconciliation settings.
type ScrapsConfig struct {
	ResyncInterval time.Duration `yaml:"resync_interval"`
}

// DevServerConfig defines the development backend server.
type DevServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	// ProfileLookup makes login return only a token, so clients must fetch
	// the profile separately.
	ProfileLookup bool `yaml:"profile_lookup"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// TracingConfig defines OTLP trace export. Tracing is off when Endpoint
// is empty.
type TracingConfig struct {
	Endpoint    string  `yaml:"endpoint"` // host:port of an OTLP/gRPC collector
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// Enabled reports whether spans are exported.
func (t *TracingConfig) Enabled() bool {
	return t.Endpoint != ""
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	return Finalize(cfg)
}

// Default returns a validated configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Finalize applies defaults and validates cfg. Callers that assemble a
// Config from flags use it in place of Load.
func Finalize(cfg *Config) (*Config, error) {
	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyAPIDefaults(&cfg.API)
	applyBackendDefaults(&cfg.Backend)
	applyStorageDefaults(&cfg.Storage)
	applyScrapsDefaults(&cfg.Scraps)
	applyDevServerDefaults(&cfg.DevServer)
	applyLoggingDefaults(&cfg.Logging)
	if cfg.Tracing.SampleRatio == 0 {
		cfg.Tracing.SampleRatio = 1
	}
}

func applyAPIDefaults(a *APIConfig) {
	if a.BaseURL == "" {
		a.BaseURL = "http://localhost:8080"
	}
	if a.BasePath == "" {
		a.BasePath = "/api/v1"
	}
	if a.Timeout == 0 {
		a.Timeout = 10 * time.Second
	}
	if a.RegisterPath == "" {
		a.RegisterPath = "/auth/register"
	}
	if a.RateLimit.PerSecond == 0 {
		a.RateLimit.PerSecond = 10
	}
	if a.RateLimit.Burst == 0 {
		a.RateLimit.Burst = 20
	}
}

func applyBackendDefaults(b *BackendConfig) {
	if b.Mode == "" {
		b.Mode = BackendReal
	}
	if b.MockLatency == 0 {
		b.MockLatency = 300 * time.Millisecond
	}
}

func applyStorageDefaults(s *StorageConfig) {
	if s.Driver == "" {
		s.Driver = StorageFile
	}
	if s.Path == "" {
		switch s.Driver {
		case StorageFile:
			s.Path = defaultStatePath("state.json")
		case StorageSQLite:
			s.Path = defaultStatePath("state.db")
		}
	}
}

func defaultStatePath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return name
	}
	return dir + string(os.PathSeparator) + "bokdeok" + string(os.PathSeparator) + name
}

func applyScrapsDefaults(s *ScrapsConfig) {
	if s.ResyncInterval == 0 {
		s.ResyncInterval = 5 * time.Minute
	}
}

func applyDevServerDefaults(d *DevServerConfig) {
	if d.Host == "" {
		d.Host = "0.0.0.0"
	}
	if d.Port == 0 {
		d.Port = 8080
	}
	if d.ReadTimeout == 0 {
		d.ReadTimeout = 30 * time.Second
	}
	if d.WriteTimeout == 0 {
		d.WriteTimeout = 30 * time.Second
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if u, err := url.Parse(cfg.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url must be an absolute URL (got %q)", cfg.API.BaseURL))
	}
	if cfg.API.Timeout < 0 {
		errs = append(errs, fmt.Errorf("api.timeout must be positive"))
	}
	if cfg.API.RateLimit.PerSecond < 0 || cfg.API.RateLimit.Burst < 0 {
		errs = append(errs, fmt.Errorf("api.rate_limit values must not be negative"))
	}

	switch cfg.Backend.Mode {
	case BackendReal, BackendMock:
	default:
		errs = append(
			errs,
			fmt.Errorf("backend.mode must be one of: real, mock (got %q)", cfg.Backend.Mode),
		)
	}

	switch cfg.Storage.Driver {
	case StorageMemory:
	case StorageFile, StorageSQLite:
		if cfg.Storage.Path == "" {
			errs = append(
				errs,
				fmt.Errorf("storage.path is required when driver is %s", cfg.Storage.Driver),
			)
		}
	case StoragePostgres:
		if cfg.Storage.DSN == "" {
			errs = append(errs, fmt.Errorf("storage.dsn is required when driver is postgres"))
		}
	default:
		errs = append(
			errs,
			fmt.Errorf(
				"storage.driver must be one of: memory, file, sqlite, postgres (got %q)",
				cfg.Storage.Driver,
			),
		)
	}

	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("tracing.sample_ratio must be between 0 and 1"))
	}

	return errors.Join(errs...)
}
