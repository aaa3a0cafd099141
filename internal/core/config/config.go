package config

import (
	"fmt"
	"time"

	"github.com/tailorly/seam/internal/cache"
)

// AppConfig represents the top-level configuration. It is supplied once at
// startup; nothing here is mutable at runtime. The API base URL is
// environment-selected through ${VAR} expansion in the YAML file.
type AppConfig struct {
	API     APIConfig     `yaml:"api"`
	Retry   RetryConfig   `yaml:"retry"`
	Cache   CacheConfig   `yaml:"cache"`
	Network NetworkConfig `yaml:"network"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig holds transport settings.
type APIConfig struct {
	BaseURL string   `yaml:"base_url"`
	Timeout Duration `yaml:"timeout"`
}

// RetryConfig holds the process-wide retry policy.
type RetryConfig struct {
	MaxAttempts int      `yaml:"max_attempts"`
	Delay       Duration `yaml:"delay"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of "memory", "sqlite", "redis".
	Backend string             `yaml:"backend"`
	SQLite  cache.SQLiteConfig `yaml:"sqlite"`
	Redis   cache.RedisConfig  `yaml:"redis"`
}

// NetworkConfig configures connectivity detection. An empty probe URL
// disables the probe; the tracker then assumes online.
type NetworkConfig struct {
	Probe ProbeConfig `yaml:"probe"`
}

// ProbeConfig holds HTTP reachability probe settings.
type ProbeConfig struct {
	URL      string   `yaml:"url"`
	Interval Duration `yaml:"interval"`
	Timeout  Duration `yaml:"timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// Duration parses "500ms"/"30s" style YAML values, which yaml.v2 does not
// handle for time.Duration on its own.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Std converts to the standard library type.
func (d Duration) Std() time.Duration { return time.Duration(d) }
