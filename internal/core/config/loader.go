package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults if necessary
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = Duration(15 * time.Second)
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry.MaxAttempts = 3
	}
	if cfg.Retry.Delay == 0 {
		cfg.Retry.Delay = Duration(2 * time.Second)
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "memory"
	}
	if cfg.Network.Probe.Interval == 0 {
		cfg.Network.Probe.Interval = Duration(30 * time.Second)
	}
	if cfg.Network.Probe.Timeout == 0 {
		cfg.Network.Probe.Timeout = Duration(5 * time.Second)
	}

	return &cfg, nil
}
