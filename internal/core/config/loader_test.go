package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("TEST_API_URL", "https://api.example.com/prod")

	cfg, err := Load(writeConfig(t, `
api:
  base_url: ${TEST_API_URL}
`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.API.BaseURL != "https://api.example.com/prod" {
		t.Errorf("BaseURL = %s, want https://api.example.com/prod", cfg.API.BaseURL)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
api:
  base_url: https://api.example.com
`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.Retry.MaxAttempts)
	}
	if cfg.Retry.Delay != Duration(2*time.Second) {
		t.Errorf("Delay = %v, want 2s", cfg.Retry.Delay)
	}
	if cfg.API.Timeout != Duration(15*time.Second) {
		t.Errorf("Timeout = %v, want 15s", cfg.API.Timeout)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("Backend = %q, want memory", cfg.Cache.Backend)
	}
}

func TestLoad_FullConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
api:
  base_url: https://api.example.com
  timeout: 30s
retry:
  max_attempts: 5
  delay: 500ms
cache:
  backend: sqlite
  sqlite:
    path: /tmp/seam.db
network:
  probe:
    url: https://api.example.com/health
    interval: 20s
logging:
  level: debug
`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Retry.MaxAttempts != 5 || cfg.Retry.Delay != Duration(500*time.Millisecond) {
		t.Errorf("Retry = %+v", cfg.Retry)
	}
	if cfg.Cache.Backend != "sqlite" || cfg.Cache.SQLite.Path != "/tmp/seam.db" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Network.Probe.Interval != Duration(20*time.Second) {
		t.Errorf("Probe = %+v", cfg.Network.Probe)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q", cfg.Logging.Level)
	}
}
