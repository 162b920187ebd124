package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "environment: test\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port, got %d", cfg.Server.Port)
	}
	if cfg.Cache.Backend != "file" {
		t.Fatalf("expected file backend default, got %s", cfg.Cache.Backend)
	}
	if cfg.Providers.Retry.MaxAttempts != 3 {
		t.Fatalf("expected 3 retry attempts, got %d", cfg.Providers.Retry.MaxAttempts)
	}
	if cfg.Model.MinSamples != 50 || cfg.Model.LowerBound != 20 {
		t.Fatalf("unexpected model defaults: %+v", cfg.Model)
	}
	if cfg.Server.RequestBudget != 30*time.Second {
		t.Fatalf("expected 30s request budget, got %v", cfg.Server.RequestBudget)
	}
}

func TestLoadParsesValues(t *testing.T) {
	path := writeConfig(t, `
environment: production
server:
  port: 9000
  request_budget: 45s
providers:
  lookback_days: 365
  retry:
    max_attempts: 5
    base_delay: 250ms
cache:
  backend: redis
  redis:
    addr: localhost:6379
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Fatalf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Providers.Retry.BaseDelay != 250*time.Millisecond {
		t.Fatalf("expected 250ms base delay, got %v", cfg.Providers.Retry.BaseDelay)
	}
	if cfg.Cache.Backend != "redis" {
		t.Fatalf("expected redis backend, got %s", cfg.Cache.Backend)
	}
}

func TestValidateRejectsBadBackend(t *testing.T) {
	path := writeConfig(t, "environment: test\ncache:\n  backend: memcached\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for unknown backend")
	}
}

func TestValidateRequiresRedisAddr(t *testing.T) {
	path := writeConfig(t, "environment: test\ncache:\n  backend: redis\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for missing redis addr")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "environment: test\n")
	t.Setenv("TWELVE_DATA_KEY", "secret")
	t.Setenv("CACHE_BACKEND", "file")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Providers.TwelveData.APIKey != "secret" {
		t.Fatal("expected api key from environment")
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected debug level, got %s", cfg.Logging.Level)
	}
}
