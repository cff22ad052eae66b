package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, resolved, err := Load(nil, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if resolved != path {
		t.Errorf("expected resolved path %s, got %s", path, resolved)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected default config to be written: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "addr: \":7000\"\nstale_timeout: 20s\nstore_driver: badger\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PRESENCECHAT_ADDR", ":9000")
	t.Setenv("PRESENCECHAT_HISTORY_MAX_LIMIT", "50")

	cfg, _, err := Load(nil, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9000" {
		t.Errorf("env should override file, got addr %q", cfg.Addr)
	}
	if cfg.StaleTimeout != 20*time.Second {
		t.Errorf("file should override defaults, got stale_timeout %v", cfg.StaleTimeout)
	}
	if cfg.StoreDriver != DriverBadger {
		t.Errorf("expected badger driver, got %q", cfg.StoreDriver)
	}
	if cfg.HistoryMaxLimit != 50 {
		t.Errorf("expected history_max_limit 50, got %d", cfg.HistoryMaxLimit)
	}
	if cfg.ReaperInterval != 15*time.Second {
		t.Errorf("expected default reaper interval, got %v", cfg.ReaperInterval)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should be valid: %v", err)
	}

	bad := Default()
	bad.StoreDriver = "mongo"
	if err := bad.Validate(); err == nil {
		t.Errorf("expected unknown driver to be rejected")
	}

	bad = Default()
	bad.StaleTimeout = 0
	if err := bad.Validate(); err == nil {
		t.Errorf("expected zero stale timeout to be rejected")
	}
}

func TestUpdateFrom(t *testing.T) {
	cfg := Default()
	cfg.UpdateFrom(Config{Addr: ":1234", StoreDriver: DriverBadger})
	if cfg.Addr != ":1234" || cfg.StoreDriver != DriverBadger {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.StaleTimeout != Default().StaleTimeout {
		t.Errorf("zero values must not override: %+v", cfg)
	}
}
