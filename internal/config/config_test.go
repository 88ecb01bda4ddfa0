package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataSource.Mode != ModeMock {
		t.Errorf("mode = %q, want %q", cfg.DataSource.Mode, ModeMock)
	}
	if cfg.Schedule.RefreshCron == "" || cfg.Schedule.HistoryCron == "" {
		t.Error("expected default cron expressions")
	}
	if cfg.Database.SQLitePath == "" {
		t.Error("expected default sqlite path")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
data_source:
  mode: spot
  base_url: "http://localhost:9999"
schedule:
  refresh_cron: "0 */5 * * * *"
database:
  sqlite_path: "/tmp/test.db"
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataSource.Mode != ModeSpot {
		t.Errorf("mode = %q, want spot", cfg.DataSource.Mode)
	}
	if cfg.DataSource.BaseURL != "http://localhost:9999" {
		t.Errorf("base_url = %q", cfg.DataSource.BaseURL)
	}
	if cfg.Schedule.RefreshCron != "0 */5 * * * *" {
		t.Errorf("refresh_cron = %q", cfg.Schedule.RefreshCron)
	}
	if cfg.Schedule.HistoryCron == "" {
		t.Error("missing history_cron should fall back to default")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SOURCE_MODE", "spot")
	t.Setenv("SPOT_BASE_URL", "http://proxy.example")
	t.Setenv("MOCK_SEED", "42")
	t.Setenv("SQLITE_PATH", "/tmp/env.db")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataSource.Mode != ModeSpot {
		t.Errorf("mode = %q, want spot", cfg.DataSource.Mode)
	}
	if cfg.DataSource.BaseURL != "http://proxy.example" {
		t.Errorf("base_url = %q", cfg.DataSource.BaseURL)
	}
	if cfg.DataSource.MockSeed != 42 {
		t.Errorf("mock_seed = %d, want 42", cfg.DataSource.MockSeed)
	}
	if cfg.Database.SQLitePath != "/tmp/env.db" {
		t.Errorf("sqlite_path = %q", cfg.Database.SQLitePath)
	}
}

func TestValidateRejectsUnknownMode(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	cfg.DataSource.Mode = "paper"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unknown mode")
	}
}
