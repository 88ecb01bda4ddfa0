package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Source modes.
const (
	ModeMock = "mock"
	ModeSpot = "spot"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Mode     string `yaml:"mode"`      // "mock" or "spot"
		BaseURL  string `yaml:"base_url"`  // optional spot endpoint override
		MockSeed int64  `yaml:"mock_seed"` // 0 seeds from the clock
	} `yaml:"data_source"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
		HistoryCron string `yaml:"history_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SOURCE_MODE"); v != "" {
		cfg.DataSource.Mode = v
	}
	if v := os.Getenv("SPOT_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("MOCK_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.DataSource.MockSeed = seed
		}
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("CRON_HISTORY"); v != "" {
		cfg.Schedule.HistoryCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.DataSource.Mode == "" {
		cfg.DataSource.Mode = ModeMock
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 * * * * *"
	}
	if cfg.Schedule.HistoryCron == "" {
		cfg.Schedule.HistoryCron = "30 0 * * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/metalswatch.db"
	}

	return cfg, nil
}

// Validate checks that the configuration is consistent.
func (c *Config) Validate() error {
	switch c.DataSource.Mode {
	case ModeMock, ModeSpot:
	default:
		return fmt.Errorf("data_source.mode must be %q or %q, got %q", ModeMock, ModeSpot, c.DataSource.Mode)
	}
	if c.Schedule.RefreshCron == "" {
		return fmt.Errorf("schedule.refresh_cron is required")
	}
	if c.Schedule.HistoryCron == "" {
		return fmt.Errorf("schedule.history_cron is required")
	}
	return nil
}
