package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LookbackDays != 7 {
		t.Errorf("LookbackDays = %d, want 7", cfg.LookbackDays)
	}
	if cfg.Workers != 10 {
		t.Errorf("Workers = %d, want 10", cfg.Workers)
	}
	if cfg.ReadTimeout != 15*time.Second {
		t.Errorf("ReadTimeout = %v", cfg.ReadTimeout)
	}
	if cfg.UserAgent != "mentionwatch/2.0" {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LOOKBACK_DAYS", "14")
	t.Setenv("MAX_WORKERS", "4")
	t.Setenv("USER_AGENT", "custom-agent/1.0")
	t.Setenv("CACHE_TTL_MINUTES", "0")
	t.Setenv("HOST_MIN_INTERVAL_MS", "250")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LookbackDays != 14 {
		t.Errorf("LookbackDays = %d, want 14", cfg.LookbackDays)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.UserAgent != "custom-agent/1.0" {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
	if cfg.CacheTTL != 0 {
		t.Errorf("CacheTTL = %v, want disabled", cfg.CacheTTL)
	}
	if cfg.HostMinInterval != 250*time.Millisecond {
		t.Errorf("HostMinInterval = %v", cfg.HostMinInterval)
	}
}

func TestLoadRejectsOutOfRange(t *testing.T) {
	t.Setenv("LOOKBACK_DAYS", "90")
	if _, err := Load(); err == nil {
		t.Error("LOOKBACK_DAYS above the limit should fail validation")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing watchlist", func(c *Config) { c.WatchlistPath = "" }, true},
		{"lookback too low", func(c *Config) { c.LookbackDays = 0 }, true},
		{"lookback too high", func(c *Config) { c.LookbackDays = 61 }, true},
		{"workers too low", func(c *Config) { c.Workers = 0 }, true},
		{"workers too high", func(c *Config) { c.Workers = 33 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				WatchlistPath: "configs/watchlist.yaml",
				LookbackDays:  7,
				Workers:       10,
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
