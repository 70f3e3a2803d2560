// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Validation bounds for scan parameters.
const (
	MinLookbackDays = 1
	MaxLookbackDays = 60
	MinWorkers      = 1
	MaxWorkers      = 32
)

type Config struct {
	// Watchlist
	WatchlistPath string

	// Scan settings
	LookbackDays int
	Workers      int

	// Fetch settings
	ConnectTimeout    time.Duration
	ReadTimeout       time.Duration
	ConnectRetries    int
	ConnectRetryDelay time.Duration
	RequestRetries    int
	RequestRetryDelay time.Duration
	UserAgent         string
	HostMinInterval   time.Duration

	// Cache settings
	CacheTTL time.Duration // 0 disables the feed cache

	// App settings
	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		WatchlistPath:     "configs/watchlist.yaml",
		LookbackDays:      7,
		Workers:           10,
		ConnectTimeout:    5 * time.Second,
		ReadTimeout:       15 * time.Second,
		ConnectRetries:    3,
		ConnectRetryDelay: 500 * time.Millisecond,
		RequestRetries:    3,
		RequestRetryDelay: 2 * time.Second,
		UserAgent:         "mentionwatch/2.0",
		CacheTTL:          10 * time.Minute,
	}

	cfg.WatchlistPath = getEnvOrDefault("WATCHLIST_PATH", cfg.WatchlistPath)
	cfg.LookbackDays = getEnvIntOrDefault("LOOKBACK_DAYS", cfg.LookbackDays)
	cfg.Workers = getEnvIntOrDefault("MAX_WORKERS", cfg.Workers)
	cfg.ConnectRetries = getEnvIntOrDefault("CONNECT_RETRIES", cfg.ConnectRetries)
	cfg.RequestRetries = getEnvIntOrDefault("REQUEST_RETRIES", cfg.RequestRetries)

	if v := os.Getenv("CONNECT_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.ConnectTimeout = time.Duration(val) * time.Second
		}
	}
	if v := os.Getenv("READ_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.ReadTimeout = time.Duration(val) * time.Second
		}
	}
	if v := os.Getenv("CACHE_TTL_MINUTES"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 0 {
			cfg.CacheTTL = time.Duration(val) * time.Minute
		}
	}
	if v := os.Getenv("HOST_MIN_INTERVAL_MS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 0 {
			cfg.HostMinInterval = time.Duration(val) * time.Millisecond
		}
	}
	if ua := os.Getenv("USER_AGENT"); ua != "" {
		cfg.UserAgent = ua
	}
	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.WatchlistPath == "" {
		return fmt.Errorf("WATCHLIST_PATH is required")
	}
	if c.LookbackDays < MinLookbackDays || c.LookbackDays > MaxLookbackDays {
		return fmt.Errorf("LOOKBACK_DAYS must be between %d and %d", MinLookbackDays, MaxLookbackDays)
	}
	if c.Workers < MinWorkers || c.Workers > MaxWorkers {
		return fmt.Errorf("MAX_WORKERS must be between %d and %d", MinWorkers, MaxWorkers)
	}
	return nil
}
