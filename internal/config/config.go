// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir            string        // Base directory for the history database
	RiskFreeRate       float64       // Annual risk-free rate (default 0.02)
	LookbackPeriods    int           // Trading periods in the optimization lookback (default 252)
	PriceCacheTTL      time.Duration // How long a fetched price frame stays fresh (default 1h)
	RebalanceThreshold float64       // Minimum weight delta that justifies a trade (default 0.01)
	RollingWindow      int           // Rolling window for confidence scoring (default 60)
	LogLevel           string
	Port               int
	DevMode            bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data dir: %w", err)
	}

	cfg := &Config{
		DataDir:            absDataDir,
		RiskFreeRate:       envFloat("RISK_FREE_RATE", 0.02),
		LookbackPeriods:    envInt("LOOKBACK_PERIODS", 252),
		PriceCacheTTL:      envDuration("PRICE_CACHE_TTL", time.Hour),
		RebalanceThreshold: envFloat("REBALANCE_THRESHOLD", 0.01),
		RollingWindow:      envInt("ROLLING_WINDOW", 60),
		LogLevel:           envString("LOG_LEVEL", "info"),
		Port:               envInt("PORT", 8090),
		DevMode:            os.Getenv("DEV_MODE") == "true",
	}

	if cfg.RiskFreeRate < 0 {
		return nil, fmt.Errorf("RISK_FREE_RATE must be non-negative, got %f", cfg.RiskFreeRate)
	}
	if cfg.LookbackPeriods <= 0 {
		return nil, fmt.Errorf("LOOKBACK_PERIODS must be positive, got %d", cfg.LookbackPeriods)
	}
	if cfg.RollingWindow <= 1 {
		return nil, fmt.Errorf("ROLLING_WINDOW must be greater than 1, got %d", cfg.RollingWindow)
	}
	if cfg.RebalanceThreshold < 0 {
		return nil, fmt.Errorf("REBALANCE_THRESHOLD must be non-negative, got %f", cfg.RebalanceThreshold)
	}

	return cfg, nil
}

// HistoryDBPath returns the filesystem path of the price history database.
func (c *Config) HistoryDBPath() string {
	return filepath.Join(c.DataDir, "history.db")
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
