package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL         string
	APIKey              string
	APIBaseURL          string
	HTTPTimeout         time.Duration
	MigrationsPath      string
	WorkerLockDir       string
	WorkerSleepInterval time.Duration
	MetricsAddr         string
	IsProduction        bool
}

// LoadConfig loads configuration from environment variables and a .env file
// if present. Environment variables override .env values.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("FREECURRENCY_API_KEY", "")
	viper.SetDefault("FREECURRENCY_BASE_URL", "https://api.freecurrencyapi.com/v1")
	viper.SetDefault("HTTP_TIMEOUT", "30s")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("WORKER_LOCK_DIR", "var/worker_locks")
	viper.SetDefault("WORKER_SLEEP_INTERVAL", "60s")
	viper.SetDefault("METRICS_ADDR", "")
	viper.SetDefault("IS_PRODUCTION", false)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.APIKey = viper.GetString("FREECURRENCY_API_KEY")
	if cfg.APIKey == "" {
		log.Println("Warning: FREECURRENCY_API_KEY environment variable not set.")
	}

	cfg.APIBaseURL = viper.GetString("FREECURRENCY_BASE_URL")
	cfg.HTTPTimeout = viper.GetDuration("HTTP_TIMEOUT")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.WorkerLockDir = viper.GetString("WORKER_LOCK_DIR")
	cfg.WorkerSleepInterval = viper.GetDuration("WORKER_SLEEP_INTERVAL")
	cfg.MetricsAddr = viper.GetString("METRICS_ADDR")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	return cfg, nil
}
