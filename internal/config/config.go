// Package config loads application configuration from the environment.
package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Shared secret for the statement-ingestion pipeline.
	IngestSecret string

	// Scheduler
	SweepCheckInterval time.Duration
	SchedulerEnabled   bool
}

// Load reads configuration from the environment, with a .env file as an
// optional source for local development.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "paisa"),
		DBPassword: getEnv("DB_PASSWORD", "paisa"),
		DBName:     getEnv("DB_NAME", "paisa"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		IngestSecret: getEnv("INGEST_SECRET", ""),

		SchedulerEnabled: getEnv("SCHEDULER_ENABLED", "true") == "true",
	}

	intervalStr := getEnv("SWEEP_CHECK_INTERVAL", "1h")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		log.Printf("Warning: invalid SWEEP_CHECK_INTERVAL value '%s', falling back to 1h\n", intervalStr)
		interval = time.Hour
	}
	cfg.SweepCheckInterval = interval

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
