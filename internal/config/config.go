package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                 string
	DBPath               string
	LogLevel             string
	SuggestionLimit      int
	ReviewLogWorkerCount int
	ReviewLogQueueSize   int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                 envOr("ADDR", ":8080"),
		DBPath:               envOr("DB_PATH", "file:studyflow.db"),
		LogLevel:             envOr("LOG_LEVEL", "INFO"),
		SuggestionLimit:      envIntOr("SUGGESTION_LIMIT", 3),
		ReviewLogWorkerCount: envIntOr("REVIEW_LOG_WORKER_COUNT", 1),
		ReviewLogQueueSize:   envIntOr("REVIEW_LOG_QUEUE_SIZE", 64),
	}
}

// Validate checks the configuration for values that would prevent the
// server from starting.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.SuggestionLimit < 1 {
		return fmt.Errorf("SUGGESTION_LIMIT must be at least 1")
	}
	if c.ReviewLogWorkerCount < 1 {
		return fmt.Errorf("REVIEW_LOG_WORKER_COUNT must be at least 1")
	}
	if c.ReviewLogQueueSize < 1 {
		return fmt.Errorf("REVIEW_LOG_QUEUE_SIZE must be at least 1")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
