package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port     int
	LogLevel string
	DevMode  bool
	RunTTL   time.Duration // how long computed runs stay in the registry
	MaxSize  int           // largest accepted spin count; dense dim is 2^size
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnvAsInt("SPINDLE_PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		DevMode:  getEnvAsBool("DEV_MODE", false),
		RunTTL:   time.Duration(getEnvAsInt("RUN_TTL_MINUTES", 60)) * time.Minute,
		MaxSize:  getEnvAsInt("MAX_SIZE", 12),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for usable values
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("SPINDLE_PORT must be a valid port, got %d", c.Port)
	}
	if c.MaxSize < 1 {
		return fmt.Errorf("MAX_SIZE must be at least 1, got %d", c.MaxSize)
	}
	if c.RunTTL <= 0 {
		return fmt.Errorf("RUN_TTL_MINUTES must be positive, got %s", c.RunTTL)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
