package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the menu analyze service. Model
// parameters are process-wide, read-only state initialized once at startup
// and passed explicitly into the components that need them.
type Config struct {
	// Server configuration
	Port           string
	AllowedOrigins string

	// OpenAI configuration
	OpenAIAPIKey string
	OpenAIModel  string
	Temperature  float64

	// Bounded timeout around the single outbound inference call.
	RequestTimeout time.Duration

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		// Server defaults
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),

		// OpenAI defaults
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		Temperature:  getFloatEnv("OPENAI_TEMPERATURE", 0.2),

		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", 90*time.Second),

		// Logging defaults
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getFloatEnv gets a float environment variable or returns a default value.
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getDurationEnv gets a duration environment variable or returns a default value.
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
