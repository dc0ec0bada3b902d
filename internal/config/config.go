package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string
	DatabaseURL    string
	RedisURL       string
	Environment    string

	// AnswerRadiusM gates both discovery and answer acceptance. The two
	// paths must share this value: a target shown by discovery is always
	// answerable from the same position.
	AnswerRadiusM float64
	// PointDecay is subtracted from a question's value after each solve.
	PointDecay int
	// PointFloor is the lowest value decay may reach.
	PointFloor int
	// HintWindow bounds the candidate pool for next-hint selection.
	HintWindow int
	// StoreTimeout caps every store call made by the answer engine.
	StoreTimeout time.Duration
	// OperatorToken authorizes cache refresh and log access.
	OperatorToken string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:5174")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		Environment:    getEnv("ENVIRONMENT", "production"),
		AnswerRadiusM:  getFloatEnv("ANSWER_RADIUS_M", 50),
		PointDecay:     getIntEnv("POINT_DECAY", 10),
		PointFloor:     getIntEnv("POINT_FLOOR", 50),
		HintWindow:     getIntEnv("HINT_WINDOW", 5),
		StoreTimeout:   getDurationEnv("STORE_TIMEOUT", 3*time.Second),
		OperatorToken:  getEnv("OPERATOR_TOKEN", ""),
	}

	if cfg.AnswerRadiusM <= 0 {
		return nil, fmt.Errorf("ANSWER_RADIUS_M must be positive, got %v", cfg.AnswerRadiusM)
	}
	if cfg.PointFloor < 0 {
		return nil, fmt.Errorf("POINT_FLOOR must not be negative, got %d", cfg.PointFloor)
	}
	if cfg.HintWindow < 1 {
		return nil, fmt.Errorf("HINT_WINDOW must be at least 1, got %d", cfg.HintWindow)
	}

	return cfg, nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// parseOrigins parses comma-separated origins into a slice
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// getFloatEnv gets a float environment variable with a fallback value
func getFloatEnv(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
