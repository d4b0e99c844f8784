package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Server Server
	Redis  Redis
	Places Places
	OTEL   OTEL
}

// Server holds server configuration
type Server struct {
	Host        string
	Port        int
	Environment string
}

// Redis holds Redis configuration
type Redis struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Places holds external places provider configuration
type Places struct {
	Provider       string // "google" or "mock"
	APIKey         string
	BaseURL        string
	KeywordsPath   string // optional JSON override for classification keywords
	CacheTTLSecs   int
	RequestTimeout int // seconds
}

// OTEL holds OpenTelemetry configuration
type OTEL struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: Server{
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        getEnvAsInt("SERVER_PORT", 8080),
			Environment: getEnv("APP_ENV", "development"),
		},
		Redis: Redis{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Places: Places{
			Provider:       getEnv("PLACES_PROVIDER", "mock"),
			APIKey:         getEnv("PLACES_API_KEY", ""),
			BaseURL:        getEnv("PLACES_BASE_URL", ""),
			KeywordsPath:   getEnv("CARE_KEYWORDS_PATH", ""),
			CacheTTLSecs:   getEnvAsInt("PLACES_CACHE_TTL_SECONDS", 300),
			RequestTimeout: getEnvAsInt("PLACES_REQUEST_TIMEOUT_SECONDS", 8),
		},
		OTEL: OTEL{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "carefinder"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}, nil
}

// RedisAddr returns the Redis address
func (c *Redis) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

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
