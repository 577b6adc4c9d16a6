package config

import (
	"os"
	"strconv"
	"time"

	"cinecatch/internal/cache"
	"cinecatch/internal/database"
	"cinecatch/internal/external"
	"cinecatch/internal/messaging"
)

// Config holds the application configuration
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration

	Database database.Config
	NATS     messaging.Config
	Cache    cache.Config
	Push     external.PushConfig

	// CacheEnabled guards the optional Redis layer; the API works without it.
	CacheEnabled bool
}

// Load reads the configuration from environment variables
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 30)) * time.Second,

		Database: database.Config{
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "cinecatch"),
			Password:           getEnv("DB_PASSWORD", "cinecatch123"),
			DBName:             getEnv("DB_NAME", "cinecatch"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 50),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
			ConnMaxIdleTimeMin: getEnvInt("DB_CONN_MAX_IDLE_TIME_MIN", 1),
		},

		NATS: messaging.Config{
			URL:       getEnv("NATS_URL", ""),
			ClusterID: getEnv("NATS_CLUSTER_ID", "cinecatch"),
			ClientID:  getEnv("NATS_CLIENT_ID", "cinecatch-api"),
		},

		Cache: cache.Config{
			Addr:        getEnv("REDIS_ADDR", "localhost:6379"),
			Password:    getEnv("REDIS_PASSWORD", ""),
			AuthHashKey: getEnv("REDIS_AUTH_HASH_KEY", "members:auth"),
			EventsTTL:   time.Duration(getEnvInt("REDIS_EVENTS_TTL_SEC", 30)) * time.Second,
		},

		Push: external.PushConfig{
			BaseURL: getEnv("PUSH_GATEWAY_URL", ""),
			APIKey:  getEnv("PUSH_GATEWAY_API_KEY", ""),
			Timeout: time.Duration(getEnvInt("PUSH_TIMEOUT_SEC", 10)) * time.Second,
		},

		CacheEnabled: getEnv("CACHE_ENABLED", "false") == "true",
	}
}

// getEnv reads an environment variable or falls back to a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
