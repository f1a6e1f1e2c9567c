// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Cache backend names accepted in CACHE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	Port             int
	HeliusAPIKey     string
	HeliusRESTURL    string // empty uses the client default
	HeliusRPCURL     string // empty uses the client default
	PayToAddress     string
	CacheBackend     string // memory | redis | postgres
	CacheMaxKeys     int
	PostgresDSN      string
	RedisAddr        string
	ClickhouseDSN    string // empty disables the audit log
	MaxPages         int
	RequestTimeoutMs int
	LogLevel         string
	DevMode          bool
}

// Load reads configuration from environment variables, honoring a
// local .env file when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnvAsInt("PORT", 3000),
		HeliusAPIKey:     getEnv("HELIUS_API_KEY", ""),
		HeliusRESTURL:    getEnv("HELIUS_REST_URL", ""),
		HeliusRPCURL:     getEnv("HELIUS_RPC_URL", ""),
		PayToAddress:     getEnv("PAY_TO_ADDRESS", ""),
		CacheBackend:     getEnv("CACHE_BACKEND", BackendMemory),
		CacheMaxKeys:     getEnvAsInt("CACHE_MAX_KEYS", 100000),
		PostgresDSN:      getEnv("POSTGRES_DSN", ""),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		ClickhouseDSN:    getEnv("CLICKHOUSE_DSN", ""),
		MaxPages:         getEnvAsInt("MAX_PAGES", 10),
		RequestTimeoutMs: getEnvAsInt("REQUEST_TIMEOUT_MS", 25000),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DevMode:          getEnvAsBool("DEV_MODE", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.HeliusAPIKey == "" {
		return fmt.Errorf("HELIUS_API_KEY is required")
	}

	switch c.CacheBackend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis cache backend")
		}
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for the postgres cache backend")
		}
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q (want memory, redis or postgres)", c.CacheBackend)
	}

	return nil
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
