// Package config loads per-concern configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config aggregates every concern the service needs at boot.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	LLM      LLMConfig
	Notifx   NotifxConfig
	Storage  StorageConfig
}

// Load reads the whole configuration from the environment with sane
// development defaults.
func Load() *Config {
	return &Config{
		Server:   loadServerConfig(),
		Database: loadDatabaseConfig(),
		Redis:    loadRedisConfig(),
		LLM:      loadLLMConfig(),
		Notifx:   loadNotifxConfig(),
		Storage:  loadStorageConfig(),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
