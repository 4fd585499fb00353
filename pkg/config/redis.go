package config

import (
	"fmt"
	"time"
)

// RedisConfig configures the draft cache connection.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	DraftTTL time.Duration
}

// Address returns host:port for the redis client.
func (c RedisConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnvInt("REDIS_PORT", 6379),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
		DraftTTL: getEnvDuration("DRAFT_TTL", 24*time.Hour),
	}
}
