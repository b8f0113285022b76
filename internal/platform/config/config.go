// Package config reads immutable process configuration from the environment
// so main stays lean. Everything is read once at startup; concurrent lookups
// receive the traversal caps by value and cannot interfere with each other.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers accepted by DEEPLINK_STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config captures the full server configuration.
type Config struct {
	Addr string

	// Record store backing the traversal engine.
	StoreDriver string
	DatabaseURL string
	SQLitePath  string

	// Bounded BFS caps. Defaults: 3 hops, 25 records.
	MaxDepth   int
	MaxResults int

	Redis RedisConfig
	Kafka KafkaConfig
}

// RedisConfig configures the optional consolidated-profile cache.
type RedisConfig struct {
	URL          string
	CacheTTL     time.Duration
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the optional search audit log sink.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Config from environment variables with development
// defaults.
func FromEnv() Config {
	return Config{
		Addr:        envString("DEEPLINK_ADDR", ":8080"),
		StoreDriver: envString("DEEPLINK_STORE_DRIVER", DriverSQLite),
		DatabaseURL: os.Getenv("DEEPLINK_DATABASE_URL"),
		SQLitePath:  envString("DEEPLINK_SQLITE_PATH", "data/records.db"),
		MaxDepth:    envInt("DEEPLINK_MAX_DEPTH", 3),
		MaxResults:  envInt("DEEPLINK_MAX_RESULTS", 25),
		Redis: RedisConfig{
			URL:          os.Getenv("DEEPLINK_REDIS_URL"),
			CacheTTL:     envDuration("DEEPLINK_CACHE_TTL", 15*time.Minute),
			PoolSize:     envInt("DEEPLINK_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("DEEPLINK_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("DEEPLINK_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("DEEPLINK_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("DEEPLINK_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: envList("DEEPLINK_KAFKA_BROKERS"),
			Topic:   envString("DEEPLINK_KAFKA_TOPIC", "deeplink.search-log"),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
