// Package config loads service settings from environment variables,
// falling back to local-development defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// DB holds PostgreSQL connection settings.
type DB struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
}

// DSN builds a libpq-compatible connection string.
func (c DB) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Kafka holds booking event publishing settings. Publishing is disabled
// when Brokers is empty.
type Kafka struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether at least one broker is configured.
func (k Kafka) Enabled() bool {
	return len(k.Brokers) > 0
}

type Config struct {
	Port            string
	Storage         string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	DB              DB
	Kafka           Kafka
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:      getEnv("PORT", "8080"),
		Storage:   strings.ToLower(getEnv("STORAGE", StoragePostgres)),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		DB: DB{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "bookings"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Kafka: Kafka{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   getEnv("KAFKA_TOPIC", "booking-events"),
		},
	}

	if cfg.Storage != StorageMemory && cfg.Storage != StoragePostgres {
		return Config{}, fmt.Errorf("STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, cfg.Storage)
	}

	maxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "20"), 10, 32)
	if err != nil || maxConns <= 0 {
		return Config{}, fmt.Errorf("DB_MAX_CONNS must be a positive integer")
	}
	cfg.DB.MaxConns = int32(maxConns)

	cfg.ShutdownTimeout, err = time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
