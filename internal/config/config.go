// Package config loads service configuration from the environment, with
// optional .env support for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/nlazarte/libromayor/internal/ledger"
)

// Backends accepted for KV_BACKEND.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type Config struct {
	// HTTP server
	Port string

	// Accounting
	Currency string
	// MaxAmountMinor caps any single movement, in minor units.
	MaxAmountMinor int64

	// Persistence
	Backend      string
	SQLiteDBPath string
	DatabaseURL  string
	RedisAddr    string

	// Event publishing (off when AMQPURL is empty)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// Load reads the environment, after merging in a .env file when present.
func Load() *Config {
	_ = godotenv.Load()

	maxMinor, err := ledger.ParseMinor(getEnv("MAX_AMOUNT", "10000000"))
	if err != nil {
		maxMinor = 0 // caught by Validate
	}
	return &Config{
		Port:           getEnv("PORT", "8080"),
		Currency:       strings.ToUpper(getEnv("CURRENCY", "ARS")),
		MaxAmountMinor: maxMinor,
		Backend:        strings.ToLower(getEnv("KV_BACKEND", BackendSQLite)),
		SQLiteDBPath:   getEnv("SQLITE_DB_PATH", "./data/libromayor.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		AMQPURL:        getEnv("AMQP_URL", ""),
		AMQPExchange:   getEnv("AMQP_EXCHANGE", "libromayor"),
		AMQPQueue:      getEnv("AMQP_QUEUE", "ledger_changes"),
	}
}

// Validate returns an error describing every invalid setting.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if len(c.Currency) != 3 {
		problems = append(problems, fmt.Sprintf("invalid currency %q: expected a 3-letter code", c.Currency))
	}
	if c.MaxAmountMinor <= 0 {
		problems = append(problems, "invalid MAX_AMOUNT: must be a positive decimal")
	}

	switch c.Backend {
	case BackendMemory, BackendSQLite, BackendPostgres, BackendRedis:
	default:
		problems = append(problems, fmt.Sprintf("invalid backend %q: must be one of memory, sqlite, postgres, redis", c.Backend))
	}
	if c.Backend == BackendPostgres && c.DatabaseURL == "" {
		problems = append(problems, "DATABASE_URL is required for the postgres backend")
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
