// Package config loads the application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration.
// It is read once at startup and treated as immutable.
type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	// RunMigrations enables schema automigration at startup.
	RunMigrations bool

	// Session
	SessionSecret string
	SessionTTL    time.Duration
	CookieSecure  bool

	// Redis (optional; the SQL session store is used when empty/unreachable)
	RedisAddr     string
	RedisPassword string

	// Server
	ServerPort string
}

// Load reads the configuration from environment variables.
// SESSION_SECRET is required: an unsigned session cookie would let anyone
// forge a session reference.
func Load() (*Config, error) {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}

	ttl, err := getDuration("SESSION_TTL", 72*time.Hour)
	if err != nil {
		return nil, err
	}

	return &Config{
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "rehablog"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        getEnv("DB_NAME", "rehablog"),
		RunMigrations: getBool("RUN_MIGRATIONS", false),
		SessionSecret: secret,
		SessionTTL:    ttl,
		CookieSecure:  getBool("COOKIE_SECURE", false),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
	}, nil
}

// getEnv returns the value of key, or def when unset or empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getBool parses a boolean environment variable, returning def when unset
// or malformed.
func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// getDuration parses a duration environment variable ("72h", "30m", ...).
func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}
