// Package config reads server settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmynk/splitsense/pkg/logging"
)

// Storage backends
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config struct {
	// HTTP Server
	Port string

	// Storage
	StorageBackend string
	DBPath         string
	SeedDemoData   bool

	// Redis backs the analytics cache and the ledger event stream when set.
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	CacheTTL       time.Duration
	EventStreamLen int64

	// CacheSize bounds the in-process analytics cache used without Redis.
	CacheSize int

	// Auth
	JWTSecret     string
	TokenDuration time.Duration

	// Assistant
	AssistantRemoteURL string
	AssistantTimeout   time.Duration

	LogLevel string
}

// Load reads .env files (default ".env"; missing files are ignored), then the
// environment. Variables already set in the environment win over .env values.
func Load(envFiles ...string) *Config {
	_ = godotenv.Load(envFiles...)

	return &Config{
		Port: getEnv("PORT", "8080"),

		StorageBackend: getEnv("STORAGE_BACKEND", BackendSQLite),
		DBPath:         getEnv("DB_PATH", "./data/splitsense.db"),
		SeedDemoData:   getEnvBool("SEED_DEMO_DATA", true),

		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		CacheTTL:       getEnvDuration("CACHE_TTL", 10*time.Minute),
		EventStreamLen: int64(getEnvInt("EVENT_STREAM_MAXLEN", 10000)),

		CacheSize: getEnvInt("CACHE_SIZE", 256),

		JWTSecret:     getEnv("JWT_SECRET", "splitsense-dev-secret"),
		TokenDuration: getEnvDuration("TOKEN_DURATION", 24*time.Hour),

		AssistantRemoteURL: getEnv("ASSISTANT_REMOTE_URL", ""),
		AssistantTimeout:   getEnvDuration("ASSISTANT_TIMEOUT", 8*time.Second),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.StorageBackend {
	case BackendSQLite:
		if c.DBPath == "" {
			errors = append(errors, "database path cannot be empty when using sqlite backend")
		}
	case BackendMemory:
	default:
		errors = append(errors, fmt.Sprintf("invalid storage backend '%s': must be one of [%s %s]", c.StorageBackend, BackendSQLite, BackendMemory))
	}

	if c.RedisAddr != "" {
		if c.RedisDB < 0 {
			errors = append(errors, fmt.Sprintf("invalid redis db %d: must not be negative", c.RedisDB))
		}
		if c.CacheTTL < 0 {
			errors = append(errors, fmt.Sprintf("invalid cache ttl %v: must not be negative", c.CacheTTL))
		}
		if c.EventStreamLen < 1 {
			errors = append(errors, fmt.Sprintf("invalid event stream length %d: must be at least 1", c.EventStreamLen))
		}
	}

	if c.CacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid cache size %d: must be at least 1", c.CacheSize))
	}

	if c.JWTSecret == "" {
		errors = append(errors, "JWT secret cannot be empty")
	}
	if c.TokenDuration < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid token duration %v: must be at least 1 minute", c.TokenDuration))
	}

	if c.AssistantRemoteURL != "" {
		if u, err := url.Parse(c.AssistantRemoteURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid assistant URL '%s': %v", c.AssistantRemoteURL, err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid assistant URL scheme '%s': must be 'http' or 'https'", u.Scheme))
		}
	}
	if c.AssistantTimeout < 100*time.Millisecond || c.AssistantTimeout > time.Minute {
		errors = append(errors, fmt.Sprintf("invalid assistant timeout %v: must be between 100ms and 1m", c.AssistantTimeout))
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
