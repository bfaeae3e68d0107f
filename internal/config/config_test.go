package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:             "8080",
		StorageBackend:   BackendSQLite,
		DBPath:           "./data/test.db",
		CacheSize:        64,
		JWTSecret:        "secret",
		TokenDuration:    time.Hour,
		AssistantTimeout: 5 * time.Second,
		LogLevel:         "info",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		errorString string
	}{
		{
			name:   "valid sqlite config",
			mutate: func(c *Config) {},
		},
		{
			name: "valid memory config with redis and remote",
			mutate: func(c *Config) {
				c.StorageBackend = BackendMemory
				c.DBPath = ""
				c.RedisAddr = "localhost:6379"
				c.EventStreamLen = 100
				c.AssistantRemoteURL = "https://llm.internal/ask"
			},
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "unknown backend",
			mutate:      func(c *Config) { c.StorageBackend = "postgres" },
			errorString: "invalid storage backend 'postgres'",
		},
		{
			name:        "sqlite without path",
			mutate:      func(c *Config) { c.DBPath = "" },
			errorString: "database path cannot be empty",
		},
		{
			name: "redis with empty stream",
			mutate: func(c *Config) {
				c.RedisAddr = "localhost:6379"
				c.EventStreamLen = 0
			},
			errorString: "invalid event stream length 0",
		},
		{
			name:        "zero cache size",
			mutate:      func(c *Config) { c.CacheSize = 0 },
			errorString: "invalid cache size 0",
		},
		{
			name:        "empty jwt secret",
			mutate:      func(c *Config) { c.JWTSecret = "" },
			errorString: "JWT secret cannot be empty",
		},
		{
			name:        "short token duration",
			mutate:      func(c *Config) { c.TokenDuration = time.Second },
			errorString: "invalid token duration 1s",
		},
		{
			name:        "remote url without http scheme",
			mutate:      func(c *Config) { c.AssistantRemoteURL = "ftp://llm" },
			errorString: "invalid assistant URL scheme 'ftp'",
		},
		{
			name:        "assistant timeout too short",
			mutate:      func(c *Config) { c.AssistantTimeout = time.Millisecond },
			errorString: "invalid assistant timeout 1ms",
		},
		{
			name:        "unknown log level",
			mutate:      func(c *Config) { c.LogLevel = "loud" },
			errorString: `unknown log level "loud"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()

			if tt.errorString == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.errorString)
			}
			if !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.errorString)
			}
		})
	}
}

func TestConfig_ValidateReportsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.CacheSize = 0
	cfg.JWTSecret = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	if got := strings.Count(err.Error(), "\n- "); got != 3 {
		t.Errorf("got %d reported problems, want 3: %v", got, err)
	}
}

// unsetEnv clears key for the test and restores it afterwards.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoad(t *testing.T) {
	for _, key := range []string{"PORT", "STORAGE_BACKEND", "SEED_DEMO_DATA", "ASSISTANT_TIMEOUT", "CACHE_SIZE", "LOG_LEVEL"} {
		unsetEnv(t, key)
	}

	t.Run("defaults", func(t *testing.T) {
		cfg := Load(filepath.Join(t.TempDir(), "missing.env"))
		if cfg.Port != "8080" || cfg.StorageBackend != BackendSQLite || !cfg.SeedDemoData {
			t.Errorf("unexpected defaults: %+v", cfg)
		}
		if cfg.AssistantTimeout != 8*time.Second || cfg.CacheSize != 256 {
			t.Errorf("unexpected defaults: %+v", cfg)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("defaults should validate: %v", err)
		}
	})

	t.Run("environment and env file", func(t *testing.T) {
		t.Setenv("CACHE_SIZE", "32")
		t.Setenv("LOG_LEVEL", "debug")

		envFile := filepath.Join(t.TempDir(), "test.env")
		content := "PORT=9090\nSTORAGE_BACKEND=memory\nSEED_DEMO_DATA=false\nASSISTANT_TIMEOUT=2s\nLOG_LEVEL=error\n"
		if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write env file: %v", err)
		}
		for _, key := range []string{"PORT", "STORAGE_BACKEND", "SEED_DEMO_DATA", "ASSISTANT_TIMEOUT"} {
			unsetEnv(t, key)
		}

		cfg := Load(envFile)
		if cfg.Port != "9090" || cfg.StorageBackend != BackendMemory || cfg.SeedDemoData {
			t.Errorf("env file values not applied: %+v", cfg)
		}
		if cfg.AssistantTimeout != 2*time.Second {
			t.Errorf("AssistantTimeout = %v, want 2s", cfg.AssistantTimeout)
		}
		if cfg.CacheSize != 32 || cfg.LogLevel != "debug" {
			t.Errorf("environment should win over the env file: %+v", cfg)
		}
	})
}
