package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Addr string
}

// BackendConfig describes the remote stock opname API this frontend calls.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
	// Operator is recorded as created_by on new sessions.
	Operator string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from the
		// environment directly.
		_ = godotenv.Load()
	}

	timeout, err := parseTimeout(getenvWithDefault("BACKEND_TIMEOUT", "15s"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr: getenvWithDefault("APP_ADDR", ":8080"),
		},
		Backend: BackendConfig{
			BaseURL:  os.Getenv("BACKEND_BASE_URL"),
			Timeout:  timeout,
			Operator: getenvWithDefault("OPNAME_OPERATOR", "user"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Addr == "" {
		return errors.New("APP_ADDR must be provided")
	}
	if c.Backend.BaseURL == "" {
		return errors.New("BACKEND_BASE_URL must be provided")
	}
	if c.Backend.Timeout <= 0 {
		return errors.New("BACKEND_TIMEOUT must be positive")
	}
	return nil
}

func parseTimeout(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid BACKEND_TIMEOUT %q: %w", raw, err)
	}
	return d, nil
}

func getenvWithDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
