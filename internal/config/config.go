package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all client configuration.
type Config struct {
	BaseURL     string
	TimeoutMs   int
	MaxRetries  int
	LogCalls    bool
	SessionFile string
}

// DefaultConfig returns a Config with sensible defaults. Saves are not
// retried by default; a failed save keeps optimistic local state and is
// surfaced instead of replayed.
func DefaultConfig() Config {
	return Config{
		BaseURL:    "http://localhost:5000/api",
		TimeoutMs:  15000,
		MaxRetries: 0,
		LogCalls:   false,
	}
}

// Load reads configuration from environment variables, falling back to
// defaults for any unset values.
func Load() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("TICKTOCK_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("TICKTOCK_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("TICKTOCK_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("TICKTOCK_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("TICKTOCK_SESSION_FILE"); v != "" {
		cfg.SessionFile = v
	}

	return cfg
}

// ResolveSessionFile returns the configured session file path, or the
// default ~/.ticktock/session.json when unset.
func (c Config) ResolveSessionFile() (string, error) {
	if c.SessionFile != "" {
		return c.SessionFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".ticktock", "session.json"), nil
}
