package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds server and client settings
type Config struct {
	Addr        string `yaml:"addr" json:"addr"`                 // HTTP listen address
	DatabaseURL string `yaml:"database_url" json:"database_url"` // postgres:// DSN or sqlite path
	TokenSecret string `yaml:"token_secret" json:"token_secret"` // HMAC secret for session tokens
	TokenTTL    string `yaml:"token_ttl" json:"token_ttl"`       // Token lifetime, e.g. "168h"
	StaticDir   string `yaml:"static_dir" json:"static_dir"`     // SPA directory; empty disables

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	logPath := ""
	if home != "" {
		logPath = filepath.Join(home, ".ironstore", "logs", "ironstore.log")
	}

	return &Config{
		Addr:        getEnv("IRONSTORE_ADDR", ":8080"),
		DatabaseURL: getEnv("IRONSTORE_DATABASE_URL", "postgres://localhost:5432/ironstore?sslmode=disable"),
		TokenSecret: getEnv("IRONSTORE_TOKEN_SECRET", "dev-secret-change-me"),
		TokenTTL:    getEnv("IRONSTORE_TOKEN_TTL", "168h"),
		StaticDir:   getEnv("IRONSTORE_STATIC_DIR", ""),
		LogLevel:    getEnv("IRONSTORE_LOG_LEVEL", "INFO"),
		LogFile:     getEnv("IRONSTORE_LOG_FILE", logPath),
		LogConsole:  getEnv("IRONSTORE_LOG_CONSOLE", "false") == "true",
	}
}

// TokenLifetime parses TokenTTL, falling back to 7 days on bad input
func (c *Config) TokenLifetime() time.Duration {
	d, err := time.ParseDuration(c.TokenTTL)
	if err != nil || d <= 0 {
		return 168 * time.Hour
	}
	return d
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".ironstore", "config.yaml"), nil
}

// Load loads config from ~/.ironstore/config.yaml
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	// Return defaults if no config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save saves config to ~/.ironstore/config.yaml
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
