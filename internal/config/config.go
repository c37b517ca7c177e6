// Package config loads qbank settings from a YAML file, .env and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables.
const (
	EnvConfig        = "QBANK_CONFIG"
	EnvDB            = "QBANK_DB"
	EnvLogLevel      = "QBANK_LOG_LEVEL"
	EnvAdminHash     = "QBANK_ADMIN_HASH"
	EnvAdminPassword = "QBANK_ADMIN_PASSWORD"
)

// Config holds all qbank configuration.
type Config struct {
	DBPath   string      `yaml:"db_path"`
	LogLevel string      `yaml:"log_level"`
	Admin    AdminConfig `yaml:"admin"`
	Display  Display     `yaml:"display"`
}

// AdminConfig configures the content-management gate.
type AdminConfig struct {
	// PasswordHash is a bcrypt hash. Empty means the built-in default password.
	PasswordHash string `yaml:"password_hash"`
}

// Display configures text output.
type Display struct {
	Width int `yaml:"width"`
}

// Dir returns ~/.qbank.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".qbank")
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DBPath:   filepath.Join(Dir(), "qbank.db"),
		LogLevel: "warn",
		Display:  Display{Width: 80},
	}
}

// DefaultPath returns the config file location: $QBANK_CONFIG or
// ~/.qbank/config.yaml.
func DefaultPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads .env from the working directory (if present), then the YAML file
// at path (missing is fine), then applies environment overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()
	if cfg.Display.Width <= 0 {
		cfg.Display.Width = 80
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDB); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvAdminHash); v != "" {
		c.Admin.PasswordHash = v
	}
}
