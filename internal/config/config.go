// Package config loads server and CLI settings.
//
// Settings come from a YAML file when one is present, otherwise from
// environment variables:
//
//	PORT             listen port (default 8080)
//	LOG_LEVEL        debug, info, warn, error (default info)
//	TOLERANCE        advisory total check tolerance (default 0.01)
//	METRICS_ENABLED  expose /metrics (default true)
//	STATIC_PATH      directory served at / (default ../frontend/static)
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/billsplit/internal/calculator"
)

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Split   SplitConfig   `yaml:"split"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           int    `yaml:"port"`
	StaticPath     string `yaml:"static_path"`
	MetricsEnabled bool   `yaml:"metrics_enabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SplitConfig holds allocation settings.
type SplitConfig struct {
	// Tolerance is used when checking that charges add up to the total.
	Tolerance float64 `yaml:"tolerance"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			StaticPath:     "../frontend/static",
			MetricsEnabled: true,
		},
		Logging: LoggingConfig{Level: "info"},
		Split:   SplitConfig{Tolerance: calculator.DefaultTolerance},
	}
}

// Load reads a YAML config file on top of the defaults. Environment
// variables in the file (e.g. ${PORT}) are expanded first.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv builds the configuration from environment variables only.
func LoadFromEnv() *Config {
	def := Default()
	return &Config{
		Server: ServerConfig{
			Port:           getEnvInt("PORT", def.Server.Port),
			StaticPath:     getEnv("STATIC_PATH", def.Server.StaticPath),
			MetricsEnabled: getEnvBool("METRICS_ENABLED", def.Server.MetricsEnabled),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", def.Logging.Level),
		},
		Split: SplitConfig{
			Tolerance: getEnvFloat("TOLERANCE", def.Split.Tolerance),
		},
	}
}

// LoadOrEnv loads path, falling back to the environment only when path is
// empty or the file does not exist. A file that exists but fails to parse
// or validate is an error.
func LoadOrEnv(path string) (*Config, error) {
	if path == "" {
		return LoadFromEnv(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return LoadFromEnv(), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail at startup.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Split.Tolerance < 0 {
		return fmt.Errorf("tolerance must be non-negative, got %v", c.Split.Tolerance)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}
