// Package config loads feedme settings from an optional YAML file and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"feedme/pkg/logger"
)

// Config holds all feedme configuration.
type Config struct {
	// Env is "development" or "production"; it selects the log encoder
	Env string `yaml:"env"`

	API     APIConfig     `yaml:"api"`
	Logging LoggingConfig `yaml:"logging"`
	Display DisplayConfig `yaml:"display"`
	MockAPI MockAPIConfig `yaml:"mockapi"`

	// Metrics enables request metrics in the client and the backend
	Metrics bool `yaml:"metrics"`
}

// APIConfig configures the backend connection.
type APIConfig struct {
	URL string `yaml:"url"`

	// Timeout is a Go duration; empty means no timeout
	Timeout   string `yaml:"timeout"`
	UserAgent string `yaml:"user_agent"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level       string   `yaml:"level"` // debug, info, warn, error
	OutputPaths []string `yaml:"output_paths"`
}

// DisplayConfig configures how days and meals are presented.
type DisplayConfig struct {
	// Timezone is an IANA name; empty or "Local" uses the system zone
	Timezone string `yaml:"timezone"`

	// Days is how many recent days the days view lists
	Days int `yaml:"days"`
}

// MockAPIConfig configures the development backend.
type MockAPIConfig struct {
	Port     int    `yaml:"port"`
	BasePath string `yaml:"base_path"`

	// Seed is an optional fixture file loaded at startup
	Seed string `yaml:"seed"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Env: "development",
		API: APIConfig{
			URL:       "http://localhost:8080",
			UserAgent: "feedme",
		},
		Logging: LoggingConfig{
			Level:       "warn",
			OutputPaths: []string{"stderr"},
		},
		Display: DisplayConfig{
			Timezone: "Local",
			Days:     7,
		},
		MockAPI: MockAPIConfig{
			Port: 8080,
		},
	}
}

// Load reads path (a missing file yields the defaults) and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.API.URL = getEnv("FEEDME_API_URL", c.API.URL)
	c.API.Timeout = getEnv("FEEDME_REQUEST_TIMEOUT", c.API.Timeout)
	c.Logging.Level = getEnv("FEEDME_LOG_LEVEL", c.Logging.Level)
	c.Env = getEnv("FEEDME_ENV", c.Env)
	c.Display.Timezone = getEnv("FEEDME_TIMEZONE", c.Display.Timezone)
	c.MockAPI.Port = getEnvInt("FEEDME_MOCKAPI_PORT", c.MockAPI.Port)
	c.Metrics = getEnvBool("FEEDME_METRICS", c.Metrics)
}

// Validate checks the values that are parsed lazily.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.URL) == "" {
		return fmt.Errorf("api.url is required")
	}
	if _, err := c.RequestTimeout(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Display.Days < 1 {
		return fmt.Errorf("display.days must be positive, got %d", c.Display.Days)
	}
	return nil
}

// IsDevelopment reports whether the development environment is selected.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// RequestTimeout parses API.Timeout.
func (c *Config) RequestTimeout() (time.Duration, error) {
	if c.API.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid api.timeout %q: %w", c.API.Timeout, err)
	}
	return d, nil
}

// Location resolves Display.Timezone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Display.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Display.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Display.Timezone, err)
	}
	return loc, nil
}

// LoggerConfig maps the logging section onto logger.Config.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:       c.Logging.Level,
		Development: c.IsDevelopment(),
		OutputPaths: c.Logging.OutputPaths,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.Atoi(value); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.ParseBool(value); err == nil {
			return result
		}
	}
	return defaultValue
}
