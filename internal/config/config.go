// Package config provides configuration structures and loading for the fuel
// price query tool.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration. Precedence: defaults, then config file,
// then environment, then CLI flags.
type Config struct {
	// Juhe.cn API key. Required only for the juhe source.
	JuheAPIKey string `yaml:"juhe_api_key"`
	// Log level (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`
	// Log format (json, console)
	LogFormat string `yaml:"log_format"`
	// Path of the query history file
	HistoryPath string `yaml:"history_path"`
	// Path of the adjustment calendar file
	CalendarPath string `yaml:"calendar_path"`
	// Maximum number of notices to fetch
	NoticeLimit int `yaml:"notice_limit"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		JuheAPIKey:   "",
		LogLevel:     "info",
		LogFormat:    "console",
		HistoryPath:  "oil_history.json",
		CalendarPath: "oil_calendar.json",
		NoticeLimit:  5,
	}
}

// LoadFromFile overlays configuration from a YAML file. A missing file is
// not an error.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables, reading a
// .env file first if one exists.
func (c *Config) LoadFromEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("JUHE_API_KEY"); v != "" {
		c.JuheAPIKey = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("HISTORY_PATH"); v != "" {
		c.HistoryPath = v
	}
	if v := os.Getenv("CALENDAR_PATH"); v != "" {
		c.CalendarPath = v
	}
	if v := os.Getenv("NOTICE_LIMIT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			c.NoticeLimit = i
		}
	}
}
