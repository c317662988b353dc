package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/brk3/mindtrack/internal/logger"
	"go.yaml.in/yaml/v4"
)

type Config struct {
	Addr                 string      `yaml:"addr"`
	Storage              string      `yaml:"storage"`
	DBPath               string      `yaml:"db_path"`
	Timezone             string      `yaml:"timezone"`
	SuggestionWindowDays int         `yaml:"suggestion_window_days"`
	AuthToken            string      `yaml:"auth_token"`
	CORSAllowedOrigins   []string    `yaml:"cors_allowed_origins"`
	LogLevel             string      `yaml:"log_level"`
	LogFormat            string      `yaml:"log_format"`
	APIBaseURL           string      `yaml:"api_base_url"`
	Nudge                NudgeConfig `yaml:"nudge"`
}

type NudgeConfig struct {
	ResendAPIKey   string `yaml:"resend_api_key"`
	Email          string `yaml:"email"`
	From           string `yaml:"from"`
	ThresholdHours int    `yaml:"threshold_hours"`
}

func Default() *Config {
	return &Config{
		Addr:                 ":5000",
		Storage:              "sqlite",
		DBPath:               "mindtrack.db",
		Timezone:             "Local",
		SuggestionWindowDays: 7,
		CORSAllowedOrigins:   []string{"*"},
		LogLevel:             "info",
		LogFormat:            "text",
		APIBaseURL:           "http://localhost:5000",
		Nudge: NudgeConfig{
			From:           "onboarding@resend.dev",
			ThresholdHours: 4,
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (if path is
// non-empty) and MINDTRACK_* environment variables, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
		logger.Debug("Loaded config file", "path", path)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	// PORT is what most PaaS platforms set.
	if v := os.Getenv("PORT"); v != "" {
		c.Addr = ":" + v
	}
	c.Addr = getenv("MINDTRACK_ADDR", c.Addr)
	c.Storage = getenv("MINDTRACK_STORAGE", c.Storage)
	c.DBPath = getenv("MINDTRACK_DB_PATH", c.DBPath)
	c.Timezone = getenv("MINDTRACK_TIMEZONE", c.Timezone)
	c.AuthToken = getenv("MINDTRACK_AUTH_TOKEN", c.AuthToken)
	c.LogLevel = getenv("MINDTRACK_LOG_LEVEL", c.LogLevel)
	c.LogFormat = getenv("MINDTRACK_LOG_FORMAT", c.LogFormat)
	c.APIBaseURL = getenv("MINDTRACK_API_BASE", c.APIBaseURL)
	c.Nudge.ResendAPIKey = getenv("MINDTRACK_RESEND_API_KEY", c.Nudge.ResendAPIKey)
	c.Nudge.Email = getenv("MINDTRACK_NOTIFY_EMAIL", c.Nudge.Email)
	if v := os.Getenv("MINDTRACK_CORS_ALLOWED_ORIGINS"); v != "" {
		c.CORSAllowedOrigins = strings.Split(v, ",")
	}

	var err error
	if c.SuggestionWindowDays, err = getenvInt("MINDTRACK_SUGGESTION_WINDOW_DAYS", c.SuggestionWindowDays); err != nil {
		return err
	}
	if c.Nudge.ThresholdHours, err = getenvInt("MINDTRACK_NUDGE_THRESHOLD", c.Nudge.ThresholdHours); err != nil {
		return err
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Storage {
	case "sqlite", "bolt":
	default:
		errs = append(errs, fmt.Errorf("invalid storage %q (must be sqlite or bolt)", c.Storage))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path is required"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err))
	}
	if c.SuggestionWindowDays < 1 {
		errs = append(errs, fmt.Errorf("suggestion_window_days must be positive, got %d", c.SuggestionWindowDays))
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid log_format %q (must be text or json)", c.LogFormat))
	}
	return errors.Join(errs...)
}

// Location resolves the configured timezone used to decide what "today" is.
func (c *Config) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}
