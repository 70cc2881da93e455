package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the play-by-play collector
type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database" json:"database"`

	// Upstream API settings
	API APIConfig `yaml:"api" json:"api"`

	// Rate limiting configuration
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Scrape settings
	Scrape ScrapeConfig `yaml:"scrape" json:"scrape"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// DatabaseConfig holds the SQLite target settings
type DatabaseConfig struct {
	Path string `yaml:"path" json:"path"`
}

// APIConfig holds upstream endpoint configuration
type APIConfig struct {
	BaseURL        string        `yaml:"base_url" json:"base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`
}

// RateLimitConfig holds rate limiting configuration. Only the per-game
// log endpoint is throttled; schedule listing is cheap and unthrottled.
type RateLimitConfig struct {
	GameLogInterval time.Duration `yaml:"game_log_interval" json:"game_log_interval"`
}

// ScrapeConfig holds date-range defaults for backfill runs
type ScrapeConfig struct {
	StartDate    string `yaml:"start_date" json:"start_date"`
	SkipExisting bool   `yaml:"skip_existing" json:"skip_existing"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults. The
// default start date predates the upstream's earliest tracked season.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "nhl_pxp.db",
		},
		API: APIConfig{
			BaseURL:        "https://statsapi.web.nhl.com/api/v1",
			RequestTimeout: 30 * time.Second,
		},
		RateLimit: RateLimitConfig{
			GameLogInterval: time.Minute,
		},
		Scrape: ScrapeConfig{
			StartDate:    "2007-09-01",
			SkipExisting: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromEnv loads configuration overrides from environment variables.
// A .env file in the working directory is honored if present.
func (c *Config) LoadFromEnv() error {
	// Ignore the error: a missing .env file is the normal case
	_ = godotenv.Load()

	if path := os.Getenv("NHLPXP_DATABASE"); path != "" {
		c.Database.Path = path
	}
	if baseURL := os.Getenv("NHLPXP_BASE_URL"); baseURL != "" {
		c.API.BaseURL = baseURL
	}
	if timeout := os.Getenv("NHLPXP_REQUEST_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid NHLPXP_REQUEST_TIMEOUT: %w", err)
		}
		c.API.RequestTimeout = d
	}
	if interval := os.Getenv("NHLPXP_GAME_LOG_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			return fmt.Errorf("invalid NHLPXP_GAME_LOG_INTERVAL: %w", err)
		}
		c.RateLimit.GameLogInterval = d
	}
	if startDate := os.Getenv("NHLPXP_START_DATE"); startDate != "" {
		c.Scrape.StartDate = startDate
	}
	if level := os.Getenv("NHLPXP_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if file := os.Getenv("NHLPXP_LOG_FILE"); file != "" {
		c.Logging.File = file
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file, overlaying the
// receiver's current values.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base URL is required")
	}
	if c.API.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	if c.RateLimit.GameLogInterval < 0 {
		return fmt.Errorf("game log interval must not be negative")
	}
	if _, err := time.Parse("2006-01-02", c.Scrape.StartDate); err != nil {
		return fmt.Errorf("invalid scrape start date: %w", err)
	}
	return nil
}

// Load builds the effective configuration: defaults, then an optional
// YAML file, then environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := cfg.LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
