package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "nhl_pxp.db", cfg.Database.Path)
	assert.Equal(t, "https://statsapi.web.nhl.com/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.RateLimit.GameLogInterval)
	assert.Equal(t, "2007-09-01", cfg.Scrape.StartDate)
	assert.True(t, cfg.Scrape.SkipExisting)
	assert.Equal(t, "info", cfg.Logging.Level)

	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("NHLPXP_DATABASE", "/tmp/override.db")
	t.Setenv("NHLPXP_GAME_LOG_INTERVAL", "30s")
	t.Setenv("NHLPXP_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "/tmp/override.db", cfg.Database.Path)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.GameLogInterval)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromEnvRejectsBadDuration(t *testing.T) {
	t.Setenv("NHLPXP_GAME_LOG_INTERVAL", "sixty seconds")

	cfg := DefaultConfig()
	assert.Error(t, cfg.LoadFromEnv())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
database:
  path: /data/pxp.db
rate_limit:
  game_log_interval: 90s
logging:
  level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, "/data/pxp.db", cfg.Database.Path)
	assert.Equal(t, 90*time.Second, cfg.RateLimit.GameLogInterval)
	assert.Equal(t, "warn", cfg.Logging.Level)
	// Untouched sections keep their defaults
	assert.Equal(t, "https://statsapi.web.nhl.com/api/v1", cfg.API.BaseURL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty database path", func(c *Config) { c.Database.Path = "" }},
		{"empty base URL", func(c *Config) { c.API.BaseURL = "" }},
		{"zero timeout", func(c *Config) { c.API.RequestTimeout = 0 }},
		{"negative interval", func(c *Config) { c.RateLimit.GameLogInterval = -time.Second }},
		{"bad start date", func(c *Config) { c.Scrape.StartDate = "September 2007" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
