package config

import (
	"flag"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posbridge/internal/toast"
)

var envKeys = []string{
	"RUN_ADDRESS", "TOAST_CLIENT_ID", "TOAST_CLIENT_SECRET", "TOAST_RESTAURANT_GUID",
	"TOAST_ENVIRONMENT", "TOAST_BASE_URL", "TOAST_TIMEOUT", "DATABASE_URI",
	"JWT_SECRET", "API_KEY_HASH", "BULK_CONCURRENCY", "LOG_LEVEL",
}

// clearEnv unsets every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func load(t *testing.T, args ...string) *Config {
	t.Helper()
	cfg, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), args)
	require.NoError(t, err)
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := load(t)

	assert.Equal(t, "localhost:8080", cfg.RunAddress)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 8, cfg.BulkConcurrency)
	assert.Empty(t, cfg.DatabaseURI)

	base, err := cfg.APIBaseURL()
	require.NoError(t, err)
	assert.Equal(t, toast.ProductionHost, base)
}

func TestLoad_EnvOverridesFlags(t *testing.T) {
	clearEnv(t)
	t.Setenv("RUN_ADDRESS", ":9090")
	t.Setenv("TOAST_CLIENT_ID", "env-id")
	t.Setenv("TOAST_ENVIRONMENT", "sandbox")
	t.Setenv("TOAST_TIMEOUT", "1500")
	t.Setenv("BULK_CONCURRENCY", "3")

	cfg := load(t, "-a", ":7070", "-client-id", "flag-id", "-client-secret", "flag-secret", "-timeout", "5s")

	assert.Equal(t, ":9090", cfg.RunAddress)
	assert.Equal(t, "env-id", cfg.ClientID)
	assert.Equal(t, "flag-secret", cfg.ClientSecret)
	assert.Equal(t, 1500*time.Millisecond, cfg.Timeout)
	assert.Equal(t, 3, cfg.BulkConcurrency)

	base, err := cfg.APIBaseURL()
	require.NoError(t, err)
	assert.Equal(t, toast.SandboxHost, base)
}

func TestLoad_DurationString(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOAST_TIMEOUT", "45s")

	assert.Equal(t, 45*time.Second, load(t).Timeout)
}

func TestLoad_BadNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("BULK_CONCURRENCY", "many")
	_, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	assert.ErrorContains(t, err, "BULK_CONCURRENCY")

	clearEnv(t)
	t.Setenv("TOAST_TIMEOUT", "soon")
	_, err = Load(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	assert.ErrorContains(t, err, "TOAST_TIMEOUT")
}

func TestBaseURLOverride(t *testing.T) {
	cfg := &Config{Environment: "nowhere", BaseURL: "http://localhost:9999"}
	base, err := cfg.APIBaseURL()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", base)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ClientID:        "id",
			ClientSecret:    "secret",
			Environment:     "sandbox",
			Timeout:         time.Second,
			JWTSecret:       "jwt",
			BulkConcurrency: 4,
			LogLevel:        "debug",
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no client id", func(c *Config) { c.ClientID = "" }},
		{"no secret", func(c *Config) { c.ClientSecret = "" }},
		{"no jwt secret", func(c *Config) { c.JWTSecret = "" }},
		{"unknown env", func(c *Config) { c.Environment = "staging" }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"zero bulk", func(c *Config) { c.BulkConcurrency = 0 }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestSlogLevel(t *testing.T) {
	level, err := (&Config{LogLevel: "warn"}).SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}
