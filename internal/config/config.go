package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"posbridge/internal/toast"
)

type Config struct {
	RunAddress      string
	ClientID        string
	ClientSecret    string
	RestaurantGUID  string
	Environment     string
	BaseURL         string
	Timeout         time.Duration
	DatabaseURI     string
	JWTSecret       string
	APIKeyHash      string
	BulkConcurrency int
	LogLevel        string
}

// Load reads flags from args and lets environment variables override them.
// A .env file in the working directory is loaded first when present; it
// never replaces variables that are already set.
func Load(fset *flag.FlagSet, args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	fset.StringVar(&cfg.RunAddress, "a", "localhost:8080", "server address and port")
	fset.StringVar(&cfg.ClientID, "client-id", "", "POS API client id")
	fset.StringVar(&cfg.ClientSecret, "client-secret", "", "POS API client secret")
	fset.StringVar(&cfg.RestaurantGUID, "restaurant", "", "default restaurant GUID")
	fset.StringVar(&cfg.Environment, "env", "production", "POS API environment (production or sandbox)")
	fset.StringVar(&cfg.BaseURL, "base-url", "", "POS API base URL, overrides -env")
	fset.DurationVar(&cfg.Timeout, "timeout", 30*time.Second, "POS API request timeout")
	fset.StringVar(&cfg.DatabaseURI, "d", "", "database URI for the audit log (empty disables it)")
	fset.StringVar(&cfg.JWTSecret, "s", "", "jwt signing key")
	fset.StringVar(&cfg.APIKeyHash, "k", "", "bcrypt hash of the operator API key")
	fset.IntVar(&cfg.BulkConcurrency, "bulk", 8, "max concurrent requests per bulk operation")
	fset.StringVar(&cfg.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	if err := fset.Parse(args); err != nil {
		return nil, err
	}

	cfg.RunAddress = getEnv("RUN_ADDRESS", cfg.RunAddress)
	cfg.ClientID = getEnv("TOAST_CLIENT_ID", cfg.ClientID)
	cfg.ClientSecret = getEnv("TOAST_CLIENT_SECRET", cfg.ClientSecret)
	cfg.RestaurantGUID = getEnv("TOAST_RESTAURANT_GUID", cfg.RestaurantGUID)
	cfg.Environment = getEnv("TOAST_ENVIRONMENT", cfg.Environment)
	cfg.BaseURL = getEnv("TOAST_BASE_URL", cfg.BaseURL)
	cfg.DatabaseURI = getEnv("DATABASE_URI", cfg.DatabaseURI)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.APIKeyHash = getEnv("API_KEY_HASH", cfg.APIKeyHash)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	var err error
	if cfg.Timeout, err = getDuration("TOAST_TIMEOUT", cfg.Timeout); err != nil {
		return nil, err
	}
	if cfg.BulkConcurrency, err = getInt("BULK_CONCURRENCY", cfg.BulkConcurrency); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports the first setting that keeps the server from starting.
func (c *Config) Validate() error {
	switch {
	case c.ClientID == "" || c.ClientSecret == "":
		return errors.New("TOAST_CLIENT_ID and TOAST_CLIENT_SECRET are required")
	case c.JWTSecret == "":
		return errors.New("JWT_SECRET is required")
	case c.Timeout <= 0:
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	case c.BulkConcurrency <= 0:
		return fmt.Errorf("bulk concurrency must be positive, got %d", c.BulkConcurrency)
	}
	if _, err := c.APIBaseURL(); err != nil {
		return err
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// APIBaseURL is the explicit base URL, or the host of the environment.
func (c *Config) APIBaseURL() (string, error) {
	if c.BaseURL != "" {
		return c.BaseURL, nil
	}
	return toast.HostFor(c.Environment)
}

func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	// Plain numbers are milliseconds.
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}
