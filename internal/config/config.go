package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/text/language"
)

// Anchor store backends selectable via ANCHOR_STORE.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// AnchorStore selects where water property anchor points live:
	// the built-in in-memory table or a postgres database.
	AnchorStore string
	DatabaseURL string

	// AnchorCacheTTL bounds how long fetched anchor tables are served
	// from memory before the postgres store is asked again.
	AnchorCacheTTL time.Duration

	// DefaultLocale is used for unit names when a request carries none.
	DefaultLocale string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	anchorCacheTTL, err := parseDuration("ANCHOR_CACHE_TTL", "30s")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		AnchorStore:     envOrDefault("ANCHOR_STORE", StoreMemory),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		AnchorCacheTTL:  anchorCacheTTL,
		DefaultLocale:   envOrDefault("DEFAULT_LOCALE", "en"),
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}
	switch cfg.AnchorStore {
	case StoreMemory, StorePostgres:
	default:
		return nil, fmt.Errorf("invalid ANCHOR_STORE %q (want %q or %q)", cfg.AnchorStore, StoreMemory, StorePostgres)
	}
	if cfg.AnchorStore == StorePostgres && cfg.DatabaseURL == "" {
		return nil, errors.New("ANCHOR_STORE is postgres but DATABASE_URL is not set")
	}
	if _, err := language.Parse(cfg.DefaultLocale); err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_LOCALE %q: %w", cfg.DefaultLocale, err)
	}

	return cfg, nil
}

func parseDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
