// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"routegen/internal/routing"
)

// Content source kinds accepted in CONTENT_SOURCE.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

// EnvFiles are the dotenv files Load reads, in order. Variables already set
// in the process environment are never overwritten.
var EnvFiles = []string{".env", ".env.local"}

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Site routing
	Locales         []string
	DefaultLocale   string
	Preview         bool // STACKBIT_PREVIEW: route drafts
	ItemModels      []string
	DefaultPageSize int
	Workers         int

	// Content source
	ContentSource string // "file", "postgres", "sqlite"
	ContentFile   string
	SQLitePath    string

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache); empty host disables the props cache.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Build output
	OutputDir string

	// S3-compatible object storage for publishing builds
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Prefix    string
	S3PublicURL string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode or a numeric setting is malformed.
func Load() (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		Locales:       envList("SITE_LOCALES", []string{"en-US", "es"}),
		DefaultLocale: envOrDefault("SITE_DEFAULT_LOCALE", "en-US"),
		Preview:       envBool("STACKBIT_PREVIEW"),
		ItemModels:    envList("ITEM_MODELS", nil),

		ContentSource: envOrDefault("CONTENT_SOURCE", SourceFile),
		ContentFile:   envOrDefault("CONTENT_FILE", ".sourcebit-nextjs-cache.json"),
		SQLitePath:    envOrDefault("SQLITE_PATH", "routegen.db"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "routegen"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "routegen"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		OutputDir: envOrDefault("OUTPUT_DIR", "out"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3Prefix:    os.Getenv("S3_PREFIX"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),
	}

	var err error
	if cfg.DefaultPageSize, err = envInt("DEFAULT_PAGE_SIZE", routing.DefaultPageSize); err != nil {
		return nil, err
	}
	// Only an unset variable falls back to the default.
	if cfg.DefaultPageSize <= 0 {
		return nil, fmt.Errorf("%w: DEFAULT_PAGE_SIZE must be positive, got %d",
			routing.ErrInvalidConfiguration, cfg.DefaultPageSize)
	}
	if cfg.Workers, err = envInt("RESOLVE_WORKERS", 0); err != nil {
		return nil, err
	}

	switch cfg.ContentSource {
	case SourceFile, SourcePostgres, SourceSQLite:
	default:
		return nil, fmt.Errorf("CONTENT_SOURCE must be one of file, postgres, sqlite; got %q", cfg.ContentSource)
	}

	if cfg.Env == "production" && cfg.ContentSource == SourcePostgres {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// Routing returns the resolver options described by the configuration.
func (c *Config) Routing() routing.Options {
	return routing.Options{
		Locales:         c.Locales,
		DefaultLocale:   c.DefaultLocale,
		Preview:         c.Preview,
		ItemModels:      c.ItemModels,
		DefaultPageSize: c.DefaultPageSize,
		Workers:         c.Workers,
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// ValkeyAddr returns the cache address (host:port).
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.ValkeyHost, c.ValkeyPort)
}

// CacheEnabled reports whether a Valkey host is configured.
func (c *Config) CacheEnabled() bool {
	return c.ValkeyHost != ""
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// loadEnvFiles loads each dotenv file that exists.
func loadEnvFiles() error {
	for _, path := range EnvFiles {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envList reads a comma-separated list, dropping blank entries.
func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// envBool treats "1", "true", "yes" (any case) as set.
func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
