package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	CORS     CORSConfig
	Logging  LoggingConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL          string
	Driver       string // pgx, postgres, sqlite3
	WaitTimeout  time.Duration
	MaxOpenConns int
	MaxIdleConns int
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port               int
	RateLimitPerMinute int
}

// Addr is the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// Load reads configuration from environment variables, after merging a local .env file if present.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from lookup and validates it.
// Every malformed or missing value is reported together.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	env := envReader{lookup: lookup}

	cfg := &Config{
		Database: DatabaseConfig{
			URL:          env.str("DATABASE_URL", ""),
			Driver:       env.str("DB_DRIVER", "pgx"),
			WaitTimeout:  time.Duration(env.integer("DB_WAIT_SECONDS", 90)) * time.Second,
			MaxOpenConns: env.integer("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: env.integer("DB_MAX_IDLE_CONNS", 5),
		},
		Server: ServerConfig{
			Port:               env.integer("PORT", 8080),
			RateLimitPerMinute: env.integer("RATE_LIMIT_PER_MINUTE", 0),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseAllowedOrigins(env.str("CORS_ALLOWED_ORIGINS", "")),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(env.str("LOG_LEVEL", "info")),
			Format: strings.ToLower(env.str("LOG_FORMAT", "json")),
		},
	}

	errs := append(env.errs, cfg.problems()...)
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return cfg, nil
}

// Validate checks that all required configuration is present and valid
func (c *Config) Validate() error {
	if errs := c.problems(); len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func (c *Config) problems() []string {
	var errors []string

	if c.Database.URL == "" {
		errors = append(errors, "DATABASE_URL is required")
	}

	validDrivers := map[string]bool{"pgx": true, "postgres": true, "sqlite3": true}
	if !validDrivers[c.Database.Driver] {
		errors = append(errors, "DB_DRIVER must be one of: pgx, postgres, sqlite3")
	}

	if c.Database.WaitTimeout < 0 {
		errors = append(errors, "DB_WAIT_SECONDS must not be negative")
	}
	if c.Database.MaxOpenConns < 1 {
		errors = append(errors, "DB_MAX_OPEN_CONNS must be at least 1")
	}
	if c.Database.MaxIdleConns < 0 {
		errors = append(errors, "DB_MAX_IDLE_CONNS must not be negative")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errors = append(errors, "PORT must be between 1 and 65535")
	}
	if c.Server.RateLimitPerMinute < 0 {
		errors = append(errors, "RATE_LIMIT_PER_MINUTE must not be negative")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		errors = append(errors, "LOG_LEVEL must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		errors = append(errors, "LOG_FORMAT must be one of: json, text")
	}

	return errors
}

type envReader struct {
	lookup func(string) (string, bool)
	errs   []string
}

func (e *envReader) str(key, fallback string) string {
	if value, ok := e.lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func (e *envReader) integer(key string, fallback int) int {
	raw := e.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Sprintf("%s must be an integer, got %q", key, raw))
		return fallback
	}
	return v
}

func parseAllowedOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
