// Package config loads and validates all environment variables at startup.
// Every other package receives typed values; nothing else reads os.Getenv.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	FieldTransactionalAPIKey = "transactional_email_api_key"
	FieldAPIKey              = "api_key"
)

// Config is the fully-parsed application configuration.
type Config struct {
	// ── Server ────────────────────────────────────────────────────────────────
	Port              string // default "8080"
	Env               string // "development" | "staging" | "production"
	CORSAllowedOrigin string // empty → echo Origin outside production, "*" in production
	RateLimitPerMin   int    // guest send endpoint, per client IP; default 60

	// ── Database ──────────────────────────────────────────────────────────────
	// Optional. Without it the API key must come from MANDRILL_API_KEY and
	// swallowed errors are only logged, not persisted.
	DatabaseURL string

	// ── Settings record ───────────────────────────────────────────────────────
	SettingsDoctype     string // default "Mailchimp Settings"
	SettingsAPIKeyField string // "transactional_email_api_key" (default) | "api_key"

	// ── Mandrill ──────────────────────────────────────────────────────────────
	MandrillAPIKey  string        // fallback when the settings record has no key
	MandrillBaseURL string        // default "https://mandrillapp.com/api/1.0"
	MandrillTimeout time.Duration // default 30s
}

// Load reads all environment variables and returns a validated Config.
// A .env file in the working directory is loaded first when present; real
// environment variables always take precedence over .env values.
func Load() (*Config, error) {
	// Missing file is fine; godotenv.Load never overrides variables already set.
	_ = godotenv.Load()

	c := &Config{
		Port:                getEnv("PORT", "8080"),
		Env:                 getEnv("ENV", "development"),
		CORSAllowedOrigin:   os.Getenv("CORS_ALLOWED_ORIGIN"),
		RateLimitPerMin:     getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		SettingsDoctype:     getEnv("SETTINGS_DOCTYPE", "Mailchimp Settings"),
		SettingsAPIKeyField: getEnv("SETTINGS_API_KEY_FIELD", FieldTransactionalAPIKey),
		MandrillAPIKey:      os.Getenv("MANDRILL_API_KEY"),
		MandrillBaseURL:     getEnv("MANDRILL_BASE_URL", "https://mandrillapp.com/api/1.0"),
		MandrillTimeout:     getEnvAsDuration("MANDRILL_TIMEOUT", 30*time.Second),
	}

	return c, c.validate()
}

func (c *Config) validate() error {
	var errs []error

	if c.DatabaseURL == "" && c.MandrillAPIKey == "" {
		errs = append(errs, errors.New("at least one of DATABASE_URL or MANDRILL_API_KEY must be set"))
	}

	switch c.SettingsAPIKeyField {
	case FieldTransactionalAPIKey, FieldAPIKey:
	default:
		errs = append(errs, fmt.Errorf("SETTINGS_API_KEY_FIELD must be %q or %q, got %q",
			FieldTransactionalAPIKey, FieldAPIKey, c.SettingsAPIKeyField))
	}

	if c.RateLimitPerMin <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimitPerMin))
	}

	return errors.Join(errs...)
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// ─── HELPERS ─────────────────────────────────────────────────────────────────

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	// A plain integer is treated as seconds.
	if value, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(value) * time.Second
	}
	// Fall back to Go duration syntax: "30s", "5m", "1h", etc.
	if duration, err := time.ParseDuration(strings.TrimSpace(valueStr)); err == nil {
		return duration
	}
	return defaultValue
}
