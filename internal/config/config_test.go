package config

import (
	"strings"
	"testing"
	"time"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into a test. t.Setenv restores the originals afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ENV", "CORS_ALLOWED_ORIGIN", "RATE_LIMIT_PER_MINUTE", "DATABASE_URL",
		"SETTINGS_DOCTYPE", "SETTINGS_API_KEY_FIELD", "MANDRILL_API_KEY",
		"MANDRILL_BASE_URL", "MANDRILL_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("MANDRILL_API_KEY", "md-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.Env != "development" {
		t.Errorf("server defaults: got %q / %q", cfg.Port, cfg.Env)
	}
	if cfg.SettingsDoctype != "Mailchimp Settings" {
		t.Errorf("doctype: got %q", cfg.SettingsDoctype)
	}
	if cfg.SettingsAPIKeyField != FieldTransactionalAPIKey {
		t.Errorf("field: got %q", cfg.SettingsAPIKeyField)
	}
	if cfg.MandrillTimeout != 30*time.Second {
		t.Errorf("timeout: got %v", cfg.MandrillTimeout)
	}
	if cfg.RateLimitPerMin != 60 {
		t.Errorf("rate limit: got %d", cfg.RateLimitPerMin)
	}
}

func TestLoad_RequiresACredentialSource(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "DATABASE_URL or MANDRILL_API_KEY") {
		t.Fatalf("expected credential source error, got %v", err)
	}
}

func TestLoad_RejectsUnknownField(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/mailer")
	t.Setenv("SETTINGS_API_KEY_FIELD", "secret")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "SETTINGS_API_KEY_FIELD") {
		t.Fatalf("expected field error, got %v", err)
	}
}

func TestLoad_LegacyFieldAccepted(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/mailer")
	t.Setenv("SETTINGS_API_KEY_FIELD", FieldAPIKey)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SettingsAPIKeyField != FieldAPIKey {
		t.Errorf("field: got %q", cfg.SettingsAPIKeyField)
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	cases := map[string]time.Duration{
		"":      5 * time.Second,
		"12":    12 * time.Second,
		"1m30s": 90 * time.Second,
		"bogus": 5 * time.Second,
	}
	for in, want := range cases {
		t.Setenv("MANDRILL_TIMEOUT", in)
		if got := getEnvAsDuration("MANDRILL_TIMEOUT", 5*time.Second); got != want {
			t.Errorf("%q: got %v, want %v", in, got, want)
		}
	}
}
