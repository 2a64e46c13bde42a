package app

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("GATEHOUSE_HTTP_ADDR", "")
	t.Setenv("GATEHOUSE_DATABASE_URL", "")

	cfg := LoadConfig()
	if cfg.HTTPAddr != "0.0.0.0:8080" {
		t.Fatalf("unexpected addr: %q", cfg.HTTPAddr)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Fatalf("unexpected log defaults: %q %q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.ReadHeaderTimeout != 5*time.Second {
		t.Fatalf("unexpected read header timeout: %v", cfg.ReadHeaderTimeout)
	}
	if !cfg.MigrateOnStart {
		t.Fatalf("migrate-on-start must default to true")
	}
	if cfg.DBMaxConns != 10 {
		t.Fatalf("unexpected max conns: %d", cfg.DBMaxConns)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("GATEHOUSE_HTTP_ADDR", "127.0.0.1:9999")
	t.Setenv("GATEHOUSE_LOG_FORMAT", "pretty")
	t.Setenv("GATEHOUSE_HTTP_READ_TIMEOUT", "30s")
	t.Setenv("GATEHOUSE_MIGRATE_ON_START", "false")
	t.Setenv("GATEHOUSE_CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg := LoadConfig()
	if cfg.HTTPAddr != "127.0.0.1:9999" {
		t.Fatalf("unexpected addr: %q", cfg.HTTPAddr)
	}
	if cfg.LogFormat != "pretty" {
		t.Fatalf("unexpected log format: %q", cfg.LogFormat)
	}
	if cfg.ReadTimeout != 30*time.Second {
		t.Fatalf("unexpected read timeout: %v", cfg.ReadTimeout)
	}
	if cfg.MigrateOnStart {
		t.Fatalf("migrate-on-start override not applied")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestEnvDuration_Invalid(t *testing.T) {
	t.Setenv("GATEHOUSE_TEST_DURATION", "soon")
	if got := EnvDuration("GATEHOUSE_TEST_DURATION", 7*time.Second); got != 7*time.Second {
		t.Fatalf("invalid duration must fall back to default, got %v", got)
	}
}
