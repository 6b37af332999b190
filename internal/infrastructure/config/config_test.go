package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage != "postgres" {
		t.Errorf("expected default storage postgres, got %s", cfg.Storage)
	}

	if cfg.HTTPPort != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Errorf("unexpected logging defaults: %s/%s", cfg.LogLevel, cfg.LogFormat)
	}

	if cfg.RedisURL != "" {
		t.Errorf("expected idempotency disabled by default, got redis url %s", cfg.RedisURL)
	}

	if cfg.IdempotencyTTL != 24*time.Hour {
		t.Errorf("expected idempotency TTL 24h, got %s", cfg.IdempotencyTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE", "memory")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_READ_TIMEOUT", "5s")
	t.Setenv("DATABASE_MAX_CONNS", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage != "memory" {
		t.Errorf("expected storage memory, got %s", cfg.Storage)
	}

	if cfg.HTTPPort != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.HTTPPort)
	}

	if cfg.HTTPReadTimeout != 5*time.Second {
		t.Errorf("expected read timeout 5s, got %s", cfg.HTTPReadTimeout)
	}

	if cfg.DatabaseMaxConns != 10 {
		t.Errorf("expected max conns 10, got %d", cfg.DatabaseMaxConns)
	}
}

func TestLoadInvalidValue(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed duration")
	}
}
