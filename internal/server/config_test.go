package server

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("RedisURL = %q, want redis://localhost:6379/0", cfg.RedisURL)
	}
	if cfg.Strategy != "atomic" {
		t.Errorf("Strategy = %q, want atomic", cfg.Strategy)
	}
	if cfg.BatchSize != 1000 {
		t.Errorf("BatchSize = %d, want 1000", cfg.BatchSize)
	}
	if cfg.Schedule != "@every 30s" {
		t.Errorf("Schedule = %q, want @every 30s", cfg.Schedule)
	}
	if cfg.KeyPrefix != "uniquejobs" {
		t.Errorf("KeyPrefix = %q, want uniquejobs", cfg.KeyPrefix)
	}
	if cfg.ShutdownTimeout != 15*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 15s", cfg.ShutdownTimeout)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("LOCKREAP_PORT", "9999")
	t.Setenv("LOCKREAP_STRATEGY", "paginated")
	t.Setenv("LOCKREAP_BATCH_SIZE", "50")
	t.Setenv("LOCKREAP_SCHEDULE", "@every 5m")
	t.Setenv("LOCKREAP_READ_TIMEOUT", "3s")

	cfg := LoadConfig()

	if cfg.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Port)
	}
	if cfg.Strategy != "paginated" {
		t.Errorf("Strategy = %q, want paginated", cfg.Strategy)
	}
	if cfg.BatchSize != 50 {
		t.Errorf("BatchSize = %d, want 50", cfg.BatchSize)
	}
	if cfg.Schedule != "@every 5m" {
		t.Errorf("Schedule = %q, want @every 5m", cfg.Schedule)
	}
	if cfg.ReadTimeout != 3*time.Second {
		t.Errorf("ReadTimeout = %v, want 3s", cfg.ReadTimeout)
	}
}

func TestLoadConfig_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("LOCKREAP_BATCH_SIZE", "not-a-number")
	t.Setenv("LOCKREAP_READ_TIMEOUT", "soon")

	cfg := LoadConfig()

	if cfg.BatchSize != 1000 {
		t.Errorf("BatchSize = %d, want default 1000", cfg.BatchSize)
	}
	if cfg.ReadTimeout != 10*time.Second {
		t.Errorf("ReadTimeout = %v, want default 10s", cfg.ReadTimeout)
	}
}
