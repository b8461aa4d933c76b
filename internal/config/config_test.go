package config

import (
	"testing"
	"time"
)

func TestValidateRequiresJWTSecret(t *testing.T) {
	cfg := &Config{TokenDuration: 24 * time.Hour}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() accepted an empty JWT secret")
	}

	cfg.JWTSecret = "deadbeef"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v for a configured secret", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_TYPE", "")
	t.Setenv("PRACTICE_SET_SIZE", "")

	cfg := Load()
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("DatabaseType = %q, want sqlite", cfg.DatabaseType)
	}
	if cfg.PracticeSetSize != 10 {
		t.Errorf("PracticeSetSize = %d, want 10", cfg.PracticeSetSize)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("PRACTICE_SET_SIZE", "15")
	if got := getEnvInt("PRACTICE_SET_SIZE", 10); got != 15 {
		t.Errorf("getEnvInt = %d, want 15", got)
	}

	t.Setenv("PRACTICE_SET_SIZE", "not-a-number")
	if got := getEnvInt("PRACTICE_SET_SIZE", 10); got != 10 {
		t.Errorf("getEnvInt with garbage = %d, want default 10", got)
	}
}
