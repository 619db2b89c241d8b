package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/pulsedash_test")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Rate.AuthAttempts != 5 {
		t.Errorf("AuthAttempts = %d, want 5", cfg.Rate.AuthAttempts)
	}
	if cfg.Rate.AuthWindow != 15*time.Minute {
		t.Errorf("AuthWindow = %v, want 15m", cfg.Rate.AuthWindow)
	}
	if cfg.Rate.ContactWindow != time.Hour {
		t.Errorf("ContactWindow = %v, want 1h", cfg.Rate.ContactWindow)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/pulsedash_test")

	dir := t.TempDir()
	path := filepath.Join(dir, "pulsedash.yaml")
	yml := `
server:
  port: "9090"
rate:
  auth_attempts: 10
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Rate.AuthAttempts != 10 {
		t.Errorf("AuthAttempts = %d, want 10", cfg.Rate.AuthAttempts)
	}
	if cfg.Rate.ContactSubmissions != 5 {
		t.Errorf("ContactSubmissions = %d, want default 5", cfg.Rate.ContactSubmissions)
	}
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/pulsedash")
	t.Setenv("PULSEDASH_PORT", "7070")
	t.Setenv("PULSEDASH_RATE_AUTH_WINDOW", "30m")
	t.Setenv("PULSEDASH_OTEL_ENABLED", "true")
	t.Setenv("PULSEDASH_OTEL_ENDPOINT", "otel:4317")

	dir := t.TempDir()
	path := filepath.Join(dir, "pulsedash.yaml")
	yml := `
server:
  port: "9090"
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Server.Port != "7070" {
		t.Errorf("Port = %q, want 7070", cfg.Server.Port)
	}
	if cfg.Postgres.DSN != "postgres://env/pulsedash" {
		t.Errorf("DSN = %q", cfg.Postgres.DSN)
	}
	if cfg.Rate.AuthWindow != 30*time.Minute {
		t.Errorf("AuthWindow = %v, want 30m", cfg.Rate.AuthWindow)
	}
	if !cfg.Otel.Enabled {
		t.Error("Otel.Enabled = false, want true")
	}
}

func TestLoadValidation(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "pulsedash.yaml")
	yml := `
postgres:
  dsn: ""
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom() with empty DSN, want error")
	}
}

func TestLoadBadYAML(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/pulsedash_test")

	dir := t.TempDir()
	path := filepath.Join(dir, "pulsedash.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom() with invalid yaml, want error")
	}
}
