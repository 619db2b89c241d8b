package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "pulsedash.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// YAML file is optional; missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "PULSEDASH_PORT")
	setString(&cfg.Server.AllowedOrigins, "PULSEDASH_ALLOWED_ORIGINS")
	setString(&cfg.Server.APIKey, "PULSEDASH_API_KEY")
	setString(&cfg.Postgres.DSN, "DATABASE_URL")
	setInt32(&cfg.Postgres.MaxConns, "PULSEDASH_PG_MAX_CONNS")
	setInt32(&cfg.Postgres.MinConns, "PULSEDASH_PG_MIN_CONNS")
	setDuration(&cfg.Postgres.MaxConnLifetime, "PULSEDASH_PG_MAX_CONN_LIFETIME")
	setDuration(&cfg.Postgres.MaxConnIdleTime, "PULSEDASH_PG_MAX_CONN_IDLE_TIME")
	setDuration(&cfg.Postgres.HealthCheck, "PULSEDASH_PG_HEALTH_CHECK")
	setString(&cfg.Logging.Level, "PULSEDASH_LOG_LEVEL")
	setString(&cfg.Logging.Service, "PULSEDASH_LOG_SERVICE")
	setInt(&cfg.Rate.AuthAttempts, "PULSEDASH_RATE_AUTH_ATTEMPTS")
	setDuration(&cfg.Rate.AuthWindow, "PULSEDASH_RATE_AUTH_WINDOW")
	setInt(&cfg.Rate.ContactSubmissions, "PULSEDASH_RATE_CONTACT_SUBMISSIONS")
	setDuration(&cfg.Rate.ContactWindow, "PULSEDASH_RATE_CONTACT_WINDOW")
	setInt(&cfg.Rate.AdminRequests, "PULSEDASH_RATE_ADMIN_REQUESTS")
	setDuration(&cfg.Rate.AdminWindow, "PULSEDASH_RATE_ADMIN_WINDOW")
	setDuration(&cfg.Rate.CleanupInterval, "PULSEDASH_RATE_CLEANUP_INTERVAL")
	setDuration(&cfg.Rate.MaxIdleTime, "PULSEDASH_RATE_MAX_IDLE_TIME")
	setInt64(&cfg.Cache.MaxSizeMB, "PULSEDASH_CACHE_SIZE_MB")
	setDuration(&cfg.Cache.SnapshotTTL, "PULSEDASH_CACHE_SNAPSHOT_TTL")
	setBool(&cfg.Otel.Enabled, "PULSEDASH_OTEL_ENABLED")
	setString(&cfg.Otel.Endpoint, "PULSEDASH_OTEL_ENDPOINT")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}
	if cfg.Postgres.MaxConns < 1 {
		return errors.New("postgres.max_conns must be >= 1")
	}
	if cfg.Rate.AuthAttempts < 1 {
		return errors.New("rate.auth_attempts must be >= 1")
	}
	if cfg.Rate.ContactSubmissions < 1 {
		return errors.New("rate.contact_submissions must be >= 1")
	}
	if cfg.Rate.AdminRequests < 1 {
		return errors.New("rate.admin_requests must be >= 1")
	}
	if cfg.Otel.Enabled && cfg.Otel.Endpoint == "" {
		return errors.New("otel.endpoint is required when otel is enabled")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
