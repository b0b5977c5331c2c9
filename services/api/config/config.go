package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds settings for the REST API. Values come from an optional YAML
// file (QC_CONFIG_FILE) and are then overridden by environment variables.
type Config struct {
	DatabaseURL     string        `yaml:"database_url"`
	UpstreamURL     string        `yaml:"upstream_api_url"`
	UpstreamToken   string        `yaml:"upstream_token"`
	UpstreamTimeout time.Duration `yaml:"upstream_timeout"`
	DBMaxConns      int           `yaml:"db_max_conns"`
	Migrate         bool          `yaml:"db_migrate"`
	Port            int           `yaml:"port"`
	BearerToken     string        `yaml:"bearer_token"`
	SessionDBPath   string        `yaml:"session_db_path"`
	AuthUser        string        `yaml:"auth_user"`
	AuthPassword    string        `yaml:"auth_password"`
	SlotCount       int           `yaml:"slot_count"`
	LogLevel        string        `yaml:"log_level"`
	LogDev          bool          `yaml:"log_dev"`
}

func defaults() Config {
	return Config{
		UpstreamTimeout: 10 * time.Second,
		DBMaxConns:      10,
		Port:            8080,
		SessionDBPath:   "qc-session.db",
		AuthUser:        "admin",
		AuthPassword:    "sistemas",
		SlotCount:       10,
		LogLevel:        "info",
	}
}

// Load reads configuration from the optional YAML file and environment
// variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("QC_CONFIG_FILE")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.UpstreamURL, "UPSTREAM_API_URL")
	setString(&cfg.UpstreamToken, "UPSTREAM_TOKEN")
	setString(&cfg.BearerToken, "API_BEARER_TOKEN")
	setString(&cfg.SessionDBPath, "SESSION_DB_PATH")
	setString(&cfg.AuthUser, "AUTH_USER")
	setString(&cfg.AuthPassword, "AUTH_PASSWORD")
	setString(&cfg.LogLevel, "LOG_LEVEL")

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid API_PORT: %s", portStr)
		}
	}

	if err := setPositiveInt(&cfg.DBMaxConns, "DB_MAX_CONNS"); err != nil {
		return cfg, err
	}
	if err := setPositiveInt(&cfg.SlotCount, "SLOT_COUNT"); err != nil {
		return cfg, err
	}

	if v := strings.TrimSpace(os.Getenv("UPSTREAM_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid UPSTREAM_TIMEOUT: %s", v)
		}
		cfg.UpstreamTimeout = d
	}

	if err := setBool(&cfg.LogDev, "LOG_DEV"); err != nil {
		return cfg, err
	}
	if err := setBool(&cfg.Migrate, "DB_MIGRATE"); err != nil {
		return cfg, err
	}

	return cfg, cfg.validate()
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c Config) validate() error {
	switch {
	case c.DatabaseURL == "" && c.UpstreamURL == "":
		return errors.New("DATABASE_URL or UPSTREAM_API_URL is required")
	case c.DatabaseURL != "" && c.UpstreamURL != "":
		return errors.New("set only one of DATABASE_URL and UPSTREAM_API_URL")
	case c.Port <= 0:
		return fmt.Errorf("invalid port: %d", c.Port)
	case c.SlotCount <= 0:
		return fmt.Errorf("invalid slot count: %d", c.SlotCount)
	case c.AuthUser == "" || c.AuthPassword == "":
		return errors.New("AUTH_USER and AUTH_PASSWORD must not be empty")
	}
	return nil
}

// UsesUpstream reports whether the API fronts the REST backend instead of
// Postgres.
func (c Config) UsesUpstream() bool {
	return c.UpstreamURL != ""
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setPositiveInt(dst *int, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fmt.Errorf("invalid %s: %s", key, v)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %s", key, v)
	}
	*dst = b
	return nil
}
