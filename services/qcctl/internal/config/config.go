package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAPIURL         = "http://localhost:8080/api/"
	defaultRequestTimeout = 10 * time.Second
)

// Config holds the defaults for qcctl flags.
type Config struct {
	APIURL         string
	Token          string
	RequestTimeout time.Duration
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{
		APIURL:         defaultAPIURL,
		RequestTimeout: defaultRequestTimeout,
	}

	if v := strings.TrimSpace(os.Getenv("QCCTL_API_URL")); v != "" {
		cfg.APIURL = v
	}
	cfg.Token = strings.TrimSpace(os.Getenv("QCCTL_TOKEN"))

	if v := strings.TrimSpace(os.Getenv("QCCTL_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid QCCTL_TIMEOUT: %s", v)
		}
		cfg.RequestTimeout = d
	}

	return cfg, nil
}
