package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"QC_CONFIG_FILE", "DATABASE_URL", "UPSTREAM_API_URL", "UPSTREAM_TOKEN", "UPSTREAM_TIMEOUT",
	"API_BEARER_TOKEN", "SESSION_DB_PATH", "AUTH_USER", "AUTH_PASSWORD", "LOG_LEVEL", "LOG_DEV",
	"PORT", "API_PORT", "DB_MAX_CONNS", "SLOT_COUNT", "DB_MIGRATE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/qc")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.ListenAddr())
	assert.Equal(t, 10, cfg.SlotCount)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, "admin", cfg.AuthUser)
	assert.False(t, cfg.UsesUpstream())
}

func TestLoadRequiresOneBackend(t *testing.T) {
	clearEnv(t)
	_, err := Load()
	assert.EqualError(t, err, "DATABASE_URL or UPSTREAM_API_URL is required")

	t.Setenv("DATABASE_URL", "postgres://localhost/qc")
	t.Setenv("UPSTREAM_API_URL", "http://localhost:3000/api/")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PORT":             "-1",
		"API_PORT":         "abc",
		"SLOT_COUNT":       "0",
		"UPSTREAM_TIMEOUT": "soon",
		"LOG_DEV":          "maybe",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("UPSTREAM_API_URL", "http://localhost:3000/api/")
			t.Setenv(key, value)
			_, err := Load()
			assert.ErrorContains(t, err, "invalid "+key)
		})
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "qc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
upstream_api_url: http://backend:3000/api/
upstream_timeout: 5s
slot_count: 12
port: 9000
log_dev: true
`), 0o644))
	t.Setenv("QC_CONFIG_FILE", path)
	t.Setenv("PORT", "9100")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.UsesUpstream())
	assert.Equal(t, 5*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 12, cfg.SlotCount)
	assert.Equal(t, 9100, cfg.Port)
	assert.True(t, cfg.LogDev)
}
