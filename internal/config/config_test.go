package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hospital-console/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "hospital-console", cfg.App.Name)
	assert.Equal(t, "127.0.0.1:3000", cfg.App.Addr())
	assert.Equal(t, "http://localhost:8080/api/v1", cfg.API.BaseURL)
	assert.Equal(t, "/auth/signin", cfg.API.SigninPath)
	assert.Equal(t, config.StoreBackendFile, cfg.Store.Backend)
	assert.Equal(t, "jwtToken", cfg.Store.Slot)
	assert.False(t, cfg.Auth.EnforceExpiry)
	assert.Equal(t, "/login", cfg.Auth.LoginPath)
	assert.Equal(t, "/unauthorized", cfg.Auth.UnauthorizedPath)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.org/api/v1/")
	t.Setenv("STORE_BACKEND", "REDIS")
	t.Setenv("AUTH_ENFORCE_EXPIRY", "true")
	t.Setenv("API_TIMEOUT_SECONDS", "not-a-number")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.org/api/v1", cfg.API.BaseURL)
	assert.Equal(t, config.StoreBackendRedis, cfg.Store.Backend)
	assert.True(t, cfg.Auth.EnforceExpiry)
	assert.Equal(t, 15, cfg.API.TimeoutSeconds)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "cookie")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoadPostgresBackendNeedsDSN(t *testing.T) {
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("POSTGRES_DSN", "")

	_, err := config.Load()
	assert.Error(t, err)
}
