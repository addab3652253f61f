package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Push.Enabled)
	assert.Equal(t, 30, cfg.CertWindowDays)
	assert.Equal(t, 30*24*time.Hour, cfg.CertWindow())
	assert.Equal(t, 5*time.Second, cfg.Push.Timeout())
	assert.Equal(t, "@every 15m", cfg.MonitorSchedule)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("STEELBUILD_DB", "/tmp/sb.db")
	t.Setenv("STEELBUILD_LOG_LEVEL", "DEBUG")
	t.Setenv("STEELBUILD_CERT_WINDOW_DAYS", "14")
	t.Setenv("STEELBUILD_USER_EMAIL", "super@site.test")
	t.Setenv("STEELBUILD_PUSH_ENABLED", "true")
	t.Setenv("STEELBUILD_PUSH_MAX_RETRIES", "0")
	t.Setenv("STEELBUILD_PUSH_RATE_PER_SEC", "2.5")

	cfg := FromEnv()

	assert.Equal(t, "/tmp/sb.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 14, cfg.CertWindowDays)
	assert.Equal(t, "super@site.test", cfg.User.Email)
	assert.True(t, cfg.Push.Enabled)
	assert.Equal(t, 0, cfg.Push.MaxRetries)
	assert.Equal(t, 2.5, cfg.Push.RatePerSec)
}

func TestFromEnv_InvalidNumbersIgnored(t *testing.T) {
	t.Setenv("STEELBUILD_CERT_WINDOW_DAYS", "soon")
	t.Setenv("STEELBUILD_PUSH_TIMEOUT_MS", "-5")
	t.Setenv("STEELBUILD_PUSH_RATE_PER_SEC", "0")

	cfg := FromEnv()

	assert.Equal(t, 30, cfg.CertWindowDays)
	assert.Equal(t, 5000, cfg.Push.TimeoutMs)
	assert.Equal(t, 10.0, cfg.Push.RatePerSec)
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("STEELBUILD_HTTP_ADDR=:9999\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("STEELBUILD_HTTP_ADDR") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.HTTPAddr)
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}
