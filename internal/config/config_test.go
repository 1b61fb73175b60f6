package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, TransportStdio, cfg.Transport)
	assert.Equal(t, 8080, cfg.Port)
	assert.Empty(t, cfg.AuditDB)
	assert.Equal(t, "info", cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("TRANSPORT", "http")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, TransportHTTP, cfg.Transport)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestApplyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("transport: both\nport: 9999\naudit_db: /tmp/audit.db\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.ApplyFile(path))

	assert.Equal(t, TransportBoth, cfg.Transport)
	assert.Equal(t, 9999, cfg.Port)
	assert.Equal(t, "/tmp/audit.db", cfg.AuditDB)
	assert.True(t, cfg.ServeHTTP())
	assert.True(t, cfg.ServeStdio())
}

func TestValidate(t *testing.T) {
	cfg := &Config{Transport: "carrier-pigeon", Port: 8080}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Transport: TransportHTTP, Port: 0}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Transport: TransportHTTP, Port: 8080}
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.ServeHTTP())
	assert.False(t, cfg.ServeStdio())
}
