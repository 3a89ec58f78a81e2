package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load("", dir)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Address)
	assert.Equal(t, 8484, cfg.Server.Port)
	assert.Equal(t, dir, cfg.Storage.DataDir)
	assert.Equal(t, filepath.Join(dir, "medtimer_data.json"), cfg.Storage.DataFile)
	assert.Equal(t, filepath.Join(dir, "exports"), cfg.Export.Dir)
	assert.NotEmpty(t, cfg.Security.JWTSecret, "secret should be generated when unset")
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MEDTIMER_SERVER_PORT", "9000")
	t.Setenv("MEDTIMER_SECURITY_JWT_SECRET", "test-secret")

	cfg, err := Load("", dir)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "test-secret", cfg.Security.JWTSecret)
}
