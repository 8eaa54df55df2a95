package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	cfg, err := Load("./config.yml")
	require.NoError(t, err, "error must be nil.")

	assert.Equal(t, "0.0.0.0:8080", cfg.HTTPServer.Address)
	assert.Equal(t, "propmedia", cfg.MinIOClient.Bucket)
	assert.Equal(t, int64(52428800), cfg.Validator.MaxFileBytes)
	assert.Equal(t, 3, cfg.UploadRetry.MaxAttempts)
}

func TestLoadEnvOverlay(t *testing.T) {
	t.Setenv("MINIO_ROOT_USER", "overlay-user")
	t.Setenv("MINIO_ROOT_PASSWORD", "overlay-pass")
	t.Setenv("DATABASE_URI", "mongodb://overlay:27017")

	cfg, err := Load("./config.yml")
	require.NoError(t, err)

	assert.Equal(t, "overlay-user", cfg.MinIOClient.AccessKey)
	assert.Equal(t, "overlay-pass", cfg.MinIOClient.SecretKey)
	assert.Equal(t, "mongodb://overlay:27017", cfg.DBConfig.URI)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("./does-not-exist.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config error")
}

func TestLoadRejectsIncompleteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("environment: dev\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}
