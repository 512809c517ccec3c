package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: \":9090\"\napi_key: abc\nmax_upload_mb: 8\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "abc", cfg.APIKey)
	assert.Equal(t, 8, cfg.MaxUploadMB)
	// Untouched fields keep defaults.
	assert.Equal(t, Default().Model, cfg.Model)
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n  - ["), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidateClampsValues(t *testing.T) {
	cfg := &Config{MaxUploadMB: -1, MaxSessions: 0, PreviewMaxPx: 10, RequestTimeoutSec: -1}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 24, cfg.MaxUploadMB)
	assert.Equal(t, 64, cfg.MaxSessions)
	assert.Equal(t, 1024, cfg.PreviewMaxPx)
	assert.Zero(t, cfg.RequestTimeoutSec)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
}
