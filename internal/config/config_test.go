package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"cmd"}, args...)
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetArgs(t)

	cfg := LoadConfig()
	assert.Equal(t, ".gophchat", cfg.StorageDir)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, LogBackendSlog, cfg.LogBackend)
	assert.False(t, cfg.Development)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	resetArgs(t, "-d", "/tmp/chat", "-i", "5", "-l", "zap", "-dev")

	cfg := LoadConfig()
	assert.Equal(t, "/tmp/chat", cfg.StorageDir)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, LogBackendZap, cfg.LogBackend)
	assert.True(t, cfg.Development)
}

func TestLoadConfig_JsonOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	err := os.WriteFile(path, []byte(`{
		"storage_dir": "/data/chat",
		"poll_interval": "3s",
		"log_backend": "zap"
	}`), 0o600)
	require.NoError(t, err)

	resetArgs(t, "-c", path)

	cfg := LoadConfig()
	assert.Equal(t, "/data/chat", cfg.StorageDir)
	assert.Equal(t, 3*time.Second, cfg.PollInterval)
	assert.Equal(t, LogBackendZap, cfg.LogBackend)
}

func TestLoadConfig_FlagsOverrideJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	err := os.WriteFile(path, []byte(`{"storage_dir": "/data/chat"}`), 0o600)
	require.NoError(t, err)

	resetArgs(t, "-c", path, "-d", "/flag/wins")

	cfg := LoadConfig()
	assert.Equal(t, "/flag/wins", cfg.StorageDir)
}
