package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWritesDefaultConfigWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, resolved, err := Load(nil, path)
	require.NoError(t, err)
	assert.Equal(t, path, resolved)
	assert.Empty(t, cfg.AllowedOrigins)
	cfg.AllowedOrigins = nil
	assert.Equal(t, Default(), cfg)

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr, "default config should be written")

	// A second load reads the written file back unchanged.
	again, _, err := Load(nil, path)
	require.NoError(t, err)
	again.AllowedOrigins = nil
	assert.Equal(t, cfg, again)
}

func TestLoadReadsFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
addr: ":9000"
shutdown_timeout: 2s
log_level: debug
receiver_policy: guarded
messages_per_minute: 30
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("PAIRCHAT_ADDR", ":9100")
	t.Setenv("PAIRCHAT_ALLOWED_ORIGINS", "example.com,*.example.org")

	cfg, _, err := Load(nil, path)
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.Addr, "env wins over file")
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "guarded", cfg.ReceiverPolicy)
	assert.Equal(t, 30, cfg.MessagesPerMinute)
	assert.Equal(t, []string{"example.com", "*.example.org"}, cfg.AllowedOrigins)
	assert.Equal(t, Default().MaxMessageBytes, cfg.MaxMessageBytes)
}

func TestLoadRejectsUnknownPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("receiver_policy: strict\n"), 0o600))

	_, _, err := Load(nil, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "receiver_policy")
}

func TestNewViperBindsOriginsEnv(t *testing.T) {
	t.Setenv("PAIRCHAT_ALLOWED_ORIGINS", "a.example")

	v, err := newViper(Default(), filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "a.example", v.GetString("allowed_origins"))
	assert.Equal(t, Default().Addr, v.GetString("addr"))
}

func TestLoadFailsOnMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: [unterminated\n"), 0o600))

	_, resolved, err := Load(nil, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
	assert.Equal(t, path, resolved)
}

func TestResolveConfigPathUsesEnvDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")
	t.Setenv(envConfigDefaultPath, dir)

	assert.Equal(t, filepath.Join(dir, defaultConfigName), resolveConfigPath(""))
	assert.Equal(t, "/explicit.yaml", resolveConfigPath("/explicit.yaml"))
}

func TestUpdateFromOverridesNonZero(t *testing.T) {
	cfg := Default()
	cfg.UpdateFrom(Config{Addr: ":1234", LogLevel: "warn"})

	assert.Equal(t, ":1234", cfg.Addr)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, Default().ShutdownTimeout, cfg.ShutdownTimeout)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.MaxMessageBytes = 0
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.MessagesPerMinute = -1
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Addr = ""
	assert.Error(t, bad.Validate())
}
