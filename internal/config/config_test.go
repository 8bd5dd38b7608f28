package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diogo/resumechat/internal/models"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:8000", cfg.BackendURL)
	assert.Equal(t, 0, cfg.TimeoutSeconds, "no request timeout unless configured")
	assert.Equal(t, 8, cfg.RevealIntervalMS)
	assert.False(t, cfg.Debug)
	assert.True(t, cfg.Markdown.EnableEmoji)
	assert.Contains(t, cfg.DownloadDir, ".resumechat")
}

func TestGetConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".resumechat", "config.json"), path)
}

func TestLoad_FileNotExists(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultBackendURL, cfg.BackendURL)
	assert.Equal(t, models.DefaultTimeoutSeconds, cfg.TimeoutSeconds)
}

func TestLoad_FromFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".resumechat")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	content := `{
  "backend_url": "http://10.0.0.5:9000/",
  "timeout_seconds": 30,
  "reveal_interval_ms": 0,
  "markdown": {"enable_emoji": false}
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0o600))

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:9000", cfg.BackendURL)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.Equal(t, 0, cfg.RevealIntervalMS)
	assert.Zero(t, cfg.RevealInterval())
	assert.False(t, cfg.Markdown.EnableEmoji)
	assert.True(t, cfg.Markdown.TableWrap, "unset nested keys keep their defaults")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("RESUMECHAT_BACKEND_URL", "http://backend.internal:8000")
	t.Setenv("RESUMECHAT_DEBUG", "true")

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "http://backend.internal:8000", cfg.BackendURL)
	assert.True(t, cfg.Debug)
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "custom.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"timeout_seconds": -5}`), 0o600))

	v := viper.New()
	v.SetConfigFile(path)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.TimeoutSeconds, "negative timeouts are clamped")
}

func TestLoad_InvalidJSON(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))

	v := viper.New()
	v.SetConfigFile(path)
	cfg, err := Load(v)
	assert.Error(t, err)
	assert.Equal(t, models.DefaultBackendURL, cfg.BackendURL)
}

func TestGetDownloadDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")

	got, err := GetDownloadDir(Config{DownloadDir: dir})
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestConfig_RevealInterval(t *testing.T) {
	assert.Equal(t, models.DefaultRevealInterval, Config{RevealIntervalMS: 8}.RevealInterval())
	assert.Zero(t, Config{RevealIntervalMS: -1}.RevealInterval())
}
