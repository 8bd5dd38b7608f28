package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diogo/resumechat/internal/config"
	"github.com/diogo/resumechat/internal/models"
)

func TestRunExportPath(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DownloadDir = filepath.Join(t.TempDir(), "exports")
	var out bytes.Buffer

	require.NoError(t, runExportPath(&out, cfg))

	assert.Equal(t, filepath.Join(cfg.DownloadDir, models.TranscriptFileName)+"\n", out.String())
	assert.DirExists(t, cfg.DownloadDir)
}

func TestRunShowConfig(t *testing.T) {
	v := viper.New()
	v.Set("timeout_seconds", 30)
	v.Set("backend_url", "http://localhost:8000")
	var out bytes.Buffer

	require.NoError(t, runShowConfig(&out, v))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{
		"backend_url = http://localhost:8000",
		"timeout_seconds = 30",
	}, lines)
}

func TestLoadConfig_ConfigFlag(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "custom.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"backend_url": "http://cv.internal:9000/", "timeout_seconds": 12}`), 0o600))

	oldFile, oldSettings := cfgFile, settings
	defer func() { cfgFile, settings = oldFile, oldSettings }()
	cfgFile = path
	settings = viper.New()

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://cv.internal:9000", cfg.BackendURL)
	assert.Equal(t, 12, cfg.TimeoutSeconds)
}
