package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "resumechat.log")

	logger, err := New(path, false)
	require.NoError(t, err)

	logger.Info("upload finished", zap.String("file", "cv.pdf"))
	logger.Debug("hidden at info level")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, `"msg":"upload finished"`)
	assert.Contains(t, content, `"file":"cv.pdf"`)
	assert.Contains(t, content, `"level":"INFO"`)
	assert.NotContains(t, content, "hidden at info level")
}

func TestNew_DebugLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	logger, err := New(path, true)
	require.NoError(t, err)
	logger.Debug("fragment received")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fragment received")
}

func TestNew_EmptyPathIsNop(t *testing.T) {
	logger, err := New("", false)
	require.NoError(t, err)
	assert.NotNil(t, logger)
	logger.Info("goes nowhere")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"  padded  ", 10, "padded"},
		{"abcdefghij", 4, "abcd..."},
		{"résumé", 3, "rés..."},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		got := Truncate(tt.in, tt.limit)
		if got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
	assert.True(t, strings.HasSuffix(Truncate(strings.Repeat("x", 50), 5), "..."))
}
