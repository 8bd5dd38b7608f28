package commands

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diogo/resumechat/internal/config"
	"github.com/diogo/resumechat/internal/models"
)

func TestRunTheme(t *testing.T) {
	tests := []struct {
		name    string
		current models.Theme
		choice  string
		want    models.Theme
	}{
		{name: "set dark", current: models.ThemeLight, choice: "dark", want: models.ThemeDark},
		{name: "set light", current: models.ThemeDark, choice: "light", want: models.ThemeLight},
		{name: "case and spaces", current: models.ThemeLight, choice: " DARK ", want: models.ThemeDark},
		{name: "toggle from light", current: models.ThemeLight, choice: "toggle", want: models.ThemeDark},
		{name: "toggle from dark", current: models.ThemeDark, choice: "toggle", want: models.ThemeLight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := config.NewMemoryPrefsStore()
			require.NoError(t, config.SaveTheme(prefs, tt.current))
			var out bytes.Buffer

			require.NoError(t, runTheme(&out, prefs, tt.choice))

			assert.Equal(t, tt.want, config.LoadTheme(prefs))
			assert.Contains(t, out.String(), "Theme set to "+string(tt.want))
		})
	}
}

func TestRunTheme_Unknown(t *testing.T) {
	prefs := config.NewMemoryPrefsStore()
	var out bytes.Buffer

	err := runTheme(&out, prefs, "solarized")
	assert.Error(t, err)

	_, stored := prefs.Get(models.ThemePreferenceKey)
	assert.False(t, stored)
}

func TestRunTheme_Interactive(t *testing.T) {
	old := selectTheme
	defer func() { selectTheme = old }()

	var offered models.Theme
	selectTheme = func(current models.Theme) (string, error) {
		offered = current
		return "dark", nil
	}

	prefs := config.NewMemoryPrefsStore()
	var out bytes.Buffer
	require.NoError(t, runTheme(&out, prefs, ""))

	assert.Equal(t, models.ThemeLight, offered)
	assert.Equal(t, models.ThemeDark, config.LoadTheme(prefs))
}

func TestRunTheme_InteractiveCancelled(t *testing.T) {
	old := selectTheme
	defer func() { selectTheme = old }()
	selectTheme = func(models.Theme) (string, error) { return "", errors.New("^C") }

	prefs := config.NewMemoryPrefsStore()
	var out bytes.Buffer
	assert.Error(t, runTheme(&out, prefs, ""))
	assert.Empty(t, out.String())
}
