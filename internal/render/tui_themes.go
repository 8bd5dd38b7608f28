package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/resumechat/internal/models"
)

// TUITheme defines the color scheme for the TUI interface
type TUITheme struct {
	Name        models.Theme
	Description string

	// Base colors
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	// Text colors
	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// Built-in TUI themes
var (
	// LightTheme is the default scheme for bright terminals
	LightTheme = TUITheme{
		Name:        models.ThemeLight,
		Description: "Light - dark text on a pale background",

		Background: lipgloss.Color("#f8fafc"),
		Surface:    lipgloss.Color("#e2e8f0"),
		Border:     lipgloss.Color("#94a3b8"),

		Primary:   lipgloss.Color("#2563eb"), // Blue
		Secondary: lipgloss.Color("#16a34a"), // Green
		Accent:    lipgloss.Color("#7c3aed"), // Violet
		Warning:   lipgloss.Color("#ca8a04"), // Amber
		Error:     lipgloss.Color("#dc2626"), // Red

		Text:     lipgloss.Color("#0f172a"),
		TextDim:  lipgloss.Color("#475569"),
		TextMute: lipgloss.Color("#94a3b8"),
	}

	// DarkTheme is based on the Tokyo Night palette
	DarkTheme = TUITheme{
		Name:        models.ThemeDark,
		Description: "Dark - Tokyo Night colours with blue accents",

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		Primary:   lipgloss.Color("#7aa2f7"),
		Secondary: lipgloss.Color("#9ece6a"),
		Accent:    lipgloss.Color("#bb9af7"),
		Warning:   lipgloss.Color("#e0af68"),
		Error:     lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),
	}
)

// currentTUITheme holds the currently active TUI theme
var currentTUITheme = LightTheme

// GetTUITheme returns the currently active TUI theme
func GetTUITheme() TUITheme {
	return currentTUITheme
}

// SetTUITheme makes the palette for theme the active one
func SetTUITheme(theme models.Theme) {
	currentTUITheme = TUIThemeFor(theme)
}

// TUIThemeFor returns the palette for theme. Unknown values get the light palette.
func TUIThemeFor(theme models.Theme) TUITheme {
	if theme.IsDark() {
		return DarkTheme
	}
	return LightTheme
}

// AvailableTUIThemes returns a list of all available TUI themes
func AvailableTUIThemes() []TUITheme {
	return []TUITheme{
		LightTheme,
		DarkTheme,
	}
}

// TUIThemeNames returns just the theme names for selection
func TUIThemeNames() []string {
	themes := AvailableTUIThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = string(t.Name)
	}
	return names
}
