package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/diogo/resumechat/internal/config"
	"github.com/diogo/resumechat/internal/models"
	"github.com/diogo/resumechat/internal/render"
)

const themeToggle = "toggle"

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|toggle]",
	Short:     "Change the colour theme",
	Long:      `Set the colour theme used by the chat. Without an argument you can pick one interactively.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(models.ThemeLight), string(models.ThemeDark), themeToggle},
	RunE: func(cmd *cobra.Command, args []string) error {
		prefs, err := config.DefaultPrefsStore()
		if err != nil {
			return err
		}

		choice := ""
		if len(args) > 0 {
			choice = args[0]
		}
		return runTheme(cmd.OutOrStdout(), prefs, choice)
	},
}

// selectTheme asks for a theme interactively. Tests replace it.
var selectTheme = func(current models.Theme) (string, error) {
	items := render.TUIThemeNames()
	cursor := 0
	for i, name := range items {
		if name == string(current) {
			cursor = i
		}
	}

	prompt := promptui.Select{
		Label:     fmt.Sprintf("Theme (current: %s)", current),
		Items:     items,
		CursorPos: cursor,
	}
	_, choice, err := prompt.Run()
	return choice, err
}

func runTheme(out io.Writer, prefs config.PrefsStore, choice string) error {
	current := config.LoadTheme(prefs)

	choice = strings.ToLower(strings.TrimSpace(choice))
	if choice == "" {
		picked, err := selectTheme(current)
		if err != nil {
			return fmt.Errorf("theme selection cancelled: %w", err)
		}
		choice = picked
	}

	var next models.Theme
	switch choice {
	case string(models.ThemeLight), string(models.ThemeDark):
		next = models.Theme(choice)
	case themeToggle:
		next = current.Toggle()
	default:
		return fmt.Errorf("unknown theme %q (use light, dark or toggle)", choice)
	}

	if err := config.SaveTheme(prefs, next); err != nil {
		return err
	}
	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✓ Theme set to %s", next)))
	return nil
}
