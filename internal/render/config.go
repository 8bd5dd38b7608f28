package render

import (
	"os"

	"github.com/diogo/resumechat/internal/config"
	"github.com/diogo/resumechat/internal/models"
)

// OptionsFromConfig builds render options from the markdown section of the
// user configuration and the active theme. GLAMOUR_STYLE overrides the
// theme's style when set.
func OptionsFromConfig(md config.MarkdownConfig, theme models.Theme) Options {
	opts := DefaultOptions().WithTheme(theme)
	opts.EnableEmoji = md.EnableEmoji
	opts.PreserveNewLines = md.PreserveNewLines
	opts.TableWrap = md.TableWrap
	opts.InlineTableLinks = md.InlineTableLinks

	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts.Style = style
	}

	return opts
}
