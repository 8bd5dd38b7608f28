package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	apierrors "github.com/diogo/resumechat/internal/errors"
	"github.com/diogo/resumechat/internal/render"
)

// Styles matching the chat TUI
var (
	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				MarginBottom(0)

	assistantBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorText).
				Padding(0, 1).
				MarginTop(1).
				MarginBottom(1)

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
)

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// bubbleWidths returns the assistant bubble width and the content width inside it
func bubbleWidths(termWidth int) (int, int) {
	bubbleWidth := termWidth - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}
	return bubbleWidth, bubbleWidth - 4
}

// renderAssistantBubble renders text as markdown inside the assistant bubble
func renderAssistantBubble(text string, opts render.Options, termWidth int) string {
	bubbleWidth, contentWidth := bubbleWidths(termWidth)

	rendered := render.MarkdownOrPlain(text, opts.WithWidth(contentWidth))
	return assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
}

// formatErrorMessage formats an error with additional context from structured errors
func formatErrorMessage(err error, context string) string {
	if err == nil {
		return ""
	}

	errorStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s: %v", context, err)))

	// Extract additional context from structured errors
	if status := apierrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	if endpoint := apierrors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	// Show response body if available
	if body := apierrors.GetResponseBody(err); body != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n\n  %s", strings.ReplaceAll(body, "\n", "\n  "))))
		return sb.String()
	}

	// Provide helpful hints based on error type only if no body
	switch {
	case errors.Is(err, apierrors.ErrNotPDF):
		sb.WriteString(dimStyle.Render("\n  Hint: Only PDF résumés are accepted"))
	case errors.Is(err, apierrors.ErrFileTooLarge):
		sb.WriteString(dimStyle.Render("\n  Hint: The résumé must be 20MB or smaller"))
	case errors.Is(err, apierrors.ErrEmptyJobDescription):
		sb.WriteString(dimStyle.Render("\n  Hint: Pass the job description as text, with -f, or on stdin"))
	case apierrors.IsNetworkError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Check that the backend is running (see --backend)"))
	case apierrors.IsStreamError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The answer was interrupted. Try asking again"))
	case apierrors.IsAPIError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Upload your résumé first with 'resumechat upload'"))
	}

	return sb.String()
}
