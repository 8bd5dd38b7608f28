package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/resumechat/internal/models"
	"github.com/diogo/resumechat/internal/render"
	"github.com/diogo/resumechat/internal/session"
)

// Fixed layout heights, borders included
const (
	headerHeight   = 4 // Header panel with border and margin
	jobPanelHeight = 5 // Label, two input lines and border
	inputHeight    = 5 // Label, two input lines and border
	noticeHeight   = 1
	statusHeight   = 1
	messagesChrome = 2 // Messages panel border
	minViewport    = 3
)

// resize recalculates component sizes for a terminal of width x height
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	vpHeight := height - headerHeight - jobPanelHeight - inputHeight - noticeHeight - statusHeight - messagesChrome
	if vpHeight < minViewport {
		vpHeight = minViewport
	}

	contentWidth := width - 4

	if !m.ready {
		m.viewport = newViewport(contentWidth-2, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth - 2
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(contentWidth - 4)
	m.jobInput.SetWidth(contentWidth - 4)
	m.refreshViewport(false)
}

// refreshViewport re-renders the transcript. The view follows new content
// when gotoBottom is set or it was already at the bottom.
func (m *Model) refreshViewport(gotoBottom bool) {
	follow := gotoBottom || m.viewport.AtBottom()
	m.viewport.SetContent(m.renderMessages())
	if follow {
		m.viewport.GotoBottom()
	}
}

// renderMessages renders the transcript with styled bubbles
func (m Model) renderMessages() string {
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6
	if bubbleWidth < 10 {
		bubbleWidth = 10
	}
	streaming := m.state.InProgress()

	for i, msg := range m.state.Messages {
		if i > 0 {
			content.WriteString("\n")
		}

		if msg.Role == models.RoleUser {
			label := userLabelStyle.Render(msg.Role.Label())
			bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.Content)
			content.WriteString(label + "\n" + bubble)
		} else {
			label := assistantLabelStyle.Render(msg.Role.Label())

			var body string
			switch {
			case i == streaming && msg.Content == "":
				body = hintStyle.Render("…")
			case i == streaming:
				// Markdown is rendered once the answer is complete
				body = msg.Content + "▍"
			default:
				body = m.md.render(msg.Content, m.renderOpts.WithWidth(bubbleWidth-4))
			}

			bubble := assistantBubbleStyle.Width(bubbleWidth).Render(body)
			content.WriteString(label + "\n" + bubble)
		}
		content.WriteString("\n")
	}

	return content.String()
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4

	sections = append(sections, m.renderHeader(contentWidth))

	if m.picking {
		sections = append(sections, m.renderPicker(contentWidth))
	} else {
		var messagesContent string
		if len(m.state.Messages) == 0 {
			messagesContent = m.renderWelcome()
		} else {
			messagesContent = m.viewport.View()
		}
		messagesPanel := messagesAreaStyle.
			Width(contentWidth).
			Height(m.viewport.Height).
			Render(messagesContent)
		sections = append(sections, messagesPanel)

		sections = append(sections, m.renderJobPanel(contentWidth))
		sections = append(sections, m.renderInputPanel(contentWidth))
	}

	sections = append(sections, m.renderNotice(contentWidth))
	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader shows the résumé, upload status and the last score
func (m Model) renderHeader(width int) string {
	sep := hintStyle.Render("  •  ")
	parts := []string{titleStyle.Render("📄 Résumé Chat")}

	switch {
	case m.state.UploadStatus == session.UploadUploading:
		parts = append(parts, sep, m.spinner.View()+subtitleStyle.Render(" Uploading "+m.fileName()))
	case m.state.UploadedFile != nil && m.pendingUpload:
		parts = append(parts, sep, subtitleStyle.Render(m.fileName()), hintStyle.Render(" not uploaded (^U)"))
	case m.state.UploadedFile != nil:
		status := ""
		switch m.state.UploadStatus {
		case session.UploadUploaded:
			status = " ✓"
		case session.UploadFailed:
			status = " ✗"
		}
		parts = append(parts, sep, subtitleStyle.Render(m.fileName()+status))
	default:
		parts = append(parts, sep, hintStyle.Render("no résumé uploaded"))
	}

	if m.state.IsScoring {
		parts = append(parts, sep, m.spinner.View()+subtitleStyle.Render(" Scoring"))
	} else if score := m.state.ScoreText(); score != "" {
		parts = append(parts, sep, scoreStyle.Render("🎯 "+score+"%"))
	}

	parts = append(parts, sep, hintStyle.Render(string(m.state.Theme)))

	content := lipgloss.JoinHorizontal(lipgloss.Center, parts...)
	return headerStyle.Width(width).Render(content)
}

func (m Model) fileName() string {
	if m.state.UploadedFile == nil {
		return ""
	}
	return m.state.UploadedFile.Name
}

// renderWelcome renders the welcome screen when no messages exist
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	icon := welcomeIconStyle.Width(width).Render("📄")
	title := welcomeTitleStyle.Width(width).Render("Chat with your résumé")
	subtitle := welcomeStyle.Width(width).Render("Press ctrl+o or type /upload <file.pdf> to choose a PDF résumé, then ctrl+u to upload it")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		icon,
		"",
		title,
		"",
		subtitle,
	)

	// Center vertically
	topPadding := (height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

func (m Model) renderJobPanel(width int) string {
	style := inputPanelStyle
	if m.focus == focusJob {
		style = inputPanelFocusedStyle
	}
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		inputLabelStyle.Render("Job description"),
		m.jobInput.View(),
	)
	return style.Width(width).Render(content)
}

func (m Model) renderInputPanel(width int) string {
	style := inputPanelStyle
	if m.focus == focusChat {
		style = inputPanelFocusedStyle
	}

	var content string
	if m.thinking() {
		content = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.renderLoadingAnimation(),
			"",
		)
	} else {
		content = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}
	return style.Width(width).Render(content)
}

// renderPicker renders the PDF file picker in place of the transcript
func (m Model) renderPicker(width int) string {
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Select a PDF résumé"),
		hintStyle.Render(m.picker.CurrentDirectory),
		"",
		m.picker.View(),
	)
	return pickerPanelStyle.Width(width).Render(content)
}

// renderNotice shows the newest active notification
func (m Model) renderNotice(width int) string {
	notice, ok := m.notices.Latest()
	if !ok {
		return ""
	}
	return noticeStyle(notice.Kind).Width(width).Align(lipgloss.Center).Render(notice.Text)
}

// renderLoadingAnimation renders a colorful animated loading indicator
func (m Model) renderLoadingAnimation() string {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	barChars := []string{"█", "█", "█", "█", "█", "█", "█", "█", "▓", "▒", "░"}

	frame := m.animationFrame

	spinIdx := frame % len(chars)
	spinColor := gradientColors[frame%len(gradientColors)]
	spin := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[spinIdx])

	barWidth := 20
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		colorIdx := (i + frame) % len(gradientColors)
		charIdx := (i + frame/2) % len(barChars)

		style := lipgloss.NewStyle().Foreground(gradientColors[colorIdx])
		bar.WriteString(style.Render(barChars[charIdx]))
	}

	dots := ""
	numDots := (frame / 3) % 4
	for i := 0; i < numDots; i++ {
		dotColor := gradientColors[(frame+i)%len(gradientColors)]
		dots += lipgloss.NewStyle().Foreground(dotColor).Render("●")
	}
	for i := numDots; i < 3; i++ {
		dots += lipgloss.NewStyle().Foreground(colorTextMute).Render("○")
	}

	text := lipgloss.NewStyle().Foreground(colorText).Render(" Assistant is thinking ")

	return fmt.Sprintf("%s %s %s %s", spin, bar.String(), text, dots)
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	type shortcut struct {
		key  string
		desc string
	}

	upload := []shortcut{{"^U", "Choose PDF"}}
	if m.uploadReady() {
		upload = []shortcut{{"^U", "Upload"}, {"^O", "Change"}}
	}

	shortcuts := []shortcut{
		{"Enter", "Send"},
		{"Tab", "Focus"},
	}
	shortcuts = append(shortcuts, upload...)
	shortcuts = append(shortcuts, []shortcut{
		{"^R", "Score"},
		{"^S", "Save"},
		{"^Y", "Copy"},
		{"^T", "Theme"},
		{"Esc", "Quit"},
	}...)
	if m.picking {
		shortcuts = []shortcut{
			{"↑↓", "Navigate"},
			{"Enter", "Select"},
			{"←", "Back"},
			{"Esc", "Cancel"},
		}
	}

	var items []string
	for _, s := range shortcuts {
		item := lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		)
		items = append(items, item)
	}

	bar := strings.Join(items, statusDescStyle.Render("  │  "))
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// maxMarkdownEntries bounds the rendered markdown cache
const maxMarkdownEntries = 256

// markdownCache keeps rendered assistant messages so redraws during a
// stream do not re-render the whole transcript.
type markdownCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func newMarkdownCache() *markdownCache {
	return &markdownCache{entries: make(map[string]string)}
}

func (c *markdownCache) render(content string, opts render.Options) string {
	key := fmt.Sprintf("%s|%d|%s", opts.Style, opts.Width, content)

	c.mu.Lock()
	defer c.mu.Unlock()

	if out, ok := c.entries[key]; ok {
		return out
	}

	out := render.MarkdownOrPlain(content, opts)

	if len(c.entries) >= maxMarkdownEntries {
		c.entries = make(map[string]string)
	}
	c.entries[key] = out
	return out
}

func (c *markdownCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]string)
}
