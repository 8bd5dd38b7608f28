package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/diogo/resumechat/internal/api"
	"github.com/diogo/resumechat/internal/config"
	apierrors "github.com/diogo/resumechat/internal/errors"
	"github.com/diogo/resumechat/internal/logging"
	"github.com/diogo/resumechat/internal/models"
	"github.com/diogo/resumechat/internal/notify"
	"github.com/diogo/resumechat/internal/render"
	"github.com/diogo/resumechat/internal/session"
)

// focusArea selects which input receives key presses
type focusArea int

const (
	focusChat focusArea = iota
	focusJob
)

// Message types for the TUI
type (
	animationTickMsg time.Time

	fileChosenMsg struct {
		path string
		// upload triggers the upload right after a successful selection
		upload bool
	}
	uploadResultMsg struct {
		result *api.UploadResult
		err    error
	}
	streamStartedMsg struct {
		reveal *revealer
	}
	scoreResultMsg struct {
		result *api.ScoreResult
		err    error
	}
	noticeExpiredMsg struct{}
)

// Options configures a chat Model
type Options struct {
	Client  api.BackendClientInterface
	Prefs   config.PrefsStore
	Notices *notify.Center
	Logger  *zap.Logger

	// ExportDir receives the saved transcript
	ExportDir string
	// RevealInterval is the delay between streamed characters. 0 disables pacing.
	RevealInterval time.Duration
	Markdown       config.MarkdownConfig

	// ResumePath, when set, is selected and uploaded as soon as the program starts
	ResumePath string
	// StartDir is where the file picker opens. Defaults to the working directory.
	StartDir string

	// Clipboard writes text to the system clipboard
	Clipboard func(string) error

	// Context is cancelled to stop in-flight requests. Defaults to Background.
	Context context.Context
}

// Model represents the TUI state. All session changes happen in Update.
type Model struct {
	client    api.BackendClientInterface
	prefs     config.PrefsStore
	notices   *notify.Center
	logger    *zap.Logger
	clipboard func(string) error

	ctx    context.Context
	cancel context.CancelFunc

	state session.Session

	exportDir      string
	revealInterval time.Duration
	renderOpts     render.Options
	resumePath     string
	md             *markdownCache

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	jobInput textarea.Model
	spinner  spinner.Model
	picker   filepicker.Model

	// State
	focus          focusArea
	picking        bool
	pendingUpload  bool
	reveal         *revealer
	ready          bool
	animationFrame int

	// Dimensions
	width  int
	height int
}

// NewModel creates a chat model. The theme is restored from opts.Prefs.
func NewModel(opts Options) Model {
	theme := config.LoadTheme(opts.Prefs)
	render.SetTUITheme(theme)
	UpdateTheme()

	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	notices := opts.Notices
	if notices == nil {
		notices = notify.NewCenter(models.NotificationTTL, models.NotificationCleanupTick)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	chatInput := newInput("Ask about the résumé, or /upload <file.pdf>", 4000)
	chatInput.Focus()

	jobInput := newInput("Paste a job description, then press ctrl+r to score", 8000)
	jobInput.Blur()

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	fp := filepicker.New()
	fp.AllowedTypes = []string{models.PDFExtension}
	fp.CurrentDirectory = startDirectory(opts.StartDir)

	return Model{
		client:         opts.Client,
		prefs:          opts.Prefs,
		notices:        notices,
		logger:         logger,
		clipboard:      copyFn,
		ctx:            ctx,
		cancel:         cancel,
		state:          session.New(theme),
		exportDir:      opts.ExportDir,
		revealInterval: opts.RevealInterval,
		renderOpts:     render.OptionsFromConfig(opts.Markdown, theme),
		resumePath:     opts.ResumePath,
		md:             newMarkdownCache(),
		viewport:       newViewport(0, 0),
		textarea:       chatInput,
		jobInput:       jobInput,
		spinner:        s,
		picker:         fp,
	}
}

// newInput creates a textarea styled with the current theme
func newInput(placeholder string, limit int) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.CharLimit = limit
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	styleInput(&ta)
	return ta
}

func styleInput(ta *textarea.Model) {
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle
}

// newViewport creates a viewport that scrolls with page keys and the mouse
// wheel only, so typing never moves the transcript.
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		Up:       key.NewBinding(key.WithKeys("ctrl+up")),
		Down:     key.NewBinding(key.WithKeys("ctrl+down")),
	}
	return vp
}

func startDirectory(dir string) string {
	if dir != "" {
		return dir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// Session returns the current session state
func (m Model) Session() session.Session {
	return m.state
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.resumePath != "" {
		path := m.resumePath
		cmds = append(cmds, func() tea.Msg {
			return fileChosenMsg{path: path, upload: true}
		})
	}
	return tea.Batch(cmds...)
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(size.Width, size.Height)
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	if m.picking {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			return m.updatePicker(keyMsg)
		}
		// Directory listings and other picker messages
		m.picker, cmd = m.picker.Update(msg)
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}

	case fileChosenMsg:
		next, cmd := m.selectResume(msg.path)
		if msg.upload && next.pendingUpload {
			var uploadCmd tea.Cmd
			next, uploadCmd = next.triggerUpload()
			cmd = tea.Batch(cmd, uploadCmd)
		}
		return next, tea.Batch(append(cmds, cmd)...)

	case uploadResultMsg:
		if msg.err != nil {
			m.logger.Warn("resume upload failed", zap.Error(msg.err))
			m.state = m.state.UploadFailed()
		} else {
			m.logger.Info("resume uploaded", zap.String("file", msg.result.FileName))
			m.state = m.state.UploadSucceeded(msg.result.Greeting)
		}
		m.refreshViewport(true)

	case streamStartedMsg:
		m.reveal = msg.reveal
		return m, tea.Batch(append(cmds, waitForReveal(msg.reveal))...)

	case revealMsg:
		m.state = m.state.AppendToStream(msg.text)
		m.refreshViewport(false)
		if m.reveal == nil {
			return m, tea.Batch(cmds...)
		}
		return m, tea.Batch(append(cmds, waitForReveal(m.reveal))...)

	case streamDoneMsg:
		m.reveal = nil
		m.state = m.state.FinishStream()
		m.logger.Debug("chat stream finished")
		m.refreshViewport(false)

	case streamErrMsg:
		m.reveal = nil
		if m.state.IsStreaming {
			m.logger.Warn("chat stream failed", zap.Error(msg.err))
			m.state = m.state.FailStream()
			m.refreshViewport(true)
		}

	case scoreResultMsg:
		if msg.err != nil {
			m.logger.Warn("role-fit scoring failed", zap.Error(msg.err))
			m.state = m.state.ScoreFailed()
			cmds = append(cmds, m.show(m.notices.Error(models.ScoreFailedText)))
		} else {
			m.logger.Info("role-fit score received", zap.Float64("score", msg.result.Score))
			m.state = m.state.ScoreSucceeded(msg.result.Score)
			text := fmt.Sprintf(models.ScoreSuccessTextFormat, session.FormatScore(msg.result.Score))
			cmds = append(cmds, m.show(m.notices.Success(text)))
		}

	case noticeExpiredMsg:
		// Redraw so expired notifications disappear

	case spinner.TickMsg:
		if m.busy() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.thinking() {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}
	}

	// Only KeyMsg reaches the inputs, to prevent escape sequence leaks
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.focus == focusJob {
			m.jobInput, cmd = m.jobInput.Update(keyMsg)
		} else {
			m.textarea, cmd = m.textarea.Update(keyMsg)
		}
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKey processes shortcuts. handled is false for keys that belong to
// the focused input.
func (m Model) handleKey(msg tea.KeyMsg) (next tea.Model, cmd tea.Cmd, handled bool) {
	switch msg.String() {
	case "ctrl+c":
		next, cmd = m.quit()
		return next, cmd, true

	case "esc":
		if m.focus == focusJob {
			m.setFocus(focusChat)
			return m, nil, true
		}
		// A running stream cannot be aborted, only the whole program
		if m.busy() {
			return m, nil, true
		}
		next, cmd = m.quit()
		return next, cmd, true

	case "tab":
		if m.focus == focusChat {
			m.setFocus(focusJob)
		} else {
			m.setFocus(focusChat)
		}
		return m, nil, true

	case "ctrl+u":
		if m.uploadReady() {
			next, cmd = m.triggerUpload()
		} else {
			next, cmd = m.openPicker()
		}
		return next, cmd, true

	case "ctrl+o":
		next, cmd = m.openPicker()
		return next, cmd, true

	case "ctrl+r":
		next, cmd = m.submitScore()
		return next, cmd, true

	case "ctrl+s":
		next, cmd = m.exportTranscript()
		return next, cmd, true

	case "ctrl+y":
		next, cmd = m.copyTranscript()
		return next, cmd, true

	case "ctrl+t":
		next, cmd = m.toggleTheme()
		return next, cmd, true

	case "enter":
		if m.focus == focusChat {
			next, cmd = m.submitInput()
			return next, cmd, true
		}
	}

	return m, nil, false
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	if f == focusJob {
		m.textarea.Blur()
		m.jobInput.Focus()
	} else {
		m.jobInput.Blur()
		m.textarea.Focus()
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}
	return m, tea.Quit
}

// busy reports whether a backend request is running
func (m Model) busy() bool {
	return m.state.IsStreaming || m.state.UploadStatus == session.UploadUploading || m.state.IsScoring
}

// thinking reports whether the streamed answer has not produced text yet
func (m Model) thinking() bool {
	idx := m.state.InProgress()
	return idx >= 0 && m.state.Messages[idx].Content == ""
}

// show schedules a redraw for when notification n expires
func (m Model) show(n notify.Notification) tea.Cmd {
	return tea.Tick(time.Until(n.CreatedAt.Add(m.notices.TTL())), func(time.Time) tea.Msg {
		return noticeExpiredMsg{}
	})
}

// ───────────────────────────── chat ─────────────────────────────

// submitInput handles Enter in the chat input: slash commands first,
// otherwise a chat message.
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	raw := m.textarea.Value()
	input := strings.TrimSpace(raw)
	if input == "" {
		return m, nil
	}

	switch {
	case input == "exit" || input == "quit" || input == "/exit" || input == "/quit":
		return m.quit()

	case input == "/upload" || strings.HasPrefix(input, "/upload "):
		m.textarea.Reset()
		path := strings.TrimSpace(strings.TrimPrefix(input, "/upload"))
		if path != "" {
			return m.selectResume(path)
		}
		if m.state.UploadedFile != nil {
			return m.triggerUpload()
		}
		return m.openPicker()

	case input == "/score":
		m.textarea.Reset()
		return m.submitScore()

	case input == "/save" || input == "/export":
		m.textarea.Reset()
		return m.exportTranscript()

	case input == "/copy":
		m.textarea.Reset()
		return m.copyTranscript()

	case input == "/theme":
		m.textarea.Reset()
		return m.toggleTheme()
	}

	next, text, ok := m.state.WithDraft(raw).SubmitChat()
	if !ok {
		switch {
		case !m.state.IsUploaded():
			return m, m.show(m.notices.Info(models.UploadFirstText))
		case m.state.IsStreaming:
			return m, m.show(m.notices.Info(models.StreamBusyText))
		}
		return m, nil
	}

	m.state = next
	m.textarea.Reset()
	m.animationFrame = 0
	m.refreshViewport(true)

	m.logger.Debug("chat message submitted", zap.String("message", logging.Truncate(text, 120)))

	return m, tea.Batch(
		m.startChat(text),
		m.spinner.Tick,
		animationTick(),
	)
}

// startChat opens the chat stream and starts the reveal pump
func (m Model) startChat(text string) tea.Cmd {
	client := m.client
	ctx := m.ctx
	interval := m.revealInterval
	return func() tea.Msg {
		stream, err := client.StreamChat(ctx, text)
		if err != nil {
			return streamErrMsg{err: err}
		}
		return streamStartedMsg{reveal: startReveal(ctx, stream, interval)}
	}
}

// ───────────────────────────── upload ─────────────────────────────

func (m Model) openPicker() (tea.Model, tea.Cmd) {
	if m.state.UploadStatus == session.UploadUploading {
		return m, m.show(m.notices.Info(models.UploadBusyText))
	}
	m.picking = true
	return m, m.picker.Init()
}

// updatePicker routes keys to the file picker
func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "esc":
		m.picking = false
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.picking = false
		next, selectCmd := m.selectResume(path)
		return next, tea.Batch(cmd, selectCmd)
	}

	if ok, _ := m.picker.DidSelectDisabledFile(msg); ok {
		return m, tea.Batch(cmd, m.show(m.notices.Error(models.NotPDFText)))
	}

	return m, cmd
}

// selectResume validates path as the résumé. Nothing is sent until the
// upload is triggered.
func (m Model) selectResume(path string) (Model, tea.Cmd) {
	path = session.ExpandPath(path)

	next, err := m.state.SelectPath(path)
	if err != nil {
		m.logger.Info("resume selection rejected", zap.String("path", path), zap.Error(err))
		return m, m.show(m.notices.Error(selectionErrorText(err)))
	}

	m.state = next
	m.pendingUpload = true
	m.logger.Debug("resume selected", zap.String("file", next.UploadedFile.Name))
	return m, m.show(m.notices.Info(fmt.Sprintf(models.FileSelectedTextFormat, next.UploadedFile.Name)))
}

// uploadReady reports whether ctrl+u should upload the selected file rather
// than open the picker: a new selection, or a retry after a failure.
func (m Model) uploadReady() bool {
	return m.state.CanUpload() && (m.pendingUpload || !m.state.IsUploaded())
}

// triggerUpload sends the selected résumé. One attempt per trigger.
func (m Model) triggerUpload() (Model, tea.Cmd) {
	next, err := m.state.BeginUpload()
	if err != nil {
		return m, m.show(m.notices.Info(selectionErrorText(err)))
	}

	m.state = next
	m.pendingUpload = false
	file := *next.UploadedFile
	m.logger.Info("uploading resume", zap.String("file", file.Name), zap.Int64("size", file.Size))

	return m, tea.Batch(m.uploadResume(file), m.spinner.Tick)
}

func (m Model) uploadResume(file models.ResumeFile) tea.Cmd {
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		result, err := client.UploadResume(ctx, file)
		return uploadResultMsg{result: result, err: err}
	}
}

// selectionErrorText maps a rejected selection to a notification
func selectionErrorText(err error) string {
	switch {
	case errors.Is(err, apierrors.ErrNotPDF):
		return models.NotPDFText
	case errors.Is(err, apierrors.ErrFileTooLarge):
		return models.FileTooLargeText
	case errors.Is(err, apierrors.ErrUploadInProgress):
		return models.UploadBusyText
	case errors.Is(err, apierrors.ErrStreamInProgress):
		return models.StreamBusyText
	case errors.Is(err, apierrors.ErrNoFileSelected):
		return models.NoFileSelectedText
	default:
		return "❌ " + err.Error()
	}
}

// ───────────────────────────── scoring ─────────────────────────────

func (m Model) submitScore() (tea.Model, tea.Cmd) {
	m.state = m.state.WithJobDescription(m.jobInput.Value())

	next, jobDescription, err := m.state.BeginScore()
	if err != nil {
		if errors.Is(err, apierrors.ErrEmptyJobDescription) {
			return m, m.show(m.notices.Error(models.EmptyJobDescText))
		}
		// Already scoring
		return m, nil
	}

	m.state = next
	return m, tea.Batch(m.requestScore(jobDescription), m.spinner.Tick)
}

func (m Model) requestScore(jobDescription string) tea.Cmd {
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		result, err := client.Score(ctx, jobDescription)
		return scoreResultMsg{result: result, err: err}
	}
}

// ───────────────────────────── export ─────────────────────────────

func (m Model) exportTranscript() (tea.Model, tea.Cmd) {
	if !m.state.CanExport() {
		return m, nil
	}

	path, err := m.state.WriteTranscript(m.exportDir)
	if err != nil {
		m.logger.Error("failed to export transcript", zap.Error(err))
		return m, m.show(m.notices.Error(fmt.Sprintf(models.ExportFailedTextFormat, err)))
	}

	m.logger.Info("transcript exported", zap.String("path", path))
	return m, m.show(m.notices.Success(models.TranscriptSavedText))
}

func (m Model) copyTranscript() (tea.Model, tea.Cmd) {
	text, err := m.state.Transcript()
	if err != nil {
		return m, nil
	}

	if err := m.clipboard(text); err != nil {
		m.logger.Warn("clipboard write failed", zap.Error(err))
		return m, m.show(m.notices.Error(models.ClipboardFailedText))
	}
	return m, m.show(m.notices.Success(models.TranscriptCopiedText))
}

// ───────────────────────────── theme ─────────────────────────────

func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	m.state = m.state.ToggleTheme()
	m.applyTheme()

	if err := config.SaveTheme(m.prefs, m.state.Theme); err != nil {
		m.logger.Warn("failed to persist theme", zap.Error(err))
		return m, m.show(m.notices.Error(models.ThemeSaveFailedText))
	}
	return m, nil
}

// applyTheme switches the palette and the markdown style to the session theme
func (m *Model) applyTheme() {
	render.SetTUITheme(m.state.Theme)
	UpdateTheme()

	m.renderOpts = m.renderOpts.WithTheme(m.state.Theme)
	styleInput(&m.textarea)
	styleInput(&m.jobInput)
	m.spinner.Style = loadingStyle
	m.md.clear()
	m.refreshViewport(false)
}

// ───────────────────────────── program ─────────────────────────────

// RunChat starts the chat TUI
func RunChat(opts Options) error {
	m := NewModel(opts)
	defer m.cancel()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
