// Package session holds the state of one résumé chat session.
//
// Session is a plain value. Every transition is a method with a value
// receiver that returns the next Session and never mutates the receiver,
// so callers can keep or compare earlier states freely.
package session

import (
	"strconv"
	"strings"

	apierrors "github.com/diogo/resumechat/internal/errors"
	"github.com/diogo/resumechat/internal/models"
)

// UploadStatus tracks the résumé upload lifecycle
type UploadStatus string

const (
	UploadIdle      UploadStatus = "idle"
	UploadUploading UploadStatus = "uploading"
	UploadUploaded  UploadStatus = "uploaded"
	UploadFailed    UploadStatus = "failed"
)

// Session is the UI state of one chat session.
type Session struct {
	UploadedFile        *models.ResumeFile
	UploadStatus        UploadStatus
	Messages            []models.Message
	DraftInput          string
	IsStreaming         bool
	Theme               models.Theme
	RoleFitScore        *float64
	JobDescriptionDraft string
	IsScoring           bool
}

// New creates an empty session with the restored theme
func New(theme models.Theme) Session {
	return Session{
		UploadStatus: UploadIdle,
		Messages:     []models.Message{},
		Theme:        theme,
	}
}

func (s Session) withMessages(msgs []models.Message) Session {
	s.Messages = msgs
	return s
}

func (s Session) cloneMessages(extra int) []models.Message {
	out := make([]models.Message, len(s.Messages), len(s.Messages)+extra)
	copy(out, s.Messages)
	return out
}

// ───────────────────────────── upload ─────────────────────────────

// SelectFile accepts f as the résumé to upload. Non-PDF or oversized files
// are rejected and the session is returned unchanged.
func (s Session) SelectFile(f models.ResumeFile) (Session, error) {
	if s.UploadStatus == UploadUploading {
		return s, apierrors.ErrUploadInProgress
	}
	if !strings.HasPrefix(f.MIMEType, models.PDFMIMEType) {
		return s, apierrors.NewValidationError("file", apierrors.ErrNotPDF)
	}
	if f.Size > models.MaxResumeSize {
		return s, apierrors.NewValidationError("file", apierrors.ErrFileTooLarge)
	}

	file := f
	s.UploadedFile = &file
	return s, nil
}

// CanUpload reports whether an upload may be triggered now
func (s Session) CanUpload() bool {
	return s.UploadedFile != nil && s.UploadStatus != UploadUploading && !s.IsStreaming
}

// BeginUpload moves the session into the uploading state
func (s Session) BeginUpload() (Session, error) {
	switch {
	case s.UploadedFile == nil:
		return s, apierrors.ErrNoFileSelected
	case s.UploadStatus == UploadUploading:
		return s, apierrors.ErrUploadInProgress
	case s.IsStreaming:
		return s, apierrors.ErrStreamInProgress
	}
	s.UploadStatus = UploadUploading
	return s, nil
}

// UploadSucceeded seeds the conversation with the backend greeting
// (or the default one) and clears any previous score.
func (s Session) UploadSucceeded(greeting string) Session {
	if strings.TrimSpace(greeting) == "" {
		greeting = models.DefaultGreeting
	}
	s.UploadStatus = UploadUploaded
	s.RoleFitScore = nil
	return s.withMessages([]models.Message{
		{Role: models.RoleAssistant, Content: greeting},
	})
}

// UploadFailed records the failure as a single assistant message
func (s Session) UploadFailed() Session {
	s.UploadStatus = UploadFailed
	msgs := s.cloneMessages(1)
	msgs = append(msgs, models.Message{Role: models.RoleAssistant, Content: models.UploadFailedText})
	return s.withMessages(msgs)
}

// IsUploaded reports whether the résumé upload succeeded
func (s Session) IsUploaded() bool {
	return s.UploadStatus == UploadUploaded
}

// ───────────────────────────── chat ─────────────────────────────

// WithDraft replaces the chat input buffer
func (s Session) WithDraft(text string) Session {
	s.DraftInput = text
	return s
}

// CanSubmit reports whether the current draft may be sent
func (s Session) CanSubmit() bool {
	return s.IsUploaded() && !s.IsStreaming && strings.TrimSpace(s.DraftInput) != ""
}

// SubmitChat appends the trimmed draft as a user message followed by an
// empty assistant placeholder and marks the session as streaming. It
// returns the text to send and false when submission is not allowed, in
// which case the session is unchanged.
func (s Session) SubmitChat() (Session, string, bool) {
	if !s.CanSubmit() {
		return s, "", false
	}

	text := strings.TrimSpace(s.DraftInput)
	msgs := s.cloneMessages(2)
	msgs = append(msgs,
		models.Message{Role: models.RoleUser, Content: text},
		models.Message{Role: models.RoleAssistant, Content: ""},
	)

	s.DraftInput = ""
	s.IsStreaming = true
	return s.withMessages(msgs), text, true
}

// InProgress returns the index of the message being streamed, or -1
func (s Session) InProgress() int {
	if !s.IsStreaming || len(s.Messages) == 0 {
		return -1
	}
	last := len(s.Messages) - 1
	if s.Messages[last].Role != models.RoleAssistant {
		return -1
	}
	return last
}

// AppendToStream appends text to the message being streamed
func (s Session) AppendToStream(text string) Session {
	idx := s.InProgress()
	if idx < 0 || text == "" {
		return s
	}
	msgs := s.cloneMessages(0)
	msgs[idx].Content += text
	return s.withMessages(msgs)
}

// FinishStream ends the stream and keeps the revealed answer
func (s Session) FinishStream() Session {
	s.IsStreaming = false
	return s
}

// FailStream ends the stream with a single error message. Text revealed so
// far is kept; a placeholder that never received text is dropped.
func (s Session) FailStream() Session {
	msgs := s.cloneMessages(1)
	if idx := s.InProgress(); idx >= 0 && msgs[idx].Content == "" {
		msgs = msgs[:idx]
	}
	msgs = append(msgs, models.Message{Role: models.RoleAssistant, Content: models.StreamFailedText})

	s.IsStreaming = false
	return s.withMessages(msgs)
}

// ───────────────────────────── scoring ─────────────────────────────

// WithJobDescription replaces the job description buffer
func (s Session) WithJobDescription(text string) Session {
	s.JobDescriptionDraft = text
	return s
}

// BeginScore validates the job description and marks a score request in
// flight. It returns the text to send.
func (s Session) BeginScore() (Session, string, error) {
	if strings.TrimSpace(s.JobDescriptionDraft) == "" {
		return s, "", apierrors.NewValidationError("job description", apierrors.ErrEmptyJobDescription)
	}
	if s.IsScoring {
		return s, "", apierrors.ErrScoreInFlight
	}
	s.IsScoring = true
	return s, s.JobDescriptionDraft, nil
}

// ScoreSucceeded stores the returned percentage
func (s Session) ScoreSucceeded(score float64) Session {
	s.IsScoring = false
	s.RoleFitScore = &score
	return s
}

// ScoreFailed ends the request and keeps any previous score
func (s Session) ScoreFailed() Session {
	s.IsScoring = false
	return s
}

// ScoreText formats the current score, or "" when there is none
func (s Session) ScoreText() string {
	if s.RoleFitScore == nil {
		return ""
	}
	return FormatScore(*s.RoleFitScore)
}

// FormatScore renders a percentage without trailing zeros
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

// ───────────────────────────── theme ─────────────────────────────

// ToggleTheme flips between light and dark
func (s Session) ToggleTheme() Session {
	s.Theme = s.Theme.Toggle()
	return s
}
