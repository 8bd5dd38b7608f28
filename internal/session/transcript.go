package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apierrors "github.com/diogo/resumechat/internal/errors"
	"github.com/diogo/resumechat/internal/models"
)

// CanExport reports whether there is anything to export
func (s Session) CanExport() bool {
	return len(s.Messages) > 0
}

// Transcript renders messages as plain text, one labelled block per
// message in display order.
func Transcript(msgs []models.Message) string {
	var sb strings.Builder
	for _, msg := range msgs {
		sb.WriteString(msg.Role.Label())
		sb.WriteString(":\n")
		sb.WriteString(msg.Content)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// Transcript renders the session's messages
func (s Session) Transcript() (string, error) {
	if !s.CanExport() {
		return "", apierrors.ErrNothingToExport
	}
	return Transcript(s.Messages), nil
}

// WriteTranscript saves the session transcript into dir under the fixed
// export file name and returns the written path.
func (s Session) WriteTranscript(dir string) (string, error) {
	content, err := s.Transcript()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, models.TranscriptFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write transcript: %w", err)
	}
	return path, nil
}
