package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/diogo/resumechat/internal/errors"
	"github.com/diogo/resumechat/internal/models"
)

func TestTranscript_Format(t *testing.T) {
	msgs := []models.Message{
		{Role: models.RoleAssistant, Content: "Resume uploaded!"},
		{Role: models.RoleUser, Content: "Summarise it"},
		{Role: models.RoleAssistant, Content: "You are a Go engineer."},
	}

	got := Transcript(msgs)
	want := "🤖 Assistant:\nResume uploaded!\n\n" +
		"🧑 You:\nSummarise it\n\n" +
		"🤖 Assistant:\nYou are a Go engineer.\n\n"
	assert.Equal(t, want, got)

	blocks := strings.Split(strings.TrimSuffix(got, "\n\n"), "\n\n")
	assert.Len(t, blocks, len(msgs), "one block per message")
}

func TestSession_TranscriptEmpty(t *testing.T) {
	s := New(models.ThemeLight)
	assert.False(t, s.CanExport())

	_, err := s.Transcript()
	assert.ErrorIs(t, err, apierrors.ErrNothingToExport)

	dir := t.TempDir()
	_, err = s.WriteTranscript(dir)
	assert.ErrorIs(t, err, apierrors.ErrNothingToExport)

	_, statErr := os.Stat(filepath.Join(dir, models.TranscriptFileName))
	assert.True(t, os.IsNotExist(statErr), "no file is produced without messages")
}

func TestSession_WriteTranscript(t *testing.T) {
	s := uploadedSession(t).WithDraft("hi")
	s, _, _ = s.SubmitChat()
	s = s.AppendToStream("Hello!").FinishStream()

	dir := filepath.Join(t.TempDir(), "exports")
	path, err := s.WriteTranscript(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "resume-chat-history.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Equal(t, 2, strings.Count(content, "🤖 Assistant:"))
	assert.Equal(t, 1, strings.Count(content, "🧑 You:"))
	assert.Less(t, strings.Index(content, models.DefaultGreeting), strings.Index(content, "🧑 You:"))
	assert.Less(t, strings.Index(content, "🧑 You:\nhi"), strings.Index(content, "Hello!"))
}
