package api

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"sync"

	apierrors "github.com/diogo/resumechat/internal/errors"
	"github.com/diogo/resumechat/internal/models"
)

// ChatStream decodes a newline-delimited record stream. Records carrying
// the data prefix yield their text; every other record is ignored.
// A ChatStream is not safe for concurrent Next calls.
type ChatStream struct {
	body   io.ReadCloser
	reader *bufio.Reader
	done   bool

	closeOnce sync.Once
	closeErr  error
}

// NewChatStream wraps a response body
func NewChatStream(body io.ReadCloser) *ChatStream {
	return &ChatStream{
		body:   body,
		reader: bufio.NewReader(body),
	}
}

// Next returns the next non-empty text fragment. It returns io.EOF when the
// body ends and a *errors.StreamError if reading fails.
func (s *ChatStream) Next() (string, error) {
	for {
		if s.done {
			return "", io.EOF
		}

		line, err := s.reader.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.done = true
				return "", apierrors.NewStreamError("failed to read chat stream", err)
			}
			// A final record without a trailing newline still counts
			s.done = true
		}

		if text, ok := ParseRecord(line); ok && text != "" {
			return text, nil
		}
	}
}

// Close closes the underlying body. It is safe to call more than once.
func (s *ChatStream) Close() error {
	s.closeOnce.Do(func() {
		s.done = true
		if s.body != nil {
			s.closeErr = s.body.Close()
		}
	})
	return s.closeErr
}

// Collect drains the stream into one string
func (s *ChatStream) Collect() (string, error) {
	var sb strings.Builder
	for {
		text, err := s.Next()
		if errors.Is(err, io.EOF) {
			return sb.String(), nil
		}
		if err != nil {
			return sb.String(), err
		}
		sb.WriteString(text)
	}
}

// ParseRecord extracts the text of one record. ok is false for empty
// records and records without the data prefix.
func ParseRecord(line string) (text string, ok bool) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", false
	}
	if !strings.HasPrefix(line, models.StreamRecordPrefix) {
		return "", false
	}
	return strings.TrimPrefix(line, models.StreamRecordPrefix), true
}
