package commands

import (
	"errors"
	"strings"
	"testing"

	apierrors "github.com/diogo/resumechat/internal/errors"
	"github.com/diogo/resumechat/internal/render"
)

func TestFormatErrorMessage_Nil(t *testing.T) {
	if got := formatErrorMessage(nil, "ctx"); got != "" {
		t.Fatalf("expected empty for nil error, got %s", got)
	}
}

func TestFormatErrorMessage_APIError(t *testing.T) {
	e := apierrors.NewAPIErrorWithBody(500, "/score", "failure", "detailed body")
	out := formatErrorMessage(e, "Failed")

	for _, want := range []string{"HTTP Status: 500", "Endpoint: /score", "detailed body"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in message, got: %s", want, out)
		}
	}
	if strings.Contains(out, "Hint") {
		t.Errorf("expected no hint when a body is shown, got: %s", out)
	}
}

func TestFormatErrorMessage_Hints(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not pdf", apierrors.NewValidationError("file", apierrors.ErrNotPDF), "PDF"},
		{"too large", apierrors.NewValidationError("file", apierrors.ErrFileTooLarge), "20MB"},
		{"empty job", apierrors.NewValidationError("job description", apierrors.ErrEmptyJobDescription), "-f"},
		{"network", apierrors.NewNetworkErrorWithEndpoint("chat", "/chat", errors.New("refused")), "--backend"},
		{"stream", apierrors.NewStreamError("failed to read chat stream", errors.New("reset")), "interrupted"},
		{"api without body", apierrors.NewAPIError(404, "/chat", "not found"), "upload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := formatErrorMessage(tt.err, "Failed")
			if !strings.Contains(out, "Hint") || !strings.Contains(out, tt.want) {
				t.Errorf("expected hint containing %q, got: %s", tt.want, out)
			}
		})
	}
}

func TestBubbleWidths(t *testing.T) {
	tests := []struct {
		term, bubble, content int
	}{
		{20, 40, 36},
		{80, 76, 72},
		{300, 120, 116},
	}

	for _, tt := range tests {
		bubble, content := bubbleWidths(tt.term)
		if bubble != tt.bubble || content != tt.content {
			t.Errorf("bubbleWidths(%d) = %d, %d; want %d, %d", tt.term, bubble, content, tt.bubble, tt.content)
		}
	}
}

func TestRenderAssistantBubble(t *testing.T) {
	out := renderAssistantBubble("**Go** and Python", render.DefaultOptions(), 80)
	if !strings.Contains(out, "Go") || !strings.Contains(out, "Python") {
		t.Errorf("expected rendered text in bubble, got: %s", out)
	}
	if !strings.Contains(out, "╭") {
		t.Errorf("expected rounded border, got: %s", out)
	}
}
