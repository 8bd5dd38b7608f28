package api

import (
	"context"
	"io"

	"github.com/diogo/resumechat/internal/models"
)

// BackendClientInterface is what the UI and commands need from the backend
type BackendClientInterface interface {
	UploadResume(ctx context.Context, file models.ResumeFile) (*UploadResult, error)
	UploadResumeFromReader(ctx context.Context, reader io.Reader, fileName string) (*UploadResult, error)
	StreamChat(ctx context.Context, message string) (*ChatStream, error)
	Score(ctx context.Context, jobDescription string) (*ScoreResult, error)
	BaseURL() string
	Close()
	IsClosed() bool
}

// Ensure BackendClient implements BackendClientInterface
var _ BackendClientInterface = (*BackendClient)(nil)
