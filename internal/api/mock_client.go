package api

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/diogo/resumechat/internal/models"
)

// MockBackendClient is a mock implementation of BackendClientInterface for testing
type MockBackendClient struct {
	mu sync.Mutex

	// Mock return values
	UploadVal   *UploadResult
	UploadErr   error
	StreamBody  string
	StreamErr   error
	ScoreVal    *ScoreResult
	ScoreErr    error
	BaseURLVal  string
	IsClosedVal bool

	// Call counters/recorders
	UploadCalls        int
	StreamCalls        int
	ScoreCalls         int
	CloseCalled        bool
	LastUpload         models.ResumeFile
	LastMessage        string
	LastJobDescription string
}

// Ensure MockBackendClient implements BackendClientInterface
var _ BackendClientInterface = (*MockBackendClient)(nil)

func (m *MockBackendClient) UploadResume(ctx context.Context, file models.ResumeFile) (*UploadResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UploadCalls++
	m.LastUpload = file
	return m.UploadVal, m.UploadErr
}

func (m *MockBackendClient) UploadResumeFromReader(ctx context.Context, reader io.Reader, fileName string) (*UploadResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UploadCalls++
	m.LastUpload = models.ResumeFile{Name: fileName}
	return m.UploadVal, m.UploadErr
}

// StreamChat returns a stream over StreamBody, which should be written in
// the backend's record format
func (m *MockBackendClient) StreamChat(ctx context.Context, message string) (*ChatStream, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StreamCalls++
	m.LastMessage = message
	if m.StreamErr != nil {
		return nil, m.StreamErr
	}
	return NewChatStream(io.NopCloser(strings.NewReader(m.StreamBody))), nil
}

func (m *MockBackendClient) Score(ctx context.Context, jobDescription string) (*ScoreResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ScoreCalls++
	m.LastJobDescription = jobDescription
	return m.ScoreVal, m.ScoreErr
}

func (m *MockBackendClient) BaseURL() string {
	if m.BaseURLVal == "" {
		return models.DefaultBackendURL
	}
	return m.BaseURLVal
}

func (m *MockBackendClient) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
	m.IsClosedVal = true
}

func (m *MockBackendClient) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.IsClosedVal
}
