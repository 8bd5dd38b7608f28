// Package api provides the client for the résumé assistant backend.
package api

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"go.uber.org/zap"

	apierrors "github.com/diogo/resumechat/internal/errors"
	"github.com/diogo/resumechat/internal/models"
)

// maxErrorBody limits how much of a failed response is kept for diagnostics
const maxErrorBody = 4096

// BackendClient talks to the assistant backend over HTTP
type BackendClient struct {
	httpClient     tls_client.HttpClient
	baseURL        string
	timeoutSeconds int
	insecure       bool
	logger         *zap.Logger
	mu             sync.RWMutex
	closed         bool
}

// ClientOption is a function that configures the client
type ClientOption func(*BackendClient)

// WithBaseURL sets the backend base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *BackendClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeoutSeconds bounds each request, including reading a streamed
// answer. 0, the default, disables the timeout.
func WithTimeoutSeconds(seconds int) ClientOption {
	return func(c *BackendClient) {
		c.timeoutSeconds = seconds
	}
}

// WithInsecureSkipVerify disables certificate checks for self-signed dev backends
func WithInsecureSkipVerify(enabled bool) ClientOption {
	return func(c *BackendClient) {
		c.insecure = enabled
	}
}

// WithHTTPClient replaces the transport, mostly for tests
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *BackendClient) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger for request diagnostics
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *BackendClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a new BackendClient
func NewClient(opts ...ClientOption) (*BackendClient, error) {
	client := &BackendClient{
		baseURL:        models.DefaultBackendURL,
		timeoutSeconds: models.DefaultTimeoutSeconds,
		logger:         zap.NewNop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.baseURL == "" {
		return nil, fmt.Errorf("backend URL cannot be empty")
	}
	if !strings.HasPrefix(client.baseURL, "http://") && !strings.HasPrefix(client.baseURL, "https://") {
		return nil, fmt.Errorf("backend URL must start with http:// or https://, got %q", client.baseURL)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(client.timeoutSeconds),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}
		if client.insecure {
			options = append(options, tls_client.WithInsecureSkipVerify())
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// Close releases idle connections. Further requests fail.
func (c *BackendClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.httpClient.CloseIdleConnections()
}

// IsClosed returns whether the client is closed
func (c *BackendClient) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// BaseURL returns the backend base URL
func (c *BackendClient) BaseURL() string {
	return c.baseURL
}

// endpointURL joins the base URL and an endpoint path
func (c *BackendClient) endpointURL(endpoint string) string {
	return c.baseURL + endpoint
}

// newRequest builds a request with the default headers
func (c *BackendClient) newRequest(ctx context.Context, endpoint, contentType string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL(endpoint), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	req.Header.Set("Content-Type", contentType)

	return req, nil
}

// do sends req and converts transport failures and non-2xx statuses into
// structured errors. On success the caller owns resp.Body.
func (c *BackendClient) do(req *http.Request, operation, endpoint string) (*http.Response, error) {
	if c.IsClosed() {
		return nil, fmt.Errorf("client is closed")
	}

	c.logger.Debug("backend request",
		zap.String("operation", operation),
		zap.String("url", req.URL.String()),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed", zap.String("operation", operation), zap.Error(err))
		return nil, apierrors.NewNetworkErrorWithEndpoint(operation, endpoint, err)
	}
	if resp == nil {
		return nil, apierrors.NewNetworkErrorWithEndpoint(operation, endpoint, fmt.Errorf("no response"))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := readErrorBody(resp)
		c.logger.Warn("backend returned error status",
			zap.String("operation", operation),
			zap.Int("status", resp.StatusCode),
			zap.String("body", body),
		)
		return nil, apierrors.NewAPIErrorWithBody(resp.StatusCode, endpoint, operation+" failed", body)
	}

	return resp, nil
}

// readErrorBody drains at most maxErrorBody bytes and closes the body
func readErrorBody(resp *http.Response) string {
	if resp.Body == nil {
		return ""
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return strings.TrimSpace(string(data))
}

// readBody reads and closes a successful response body
func readBody(resp *http.Response) ([]byte, error) {
	if resp.Body == nil {
		return nil, nil
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
