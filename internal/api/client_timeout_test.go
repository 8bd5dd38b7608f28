package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diogo/resumechat/internal/models"
)

// newSlowChatServer streams parts records, pausing gap between them
func newSlowChatServer(t *testing.T, parts int, gap time.Duration) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		require.True(t, ok)
		w.Header().Set("Content-Type", "text/event-stream")
		for i := 0; i < parts; i++ {
			if i > 0 {
				time.Sleep(gap)
			}
			fmt.Fprintf(w, "data: part%d\n", i)
			flusher.Flush()
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClient_NoTimeoutByDefault(t *testing.T) {
	client, err := NewClient()
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, 0, client.timeoutSeconds)
	assert.Equal(t, 0, models.DefaultTimeoutSeconds)
}

func TestStreamChat_SlowStreamOutlivesRequestWindow(t *testing.T) {
	if testing.Short() {
		t.Skip("streams for a few seconds")
	}
	srv := newSlowChatServer(t, 3, 700*time.Millisecond)

	client, err := NewClient(WithBaseURL(srv.URL))
	require.NoError(t, err)
	defer client.Close()

	stream, err := client.StreamChat(context.Background(), "hi")
	require.NoError(t, err)
	defer stream.Close()

	text, err := stream.Collect()
	require.NoError(t, err)
	assert.Equal(t, "part0part1part2", text)
}

func TestStreamChat_ConfiguredTimeoutCutsStream(t *testing.T) {
	if testing.Short() {
		t.Skip("streams for a few seconds")
	}
	srv := newSlowChatServer(t, 4, 700*time.Millisecond)

	client, err := NewClient(WithBaseURL(srv.URL), WithTimeoutSeconds(1))
	require.NoError(t, err)
	defer client.Close()

	stream, err := client.StreamChat(context.Background(), "hi")
	require.NoError(t, err)
	defer stream.Close()

	text, err := stream.Collect()
	require.Error(t, err)
	assert.NotEqual(t, "part0part1part2part3", text)
}
