package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	apierrors "github.com/diogo/resumechat/internal/errors"
	"github.com/diogo/resumechat/internal/models"
)

// StreamChat posts message to the chat endpoint and returns a stream over
// the answer fragments. The caller must Close the stream.
func (c *BackendClient) StreamChat(ctx context.Context, message string) (*ChatStream, error) {
	payload, err := json.Marshal(map[string]string{models.FieldMessage: message})
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat payload: %w", err)
	}

	req, err := c.newRequest(ctx, models.EndpointChat, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.do(req, "chat", models.EndpointChat)
	if err != nil {
		return nil, err
	}

	if resp.Body == nil {
		return nil, apierrors.NewStreamError("response has no body", apierrors.ErrNoBody)
	}

	c.logger.Debug("chat stream opened", zap.Int("status", resp.StatusCode))

	return NewChatStream(resp.Body), nil
}
