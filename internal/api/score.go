package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	apierrors "github.com/diogo/resumechat/internal/errors"
	"github.com/diogo/resumechat/internal/models"
)

// ScoreResult is the role-fit score returned by the backend
type ScoreResult struct {
	Score float64
}

// Score asks the backend how well the uploaded résumé fits jobDescription
func (c *BackendClient) Score(ctx context.Context, jobDescription string) (*ScoreResult, error) {
	payload, err := json.Marshal(map[string]string{models.FieldJobDescription: jobDescription})
	if err != nil {
		return nil, fmt.Errorf("failed to encode score payload: %w", err)
	}

	req, err := c.newRequest(ctx, models.EndpointScore, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req, "score", models.EndpointScore)
	if err != nil {
		return nil, err
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, apierrors.NewNetworkErrorWithEndpoint("score", models.EndpointScore, err)
	}

	score, err := parseScore(body)
	if err != nil {
		return nil, err
	}

	c.logger.Info("role-fit score received", zap.Float64("score", score))

	return &ScoreResult{Score: score}, nil
}

// parseScore reads the numeric score field. Numeric strings are accepted.
func parseScore(body []byte) (float64, error) {
	if !gjson.ValidBytes(body) {
		return 0, apierrors.NewParseError("score response is not valid JSON", "")
	}

	field := gjson.GetBytes(body, models.FieldScore)
	switch field.Type {
	case gjson.Number:
		return field.Float(), nil
	case gjson.String:
		value, err := strconv.ParseFloat(field.String(), 64)
		if err != nil {
			return 0, apierrors.NewParseError("score is not a number", models.FieldScore)
		}
		return value, nil
	default:
		return 0, apierrors.NewParseError("score missing from response", models.FieldScore)
	}
}
