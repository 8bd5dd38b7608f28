package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	apierrors "github.com/diogo/resumechat/internal/errors"
	"github.com/diogo/resumechat/internal/models"
)

// UploadResult is the backend's reply to a résumé upload
type UploadResult struct {
	FileName string
	Size     int64
	// Greeting is the backend message, or the default greeting when the
	// backend sent none
	Greeting string
}

// UploadResume uploads a résumé file from disk
func (c *BackendClient) UploadResume(ctx context.Context, file models.ResumeFile) (*UploadResult, error) {
	if file.Size > models.MaxResumeSize {
		return nil, apierrors.NewValidationError("file", apierrors.ErrFileTooLarge)
	}

	f, err := os.Open(file.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	name := file.Name
	if name == "" {
		name = filepath.Base(file.Path)
	}

	return c.UploadResumeFromReader(ctx, f, name)
}

// UploadResumeFromReader uploads résumé content read from reader
func (c *BackendClient) UploadResumeFromReader(ctx context.Context, reader io.Reader, fileName string) (*UploadResult, error) {
	// Read one byte past the limit to detect oversized input
	data, err := io.ReadAll(io.LimitReader(reader, models.MaxResumeSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	if int64(len(data)) > models.MaxResumeSize {
		return nil, apierrors.NewValidationError("file", apierrors.ErrFileTooLarge)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, models.FormFieldFile, fileName))
	header.Set("Content-Type", models.PDFMIMEType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write file data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, models.EndpointUpload, writer.FormDataContentType(), &body)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req, "upload", models.EndpointUpload)
	if err != nil {
		return nil, err
	}

	respBody, err := readBody(resp)
	if err != nil {
		return nil, apierrors.NewNetworkErrorWithEndpoint("upload", models.EndpointUpload, err)
	}

	result := &UploadResult{
		FileName: fileName,
		Size:     int64(len(data)),
		Greeting: models.DefaultGreeting,
	}

	// A body that is not JSON, or has no message, keeps the default greeting
	if message := gjson.GetBytes(respBody, "message"); message.Type == gjson.String && message.String() != "" {
		result.Greeting = message.String()
	}

	c.logger.Info("resume uploaded",
		zap.String("file", fileName),
		zap.Int64("size", result.Size),
	)

	return result, nil
}
