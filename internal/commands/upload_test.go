package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diogo/resumechat/internal/api"
	apierrors "github.com/diogo/resumechat/internal/errors"
	"github.com/diogo/resumechat/internal/models"
)

func TestRunUpload(t *testing.T) {
	tests := []struct {
		name     string
		greeting string
		want     string
	}{
		{name: "backend greeting", greeting: "Hi! I read your résumé.", want: "Hi! I read your résumé.\n"},
		{name: "default greeting", greeting: "", want: models.DefaultGreeting + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			td := newTestDeps(t)
			td.client.UploadVal = &api.UploadResult{FileName: "cv.pdf", Greeting: tt.greeting}
			path := writePDF(t, "cv.pdf")

			err := runUpload(context.Background(), td.Dependencies, path)
			require.NoError(t, err)

			assert.Equal(t, tt.want, td.out.String())
			assert.Equal(t, 1, td.client.UploadCalls)
			assert.Equal(t, "cv.pdf", td.client.LastUpload.Name)
			assert.Equal(t, path, td.client.LastUpload.Path)
		})
	}
}

func TestRunUpload_QuotedPath(t *testing.T) {
	td := newTestDeps(t)
	td.client.UploadVal = &api.UploadResult{}
	path := writePDF(t, "cv.pdf")

	require.NoError(t, runUpload(context.Background(), td.Dependencies, `"`+path+`"`))
	assert.Equal(t, path, td.client.LastUpload.Path)
}

func TestRunUpload_RejectsNonPDF(t *testing.T) {
	td := newTestDeps(t)
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o600))

	err := runUpload(context.Background(), td.Dependencies, path)
	assert.ErrorIs(t, err, apierrors.ErrNotPDF)
	assert.Zero(t, td.client.UploadCalls)
	assert.Empty(t, td.out.String())
}

func TestRunUpload_MissingFile(t *testing.T) {
	td := newTestDeps(t)

	err := runUpload(context.Background(), td.Dependencies, filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
	assert.Zero(t, td.client.UploadCalls)
}

func TestRunUpload_BackendFailure(t *testing.T) {
	td := newTestDeps(t)
	td.client.UploadErr = apierrors.NewAPIError(500, models.EndpointUpload, "upload failed")

	err := runUpload(context.Background(), td.Dependencies, writePDF(t, "cv.pdf"))
	require.Error(t, err)
	assert.True(t, apierrors.IsAPIError(err))
	assert.Equal(t, 500, apierrors.GetHTTPStatus(err))
	assert.Empty(t, td.out.String())
}
