package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/resumechat/internal/config"
	"github.com/diogo/resumechat/internal/session"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file.pdf>",
	Short: "Upload a PDF résumé",
	Long: `Upload a PDF résumé to the backend and print its greeting.

The backend keeps the résumé, so 'ask' and 'score' can be used afterwards.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := loadDependencies()
		if err != nil {
			return err
		}
		defer deps.Close()

		return runUpload(cmd.Context(), deps, args[0])
	},
}

func runUpload(ctx context.Context, deps *Dependencies, path string) error {
	s, err := session.New(config.LoadTheme(deps.Prefs)).SelectPath(session.ExpandPath(path))
	if err != nil {
		return err
	}
	s, err = s.BeginUpload()
	if err != nil {
		return err
	}
	file := *s.UploadedFile

	deps.Logger.Info("uploading résumé",
		zap.String("file", file.Name),
		zap.Int64("size", file.Size),
	)

	spin := startSpinner(deps, fmt.Sprintf("Uploading %s", file.Name))
	result, err := deps.Client.UploadResume(ctx, file)
	if err != nil {
		spin.stopWithError()
		deps.Logger.Error("upload failed", zap.Error(err))
		return fmt.Errorf("upload failed: %w", err)
	}
	spin.stopWithSuccess("Uploaded")

	s = s.UploadSucceeded(result.Greeting)
	fmt.Fprintln(deps.Out, s.Messages[0].Content)
	return nil
}
