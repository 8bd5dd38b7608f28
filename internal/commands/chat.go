package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/resumechat/internal/config"
	"github.com/diogo/resumechat/internal/models"
	"github.com/diogo/resumechat/internal/notify"
	"github.com/diogo/resumechat/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session about your résumé.

Press Ctrl+O to pick a PDF and Ctrl+U to upload it (Ctrl+U also opens the
picker when nothing is waiting to be uploaded). Type a question and press
Enter to send it.
Tab moves to the job description, Ctrl+R scores it, Ctrl+S saves the
transcript and Ctrl+T switches between the light and dark theme.
Press Esc or Ctrl+C to end the session.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resume, _ := cmd.Flags().GetString("resume")
		return runChat(cmd, resume)
	},
}

func init() {
	chatCmd.Flags().StringP("resume", "r", "", "PDF résumé to upload on start")
}

func runChat(cmd *cobra.Command, resumePath string) error {
	deps, err := loadDependencies()
	if err != nil {
		return err
	}
	defer deps.Close()

	return startChat(cmd, deps, resumePath)
}

// startChat runs the chat TUI with deps
func startChat(cmd *cobra.Command, deps *Dependencies, resumePath string) error {
	exportDir, err := config.GetDownloadDir(deps.Config)
	if err != nil {
		return err
	}

	deps.Logger.Info("starting chat",
		zap.String("backend", deps.Client.BaseURL()),
		zap.String("export_dir", exportDir),
	)

	return deps.TUI.RunChat(tui.Options{
		Client:         deps.Client,
		Prefs:          deps.Prefs,
		Notices:        notify.NewCenter(models.NotificationTTL, models.NotificationCleanupTick),
		Logger:         deps.Logger,
		ExportDir:      exportDir,
		RevealInterval: deps.Config.RevealInterval(),
		Markdown:       deps.Config.Markdown,
		ResumePath:     resumePath,
		Clipboard:      deps.Clipboard,
		Context:        cmd.Context(),
	})
}
