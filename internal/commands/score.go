package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/resumechat/internal/models"
	"github.com/diogo/resumechat/internal/session"
)

var scoreFileFlag string

var scoreCmd = &cobra.Command{
	Use:   "score [job description]",
	Short: "Score the uploaded résumé against a job description",
	Long: `Ask the backend how well the uploaded résumé fits a job description.

The description is read from the arguments, from a file with -f, or from
stdin when it is piped:
  resumechat score "Senior Go engineer, distributed systems"
  resumechat score -f job.txt
  pbpaste | resumechat score`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jobDescription, err := readJobDescription(args, scoreFileFlag, cmd.InOrStdin())
		if err != nil {
			return err
		}

		deps, err := loadDependencies()
		if err != nil {
			return err
		}
		defer deps.Close()

		return runScore(cmd.Context(), deps, jobDescription)
	},
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreFileFlag, "file", "f", "", "Read the job description from a file")
}

// readJobDescription picks the job description from a file, the arguments
// or piped stdin, in that order
func readJobDescription(args []string, file string, stdin io.Reader) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	}

	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if f, ok := stdin.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
			return "", nil
		}
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func runScore(ctx context.Context, deps *Dependencies, jobDescription string) error {
	s, jobDescription, err := session.New(models.ThemeLight).WithJobDescription(jobDescription).BeginScore()
	if err != nil {
		return err
	}

	spin := startSpinner(deps, "Scoring")
	result, err := deps.Client.Score(ctx, jobDescription)
	if err != nil {
		spin.stopWithError()
		deps.Logger.Error("score failed", zap.Error(err))
		return fmt.Errorf("failed to calculate role-fit score: %w", err)
	}
	spin.stopWithError()

	s = s.ScoreSucceeded(result.Score)
	deps.Logger.Info("scored", zap.Float64("score", result.Score))

	if !deps.IsTTY {
		fmt.Fprintln(deps.Out, s.ScoreText())
		return nil
	}
	fmt.Fprintln(deps.Out, successStyle.Bold(true).Render(fmt.Sprintf(models.ScoreSuccessTextFormat, s.ScoreText())))
	return nil
}
