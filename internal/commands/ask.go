package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/diogo/resumechat/internal/api"
	"github.com/diogo/resumechat/internal/config"
	"github.com/diogo/resumechat/internal/logging"
	"github.com/diogo/resumechat/internal/render"
)

var (
	askMarkdownFlag bool
	askOutputFlag   string
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask one question about the uploaded résumé",
	Long: `Ask one question about the résumé last uploaded to the backend.

On a terminal the answer is revealed as it streams in. When the output is
piped, fragments are written as they arrive without decoration.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := loadDependencies()
		if err != nil {
			return err
		}
		defer deps.Close()

		return runAsk(cmd.Context(), deps, strings.Join(args, " "))
	},
}

func init() {
	askCmd.Flags().BoolVarP(&askMarkdownFlag, "markdown", "m", false, "Wait for the full answer and render it as markdown")
	askCmd.Flags().StringVarP(&askOutputFlag, "output", "o", "", "Save the answer to a file")
}

func runAsk(ctx context.Context, deps *Dependencies, question string) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return fmt.Errorf("question cannot be empty")
	}

	deps.Logger.Info("asking", zap.String("question", logging.Truncate(question, 80)))

	spin := startSpinner(deps, "Assistant is thinking")
	stream, err := deps.Client.StreamChat(ctx, question)
	if err != nil {
		spin.stopWithError()
		deps.Logger.Error("chat request failed", zap.Error(err))
		return fmt.Errorf("failed to fetch response: %w", err)
	}
	defer stream.Close()

	var text string
	switch {
	case !deps.IsTTY:
		text, err = writeStream(ctx, deps.Out, stream, 0, nil)
	case askMarkdownFlag:
		text, err = stream.Collect()
		spin.stopWithError()
		if err == nil {
			printAssistant(deps, text)
		}
	default:
		interval := deps.Config.RevealInterval()
		text, err = writeStream(ctx, deps.Out, stream, interval, func() {
			spin.stopWithError()
			fmt.Fprintln(deps.Out, assistantLabelStyle.Render("🤖 Assistant"))
		})
		spin.stopWithError()
		fmt.Fprintln(deps.Out)
	}
	if errors.Is(err, errWriteOutput) {
		deps.Logger.Warn("answer output closed", zap.Error(err), zap.Int("written", len(text)))
		return err
	}
	if err != nil {
		deps.Logger.Error("chat stream failed", zap.Error(err), zap.Int("revealed", len(text)))
		return fmt.Errorf("failed to fetch response: %w", err)
	}

	if askOutputFlag != "" {
		if err := os.WriteFile(askOutputFlag, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if deps.IsTTY {
			fmt.Fprintln(deps.Err, successStyle.Render(fmt.Sprintf("✓ Response saved to %s", askOutputFlag)))
		}
	}

	return nil
}

// errWriteOutput marks a failed write of the answer, such as a closed pipe
var errWriteOutput = errors.New("failed to write response")

// writeStream copies stream fragments to w as they arrive. With a positive
// interval each rune waits its turn on a limiter. onFirst runs once before
// the first fragment is written. It returns everything written so far and
// stops at the first read or write error.
func writeStream(ctx context.Context, w io.Writer, stream *api.ChatStream, interval time.Duration, onFirst func()) (string, error) {
	var limiter *rate.Limiter
	if interval > 0 {
		limiter = rate.NewLimiter(rate.Every(interval), 1)
	}

	var sb strings.Builder
	started := false
	for {
		fragment, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return sb.String(), nil
		}
		if err != nil {
			return sb.String(), err
		}

		if !started {
			started = true
			if onFirst != nil {
				onFirst()
			}
		}

		if limiter == nil {
			if _, err := io.WriteString(w, fragment); err != nil {
				return sb.String(), fmt.Errorf("%w: %w", errWriteOutput, err)
			}
			sb.WriteString(fragment)
			continue
		}
		for _, r := range fragment {
			if err := limiter.Wait(ctx); err != nil {
				return sb.String(), err
			}
			if _, err := io.WriteString(w, string(r)); err != nil {
				return sb.String(), fmt.Errorf("%w: %w", errWriteOutput, err)
			}
			sb.WriteRune(r)
		}
	}
}

// printAssistant prints text as markdown inside the assistant bubble
func printAssistant(deps *Dependencies, text string) {
	theme := config.LoadTheme(deps.Prefs)
	opts := render.OptionsFromConfig(deps.Config.Markdown, theme)

	fmt.Fprintln(deps.Out, assistantLabelStyle.Render("🤖 Assistant"))
	fmt.Fprintln(deps.Out, renderAssistantBubble(text, opts, getTerminalWidth()))
}
