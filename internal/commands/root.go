// Package commands provides CLI commands for resumechat.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/diogo/resumechat/internal/config"
)

var (
	// Global flags
	cfgFile    string
	resumeFlag string

	// settings holds configuration layered from defaults, file, env and flags
	settings = viper.New()

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "resumechat",
	Short: "Chat with your résumé from the terminal",
	Long: `resumechat uploads a PDF résumé to an assistant backend and lets you
chat about it, score it against a job description and save the transcript.

Examples:
  resumechat                            Start the interactive chat
  resumechat --resume ~/cv.pdf          Upload a résumé and start chatting
  resumechat upload ~/cv.pdf            Upload a résumé and print the greeting
  resumechat ask "What are my strengths?"
  resumechat score -f job.txt           Score the résumé against a job description
  resumechat theme dark                 Switch the colour scheme`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Fprintf(cmd.OutOrStdout(), "resumechat %s (built %s)\n", Version, BuildTime)
			return nil
		}
		return runChat(cmd, resumeFlag)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Error"))
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default is ~/.resumechat/config.json)")
	rootCmd.PersistentFlags().String("backend", "", "Assistant backend URL (default http://localhost:8000)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Write debug entries to the log file")
	rootCmd.Flags().StringVarP(&resumeFlag, "resume", "r", "", "PDF résumé to upload on start")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	_ = settings.BindPFlag("backend_url", rootCmd.PersistentFlags().Lookup("backend"))
	_ = settings.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	// Add subcommands
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(exportPathCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the effective configuration for this invocation
func loadConfig() (config.Config, error) {
	if cfgFile != "" {
		settings.SetConfigFile(cfgFile)
	}
	return config.Load(settings)
}
