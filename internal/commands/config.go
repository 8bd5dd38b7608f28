package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/diogo/resumechat/internal/config"
	"github.com/diogo/resumechat/internal/models"
)

var exportPathCmd = &cobra.Command{
	Use:   "export-path",
	Short: "Print where the chat transcript is saved",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runExportPath(cmd.OutOrStdout(), cfg)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the configuration after defaults, the config file, RESUMECHAT_*
environment variables and flags have been applied.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(); err != nil {
			return err
		}
		return runShowConfig(cmd.OutOrStdout(), settings)
	},
}

func runExportPath(out io.Writer, cfg config.Config) error {
	dir, err := config.GetDownloadDir(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, filepath.Join(dir, models.TranscriptFileName))
	return nil
}

func runShowConfig(out io.Writer, v *viper.Viper) error {
	if used := v.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "# %s\n", used)
	}

	keys := v.AllKeys()
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(out, "%s = %v\n", key, v.Get(key))
	}
	return nil
}
