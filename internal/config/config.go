// Package config handles configuration and local preferences for resumechat.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/diogo/resumechat/internal/models"
)

// EnvPrefix is the prefix for environment overrides (RESUMECHAT_BACKEND_URL, ...)
const EnvPrefix = "RESUMECHAT"

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	EnableEmoji      bool `mapstructure:"enable_emoji"`
	PreserveNewLines bool `mapstructure:"preserve_newlines"`
	TableWrap        bool `mapstructure:"table_wrap"`
	InlineTableLinks bool `mapstructure:"inline_table_links"`
}

// Config represents the user configuration
type Config struct {
	// BackendURL is the base URL of the assistant backend.
	BackendURL string `mapstructure:"backend_url"`
	// TimeoutSeconds bounds every backend request, including reading a
	// streamed answer. 0, the default, disables the timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	// RevealIntervalMS is the pause between revealed characters of a
	// streamed answer. 0 reveals fragments as fast as they arrive.
	RevealIntervalMS   int            `mapstructure:"reveal_interval_ms"`
	InsecureSkipVerify bool           `mapstructure:"insecure_skip_verify"`
	DownloadDir        string         `mapstructure:"download_dir"`
	LogFile            string         `mapstructure:"log_file"`
	Debug              bool           `mapstructure:"debug"`
	CopyToClipboard    bool           `mapstructure:"copy_to_clipboard"`
	Markdown           MarkdownConfig `mapstructure:"markdown"`
}

// RevealInterval returns the configured per-character delay
func (c Config) RevealInterval() time.Duration {
	if c.RevealIntervalMS <= 0 {
		return 0
	}
	return time.Duration(c.RevealIntervalMS) * time.Millisecond
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	configDir, _ := GetConfigDir()
	return Config{
		BackendURL:       models.DefaultBackendURL,
		TimeoutSeconds:   models.DefaultTimeoutSeconds,
		RevealIntervalMS: int(models.DefaultRevealInterval / time.Millisecond),
		DownloadDir:      filepath.Join(configDir, "exports"),
		LogFile:          filepath.Join(configDir, "logs", "resumechat.log"),
		Markdown:         DefaultMarkdownConfig(),
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".resumechat"), nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetDownloadDir returns the export directory from config, creating it if necessary
func GetDownloadDir(cfg Config) (string, error) {
	dir := cfg.DownloadDir
	if dir == "" {
		dir = DefaultConfig().DownloadDir
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	return dir, nil
}

// SetDefaults registers every config key with its default so env
// overrides and Unmarshal see the full key set.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("backend_url", d.BackendURL)
	v.SetDefault("timeout_seconds", d.TimeoutSeconds)
	v.SetDefault("reveal_interval_ms", d.RevealIntervalMS)
	v.SetDefault("insecure_skip_verify", d.InsecureSkipVerify)
	v.SetDefault("download_dir", d.DownloadDir)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("copy_to_clipboard", d.CopyToClipboard)
	v.SetDefault("markdown.enable_emoji", d.Markdown.EnableEmoji)
	v.SetDefault("markdown.preserve_newlines", d.Markdown.PreserveNewLines)
	v.SetDefault("markdown.table_wrap", d.Markdown.TableWrap)
	v.SetDefault("markdown.inline_table_links", d.Markdown.InlineTableLinks)
}

// Load reads configuration into cfg from v. Values come, in increasing
// precedence, from defaults, the config file, RESUMECHAT_* environment
// variables and any flags already bound to v. A missing config file is not
// an error.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if v.ConfigFileUsed() == "" {
		configPath, err := GetConfigPath()
		if err != nil {
			return DefaultConfig(), err
		}
		v.SetConfigFile(configPath)
	}
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")
	if cfg.BackendURL == "" {
		cfg.BackendURL = models.DefaultBackendURL
	}
	if cfg.TimeoutSeconds < 0 {
		cfg.TimeoutSeconds = 0
	}

	return cfg, nil
}

// LoadConfig loads the configuration with a fresh viper instance
func LoadConfig() (Config, error) {
	return Load(viper.New())
}
