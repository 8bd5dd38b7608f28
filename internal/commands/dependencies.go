package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"github.com/diogo/resumechat/internal/api"
	"github.com/diogo/resumechat/internal/config"
	"github.com/diogo/resumechat/internal/logging"
	"github.com/diogo/resumechat/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(opts tui.Options) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// Config is the effective configuration
	Config config.Config

	// Client is the assistant backend client.
	Client api.BackendClientInterface

	// Prefs stores the theme preference.
	Prefs config.PrefsStore

	// Logger writes to the rotated log file.
	Logger *zap.Logger

	// TUI is the terminal user interface.
	TUI TUIInterface

	// Clipboard writes text to the system clipboard.
	Clipboard func(string) error

	// Out and Err receive command output.
	Out io.Writer
	Err io.Writer

	// IsTTY reports whether Out is an interactive terminal.
	IsTTY bool
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(opts tui.Options) error {
	return tui.RunChat(opts)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies(cfg config.Config) (*Dependencies, error) {
	logger, err := logging.New(cfg.LogFile, cfg.Debug)
	if err != nil {
		return nil, err
	}

	client, err := api.NewClient(
		api.WithBaseURL(cfg.BackendURL),
		api.WithTimeoutSeconds(cfg.TimeoutSeconds),
		api.WithInsecureSkipVerify(cfg.InsecureSkipVerify),
		api.WithLogger(logger),
	)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	prefs, err := config.DefaultPrefsStore()
	if err != nil {
		client.Close()
		_ = logger.Sync()
		return nil, err
	}

	return &Dependencies{
		Config:    cfg,
		Client:    client,
		Prefs:     prefs,
		Logger:    logger,
		TUI:       &DefaultTUI{},
		Clipboard: clipboard.WriteAll,
		Out:       os.Stdout,
		Err:       os.Stderr,
		IsTTY:     isStdoutTTY(),
	}, nil
}

// Close releases the client and flushes the logger
func (d *Dependencies) Close() {
	if d.Client != nil {
		d.Client.Close()
	}
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}
}

// newDependencies is swapped out by tests
var newDependencies = NewDependencies

// loadDependencies resolves config and builds the dependencies for a command
func loadDependencies() (*Dependencies, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newDependencies(cfg)
}
