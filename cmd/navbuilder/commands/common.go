package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/sciforge/navbuilder/internal/config"
	"github.com/sciforge/navbuilder/internal/history"
	"github.com/sciforge/navbuilder/internal/logfields"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init        InitCmd        `cmd:"" help:"Initialize a configuration file and example navigation index"`
	Check       CheckCmd       `cmd:"" help:"Load and validate the navigation index"`
	Resolve     ResolveCmd     `cmd:"" help:"Resolve page references against the content catalog"`
	Render      RenderCmd      `cmd:"" help:"Render the navigation site and generator export"`
	Preview     PreviewCmd     `cmd:"" help:"Serve the rendered site and re-run on changes"`
	History     HistoryCmd     `cmd:"" help:"Show recent check/render runs"`
	VerifyLinks VerifyLinksCmd `cmd:"" name:"verify-links" help:"Verify external link targets and rendered anchors"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig loads the root configuration file.
func loadConfig(root *CLI) (*config.Config, error) {
	return config.Load(root.Config)
}

// openHistory opens the configured run history store, or nil when disabled.
// Failures degrade to running without history.
func openHistory(cfg *config.Config) *history.Store {
	if cfg.History == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.History), 0o755); err != nil {
		slog.Warn("History directory not writable, continuing without history", logfields.Error(err))
		return nil
	}
	store, err := history.Open(cfg.History)
	if err != nil {
		slog.Warn("History store unavailable, continuing without history", logfields.Error(err))
		return nil
	}
	return store
}
