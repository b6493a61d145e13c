package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sciforge/navbuilder/internal/config"
	"github.com/sciforge/navbuilder/internal/logfields"
	"github.com/sciforge/navbuilder/internal/navindex"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool   `help:"Overwrite existing files"`
	Index string `help:"Navigation index path to create" default:"navigation.yaml"`
}

// Run writes an example configuration and navigation index.
func (i *InitCmd) Run(root *CLI) error {
	if err := config.Init(root.Config, i.Force); err != nil {
		return err
	}
	slog.Info("Configuration written", logfields.Path(root.Config))

	if _, err := os.Stat(i.Index); err == nil && !i.Force {
		return fmt.Errorf("navigation index already exists: %s (use --force to overwrite)", i.Index)
	}

	data, err := navindex.Render(navindex.Example())
	if err != nil {
		return err
	}
	if err := os.WriteFile(i.Index, data, 0o644); err != nil {
		return fmt.Errorf("write navigation index: %w", err)
	}
	slog.Info("Navigation index written", logfields.IndexFile(i.Index))
	return nil
}
