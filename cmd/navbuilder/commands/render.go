package commands

import (
	"context"
	"log/slog"

	"github.com/sciforge/navbuilder/internal/logfields"
	"github.com/sciforge/navbuilder/internal/pipeline"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Output       string `short:"o" help:"Output directory for the rendered site (defaults to config)"`
	AllowMissing bool   `help:"Render even when page references are unresolved"`
}

// Run executes the render command.
func (r *RenderCmd) Run(root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	store := openHistory(cfg)
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	runner := pipeline.NewRunner(cfg, store, nil)
	result, err := runner.Run(context.Background(), pipeline.Options{
		Render:       true,
		OutputDir:    r.Output,
		AllowMissing: r.AllowMissing,
	})
	if err != nil {
		return err
	}

	slog.Info("Site rendered",
		logfields.Path(result.Manifest.Outputs.SiteDir),
		slog.Int("pages", result.Manifest.Outputs.RenderedPages))
	return nil
}
