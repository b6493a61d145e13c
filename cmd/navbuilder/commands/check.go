package commands

import (
	"context"
	"log/slog"

	"github.com/sciforge/navbuilder/internal/logfields"
	"github.com/sciforge/navbuilder/internal/pipeline"
)

// CheckCmd implements the 'check' command: load + validate, and resolve
// unless told otherwise.
type CheckCmd struct {
	NoResolve    bool `help:"Skip resolving page references against the content catalog"`
	AllowMissing bool `help:"Report unresolved references as warnings instead of failing"`
}

// Run executes the check command.
func (c *CheckCmd) Run(root *CLI) error {
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
		SkipResolve:  c.NoResolve,
		AllowMissing: c.AllowMissing || !cfg.Strict,
	})
	if err != nil {
		return err
	}

	slog.Info("Navigation index is valid",
		logfields.IndexFile(cfg.Index),
		slog.Int("page_refs", result.Manifest.Outcome.PageRefs),
		slog.Int("links", result.Manifest.Outcome.Links))
	return nil
}

// ResolveCmd implements the 'resolve' command: full resolution pass against
// the content catalog, always strict unless --allow-missing.
type ResolveCmd struct {
	AllowMissing bool `help:"Report unresolved references as warnings instead of failing"`
}

// Run executes the resolve command.
func (r *ResolveCmd) Run(root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	store := openHistory(cfg)
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	runner := pipeline.NewRunner(cfg, store, nil)
	result, err := runner.Run(context.Background(), pipeline.Options{AllowMissing: r.AllowMissing})
	if err != nil {
		return err
	}

	slog.Info("All page references resolved",
		slog.Int("page_refs", result.Manifest.Outcome.PageRefs),
		slog.Int("catalog_pages", result.Manifest.Inputs.CatalogSize))
	return nil
}
