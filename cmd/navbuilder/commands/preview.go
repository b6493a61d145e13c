package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/sciforge/navbuilder/internal/daemon"
	"github.com/sciforge/navbuilder/internal/events"
	"github.com/sciforge/navbuilder/internal/logfields"
	"github.com/sciforge/navbuilder/internal/pipeline"
	"github.com/sciforge/navbuilder/internal/server"
)

// PreviewCmd implements the 'preview' command: render, serve, watch, and
// periodically revalidate until interrupted.
type PreviewCmd struct {
	Port   int    `short:"p" help:"Port to serve on (defaults to config)"`
	Output string `short:"o" help:"Output directory for the rendered site (defaults to config)"`
}

// Run executes the preview command.
func (p *PreviewCmd) Run(root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if p.Port != 0 {
		cfg.Server.Port = p.Port
	}
	outputDir := p.Output
	if outputDir == "" {
		outputDir = cfg.Output.Directory
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store := openHistory(cfg)
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	publisher, err := events.Connect(cfg.Server.NATSURL, cfg.Server.NATSSubject)
	if err != nil {
		return fmt.Errorf("event publisher: %w", err)
	}
	defer publisher.Close()

	runner := pipeline.NewRunner(cfg, store, publisher)
	runPass := func(ctx context.Context, reason string) error {
		slog.Debug("Preview pass triggered", slog.String("reason", reason))
		// Preview keeps serving with the previous good output on failures.
		_, err := runner.Run(ctx, pipeline.Options{Render: true, OutputDir: outputDir, AllowMissing: true})
		return err
	}

	srv := server.New(cfg.Server.Port, outputDir, store)
	if err := srv.Start(ctx); err != nil {
		return err
	}

	d := daemon.New(cfg, runPass)
	if err := d.Run(ctx); err != nil {
		return err
	}

	slog.Info("Shutting down preview")
	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	if err := srv.Stop(stopCtx); err != nil {
		slog.Warn("Preview server shutdown failed", logfields.Error(err))
	}
	return nil
}
