package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/sciforge/navbuilder/internal/catalog"
	"github.com/sciforge/navbuilder/internal/config"
	"github.com/sciforge/navbuilder/internal/events"
	"github.com/sciforge/navbuilder/internal/gitsource"
	"github.com/sciforge/navbuilder/internal/history"
	"github.com/sciforge/navbuilder/internal/logfields"
	"github.com/sciforge/navbuilder/internal/manifest"
	"github.com/sciforge/navbuilder/internal/navindex"
	nerrors "github.com/sciforge/navbuilder/internal/navindex/errors"
	"github.com/sciforge/navbuilder/internal/render"
	"github.com/sciforge/navbuilder/internal/server"
)

// Options controls a single pass.
type Options struct {
	Render       bool   // also generate the site
	OutputDir    string // overrides config output directory when non-empty
	AllowMissing bool   // downgrade unresolved references to warnings
	SkipResolve  bool   // load+validate only (no catalog discovery)
}

// Result is the outcome of one pass.
type Result struct {
	Index    *navindex.Index
	Catalog  *catalog.Catalog
	Manifest *manifest.RunManifest
}

// Runner executes the load/validate/resolve (and optionally render) pass.
// Store and publisher are optional collaborators.
type Runner struct {
	cfg       *config.Config
	store     *history.Store
	publisher *events.Publisher
}

// NewRunner creates a runner. store and publisher may be nil.
func NewRunner(cfg *config.Config, store *history.Store, publisher *events.Publisher) *Runner {
	return &Runner{cfg: cfg, store: store, publisher: publisher}
}

// Run executes one pass and returns its result. The returned error reflects
// index problems (malformed, invariant violations, unresolved references);
// bookkeeping failures (history, events) are logged, never fatal.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	started := time.Now()
	m := manifest.New()
	m.Inputs.IndexPath = r.cfg.Index

	result := &Result{Manifest: m}
	runErr := r.pass(ctx, opts, result)

	m.Duration = time.Since(started).Milliseconds()
	if runErr != nil {
		m.Outcome.Status = "failed"
		m.Outcome.Error = runErr.Error()
	} else {
		m.Outcome.Status = "ok"
	}

	r.record(ctx, m, started)
	server.ObserveRun(m.Outcome.Status, m.Outcome.PageRefs, m.Outcome.Unresolved)
	r.publish(m, runErr)

	slog.Info("Run finished",
		logfields.RunID(m.ID),
		slog.String("status", m.Outcome.Status),
		logfields.DurationMS(float64(m.Duration)))
	return result, runErr
}

func (r *Runner) pass(ctx context.Context, opts Options, result *Result) error {
	source, err := os.ReadFile(r.cfg.Index)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", nerrors.ErrIndexNotFound, r.cfg.Index)
		}
		return fmt.Errorf("read index %s: %w", r.cfg.Index, err)
	}
	result.Manifest.Inputs.IndexHash = manifest.HashContent(source)

	ix, err := navindex.Load(source)
	if err != nil {
		return err
	}
	result.Index = ix
	result.Manifest.Outcome.PageRefs = len(ix.PageRefs())
	result.Manifest.Outcome.Links = len(ix.Links())

	if err := navindex.Validate(ix); err != nil {
		return err
	}

	if opts.SkipResolve {
		return nil
	}

	cat, err := r.discoverCatalog(ctx)
	if err != nil {
		return err
	}
	result.Catalog = cat
	result.Manifest.Inputs.CatalogSize = cat.Len()

	if err := navindex.Resolve(ix, cat.IDs()); err != nil {
		result.Manifest.Outcome.Unresolved = countUnresolved(err)
		if !opts.AllowMissing {
			return err
		}
		slog.Warn("Continuing despite unresolved references", logfields.Error(err))
	}

	if opts.Render {
		outputDir := opts.OutputDir
		if outputDir == "" {
			outputDir = r.cfg.Output.Directory
		}
		gen := render.NewGenerator(r.cfg, outputDir)
		if err := gen.GenerateSite(ix, cat); err != nil {
			return err
		}
		result.Manifest.Outputs.SiteDir = outputDir
		result.Manifest.Outputs.RenderedPages = cat.Len()
		if err := writeManifest(outputDir, result.Manifest); err != nil {
			slog.Warn("Failed to write run manifest", logfields.Error(err))
		}
	}
	return nil
}

func (r *Runner) discoverCatalog(ctx context.Context) (*catalog.Catalog, error) {
	docs := r.cfg.Docs
	if !docs.IsRemote() {
		return catalog.Discover(docs.Path)
	}

	ws, err := gitsource.Fetch(docs)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := ws.Cleanup(); err != nil {
			slog.Warn("Failed to cleanup docs workspace", logfields.Error(err))
		}
	}()

	// For remote sources Path is the subdirectory inside the checkout.
	cat, err := catalog.Discover(ws.DocsDir(docs.Path))
	if err != nil {
		return nil, err
	}
	return cat, nil
}

func (r *Runner) record(ctx context.Context, m *manifest.RunManifest, started time.Time) {
	if r.store == nil {
		return
	}
	err := r.store.Record(ctx, history.Run{
		ID:         m.ID,
		StartedAt:  started.UTC().Truncate(time.Millisecond),
		Status:     m.Outcome.Status,
		PageRefs:   m.Outcome.PageRefs,
		Links:      m.Outcome.Links,
		Unresolved: m.Outcome.Unresolved,
		DurationMS: m.Duration,
		Detail:     m.Outcome.Error,
	})
	if err != nil {
		slog.Warn("Failed to record run", logfields.RunID(m.ID), logfields.Error(err))
	}
}

func (r *Runner) publish(m *manifest.RunManifest, runErr error) {
	ev := events.Event{
		Type:       "run_completed",
		RunID:      m.ID,
		IndexPath:  m.Inputs.IndexPath,
		Unresolved: m.Outcome.Unresolved,
	}
	if runErr != nil {
		ev.Type = "run_failed"
		ev.Detail = runErr.Error()
	}
	r.publisher.Publish(ev)
}

// countUnresolved counts joined unresolved-reference findings.
func countUnresolved(err error) int {
	type unwrapper interface{ Unwrap() []error }
	if joined, ok := err.(unwrapper); ok {
		n := 0
		for _, e := range joined.Unwrap() {
			if errors.Is(e, nerrors.ErrUnresolvedReference) {
				n++
			}
		}
		return n
	}
	if errors.Is(err, nerrors.ErrUnresolvedReference) {
		return 1
	}
	return 0
}

func writeManifest(outputDir string, m *manifest.RunManifest) error {
	data, err := m.ToJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outputDir, "manifest.json"), data, 0o644)
}
