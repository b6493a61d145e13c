package daemon

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"github.com/sciforge/navbuilder/internal/config"
	"github.com/sciforge/navbuilder/internal/logfields"
)

// RunFunc executes one check/render pass. reason describes what triggered it.
type RunFunc func(ctx context.Context, reason string) error

// Daemon watches the index file and docs directory, re-running the
// check/render pass on changes (debounced) and on a periodic schedule.
type Daemon struct {
	cfg   *config.Config
	runFn RunFunc
}

// New creates a daemon driving runFn.
func New(cfg *config.Config, runFn RunFunc) *Daemon {
	return &Daemon{cfg: cfg, runFn: runFn}
}

// Run blocks until ctx is cancelled, dispatching runs on file changes and on
// the configured revalidation interval. The initial pass runs immediately.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.runFn(ctx, "startup"); err != nil {
		slog.Error("Initial run failed", logfields.Error(err))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	if err := watcher.Add(filepath.Dir(d.cfg.Index)); err != nil {
		return fmt.Errorf("watch index dir: %w", err)
	}
	if d.cfg.Docs.Path != "" {
		if err := addDirsRecursive(watcher, d.cfg.Docs.Path); err != nil {
			slog.Warn("Docs directory not watchable", logfields.CatalogDir(d.cfg.Docs.Path), logfields.Error(err))
		}
	}

	trigger, pending := newDebouncer(d.cfg.Daemon.DebounceWindow)

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(d.cfg.Daemon.RevalidateInterval),
		gocron.NewTask(func() {
			if err := d.runFn(ctx, "scheduled"); err != nil {
				slog.Error("Scheduled run failed", logfields.Error(err))
			}
		}),
		gocron.WithName("revalidate"),
	)
	if err != nil {
		return fmt.Errorf("schedule revalidation: %w", err)
	}
	scheduler.Start()
	defer func() {
		_ = scheduler.Shutdown()
	}()

	slog.Info("Watching for changes",
		logfields.IndexFile(d.cfg.Index),
		logfields.CatalogDir(d.cfg.Docs.Path),
		slog.Duration("revalidate_interval", d.cfg.Daemon.RevalidateInterval))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if shouldIgnoreEvent(ev.Name) {
				continue
			}
			// New subdirectories need explicit watches.
			if ev.Op.Has(fsnotify.Create) {
				_ = addDirsRecursive(watcher, ev.Name)
			}
			slog.Debug("Change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
			trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		case <-pending:
			if err := d.runFn(ctx, "change"); err != nil {
				slog.Error("Run failed", logfields.Error(err))
			}
		}
	}
}

// newDebouncer collapses bursts of triggers into a single pending signal
// after the window elapses.
func newDebouncer(window time.Duration) (trigger func(), pending <-chan struct{}) {
	var mu sync.Mutex
	var timer *time.Timer
	ch := make(chan struct{}, 1)

	return func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(window, func() {
			select {
			case ch <- struct{}{}:
			default:
			}
		})
	}, ch
}

// addDirsRecursive registers path and every subdirectory with the watcher.
func addDirsRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// shouldIgnoreEvent filters editor temp files and hidden paths.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	switch filepath.Ext(base) {
	case ".swp", ".swx", ".tmp":
		return true
	}
	return strings.HasSuffix(base, "~")
}
