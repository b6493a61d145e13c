package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/sciforge/navbuilder/internal/events"
	"github.com/sciforge/navbuilder/internal/linkcheck"
	"github.com/sciforge/navbuilder/internal/logfields"
	"github.com/sciforge/navbuilder/internal/navindex"
)

// VerifyLinksCmd implements the 'verify-links' command: check the link targets
// declared in the index and, optionally, the anchors of a rendered site.
type VerifyLinksCmd struct {
	Live bool   `help:"Issue HEAD requests against each external link target"`
	Site string `help:"Rendered site directory to verify internal anchors in"`
}

// Run executes the verify-links command.
func (v *VerifyLinksCmd) Run(root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(cfg.Index)
	if err != nil {
		return fmt.Errorf("read index %s: %w", cfg.Index, err)
	}
	ix, err := navindex.Load(data)
	if err != nil {
		return err
	}

	checker := linkcheck.NewChecker(nil)
	findings := checker.CheckTargets(context.Background(), ix, v.Live)

	if v.Site != "" {
		rendered, err := linkcheck.CheckRendered(v.Site)
		if err != nil {
			return err
		}
		findings = append(findings, rendered...)
	}

	if len(findings) == 0 {
		slog.Info("All link targets verified", logfields.Count(len(ix.Links())))
		return nil
	}

	publisher, err := events.Connect(cfg.Server.NATSURL, cfg.Server.NATSSubject)
	if err != nil {
		slog.Warn("Event publisher unavailable", logfields.Error(err))
		publisher = nil
	}
	defer publisher.Close()

	for _, f := range findings {
		slog.Error("Broken link target",
			logfields.Label(f.Label), logfields.URL(f.URL), slog.String("error", f.Error))
		publisher.Publish(events.Event{
			Type:   "broken_link",
			Label:  f.Label,
			URL:    f.URL,
			Detail: f.Error,
		})
	}
	return fmt.Errorf("%d broken link target(s)", len(findings))
}
