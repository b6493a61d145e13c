package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/sciforge/navbuilder/internal/history"
)

// HistoryCmd implements the 'history' command: list recent runs.
type HistoryCmd struct {
	Limit int  `short:"n" default:"20" help:"Maximum number of runs to show"`
	Last  bool `help:"Show only the most recent run"`
}

// Run executes the history command.
func (h *HistoryCmd) Run(root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	if cfg.History == "" {
		return fmt.Errorf("run history is disabled (empty history path in %s)", root.Config)
	}

	store, err := history.Open(cfg.History)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()

	var runs []history.Run
	if h.Last {
		run, err := store.Last(ctx)
		if err != nil {
			if errors.Is(err, history.ErrNoRuns) {
				fmt.Println("No runs recorded")
				return nil
			}
			return err
		}
		runs = []history.Run{run}
	} else {
		runs, err = store.Recent(ctx, h.Limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded")
			return nil
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tSTATUS\tPAGES\tLINKS\tUNRESOLVED\tDURATION\tDETAIL")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			r.StartedAt.Local().Format(time.RFC3339), r.Status,
			r.PageRefs, r.Links, r.Unresolved,
			time.Duration(r.DurationMS)*time.Millisecond, r.Detail)
	}
	return w.Flush()
}
