package gitsource

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/sciforge/navbuilder/internal/config"
	"github.com/sciforge/navbuilder/internal/logfields"
)

// ErrCloneFailed indicates the docs repository could not be fetched.
var ErrCloneFailed = errors.New("docs repository clone failed")

// Workspace is a temporary checkout of a remote docs source.
type Workspace struct {
	root string
	path string
}

// Fetch clones the configured docs repository into a fresh temp workspace and
// returns it. Callers own the workspace and should Cleanup when done.
func Fetch(docs config.DocsConfig) (*Workspace, error) {
	root, err := os.MkdirTemp("", "navbuilder-docs-*")
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	repoPath := filepath.Join(root, "source")
	slog.Debug("Cloning docs repository", logfields.URL(docs.Repo), slog.String("branch", docs.Branch), logfields.Path(repoPath))

	opts := &git.CloneOptions{URL: docs.Repo}
	if docs.Branch != "" {
		opts.ReferenceName = plumbing.ReferenceName("refs/heads/" + docs.Branch)
		opts.SingleBranch = true
	}
	if docs.Depth > 0 {
		opts.Depth = docs.Depth
	}

	repo, err := git.PlainClone(repoPath, false, opts)
	if err != nil {
		_ = os.RemoveAll(root)
		return nil, fmt.Errorf("%w: %s: %w", ErrCloneFailed, docs.Repo, err)
	}

	if ref, herr := repo.Head(); herr == nil {
		slog.Info("Docs repository cloned", logfields.URL(docs.Repo), slog.String("commit", ref.Hash().String()[:8]))
	} else {
		slog.Info("Docs repository cloned", logfields.URL(docs.Repo))
	}

	return &Workspace{root: root, path: repoPath}, nil
}

// DocsDir returns the directory to catalog. When subdir is non-empty it is
// resolved inside the checkout (remote repos usually keep content under docs/).
func (w *Workspace) DocsDir(subdir string) string {
	if subdir == "" {
		return w.path
	}
	return filepath.Join(w.path, subdir)
}

// Cleanup removes the workspace.
func (w *Workspace) Cleanup() error {
	if w.root == "" {
		return nil
	}
	return os.RemoveAll(w.root)
}
