package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sciforge/navbuilder/internal/config"
	"github.com/sciforge/navbuilder/internal/history"
	"github.com/sciforge/navbuilder/internal/navindex"
	nerrors "github.com/sciforge/navbuilder/internal/navindex/errors"
)

// fixture builds a workspace with an index file referencing pages and a docs
// dir containing the given page ids.
func fixture(t *testing.T, ix *navindex.Index, pages ...string) *config.Config {
	t.Helper()
	dir := t.TempDir()

	data, err := navindex.Render(ix)
	require.NoError(t, err)
	indexPath := filepath.Join(dir, "navigation.yaml")
	require.NoError(t, os.WriteFile(indexPath, data, 0o644))

	docsDir := filepath.Join(dir, "docs")
	require.NoError(t, os.MkdirAll(docsDir, 0o755))
	for _, page := range pages {
		require.NoError(t, os.WriteFile(filepath.Join(docsDir, page+".md"), []byte("# "+page+"\n"), 0o644))
	}

	cfg := &config.Config{Index: indexPath}
	cfg.Docs.Path = docsDir
	cfg.Output.Directory = filepath.Join(dir, "site")
	return cfg
}

func twoPageIndex() *navindex.Index {
	return &navindex.Index{Sections: []navindex.Section{{
		Title:    "Demos",
		MaxDepth: 1,
		Entries: []navindex.Entry{
			{Page: "poisson"},
			{Page: "stokes"},
			{Label: "shenfun", URL: "https://github.com/spectralDNS/shenfun"},
		},
	}}}
}

func TestRun_ValidIndex_Succeeds(t *testing.T) {
	cfg := fixture(t, twoPageIndex(), "poisson", "stokes")
	runner := NewRunner(cfg, nil, nil)

	result, err := runner.Run(context.Background(), Options{})
	require.NoError(t, err)
	require.Equal(t, "ok", result.Manifest.Outcome.Status)
	require.Equal(t, 2, result.Manifest.Outcome.PageRefs)
	require.Equal(t, 1, result.Manifest.Outcome.Links)
	require.Equal(t, 2, result.Manifest.Inputs.CatalogSize)
	require.NotEmpty(t, result.Manifest.Inputs.IndexHash)
}

func TestRun_MissingIndexFile_ReturnsIndexNotFound(t *testing.T) {
	cfg := &config.Config{Index: filepath.Join(t.TempDir(), "navigation.yaml")}
	_, err := NewRunner(cfg, nil, nil).Run(context.Background(), Options{})
	require.Error(t, err)
	require.True(t, errors.Is(err, nerrors.ErrIndexNotFound))
}

func TestRun_UnresolvedReference_FailsStrict(t *testing.T) {
	ix := twoPageIndex()
	ix.Sections[0].Entries = append(ix.Sections[0].Entries, navindex.Entry{Page: "moebius"})
	cfg := fixture(t, ix, "poisson", "stokes")

	result, err := NewRunner(cfg, nil, nil).Run(context.Background(), Options{})
	require.Error(t, err)
	require.True(t, errors.Is(err, nerrors.ErrUnresolvedReference))
	require.Equal(t, 1, result.Manifest.Outcome.Unresolved)
	require.Equal(t, "failed", result.Manifest.Outcome.Status)
}

func TestRun_UnresolvedReference_AllowMissingContinues(t *testing.T) {
	ix := twoPageIndex()
	ix.Sections[0].Entries = append(ix.Sections[0].Entries, navindex.Entry{Page: "moebius"})
	cfg := fixture(t, ix, "poisson", "stokes")

	result, err := NewRunner(cfg, nil, nil).Run(context.Background(), Options{AllowMissing: true})
	require.NoError(t, err)
	require.Equal(t, "ok", result.Manifest.Outcome.Status)
	require.Equal(t, 1, result.Manifest.Outcome.Unresolved)
}

func TestRun_SkipResolve_IgnoresCatalog(t *testing.T) {
	// Index references pages that do not exist; with SkipResolve the pass
	// stops after validation.
	cfg := fixture(t, twoPageIndex())
	result, err := NewRunner(cfg, nil, nil).Run(context.Background(), Options{SkipResolve: true})
	require.NoError(t, err)
	require.Nil(t, result.Catalog)
}

func TestRun_Render_WritesSiteAndManifest(t *testing.T) {
	cfg := fixture(t, twoPageIndex(), "poisson", "stokes")
	result, err := NewRunner(cfg, nil, nil).Run(context.Background(), Options{Render: true})
	require.NoError(t, err)

	siteDir := result.Manifest.Outputs.SiteDir
	require.FileExists(t, filepath.Join(siteDir, "index.html"))
	require.FileExists(t, filepath.Join(siteDir, "nav.yaml"))
	require.FileExists(t, filepath.Join(siteDir, "pages", "poisson.html"))
	require.FileExists(t, filepath.Join(siteDir, "manifest.json"))
}

func TestRun_RecordsHistory(t *testing.T) {
	cfg := fixture(t, twoPageIndex(), "poisson", "stokes")

	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	result, err := NewRunner(cfg, store, nil).Run(context.Background(), Options{})
	require.NoError(t, err)

	last, err := store.Last(context.Background())
	require.NoError(t, err)
	require.Equal(t, result.Manifest.ID, last.ID)
	require.Equal(t, "ok", last.Status)
	require.Equal(t, 2, last.PageRefs)
}

func TestRun_DuplicateEntry_Fails(t *testing.T) {
	ix := &navindex.Index{Sections: []navindex.Section{{
		Title:    "Demos",
		MaxDepth: 1,
		Entries:  []navindex.Entry{{Page: "a"}, {Page: "a"}},
	}}}
	cfg := fixture(t, ix, "a")

	_, err := NewRunner(cfg, nil, nil).Run(context.Background(), Options{})
	require.Error(t, err)
	require.True(t, errors.Is(err, nerrors.ErrDuplicateEntry))
}
