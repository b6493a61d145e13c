package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sciforge/navbuilder/internal/catalog"
	"github.com/sciforge/navbuilder/internal/config"
	"github.com/sciforge/navbuilder/internal/navindex"
)

func TestDisplayTitle(t *testing.T) {
	cases := []struct {
		id   string
		want string
	}{
		{"poisson", "Poisson"},
		{"driven-cavity", "Driven Cavity"},
		{"klein_gordon", "Klein Gordon"},
		{"", ""},
	}
	for _, c := range cases {
		require.Equal(t, c.want, DisplayTitle(c.id))
	}
}

func testIndex() *navindex.Index {
	return &navindex.Index{Sections: []navindex.Section{
		{
			Title:    "Contents",
			MaxDepth: 3,
			Entries:  []navindex.Entry{{Page: "introduction"}},
		},
		{
			Title:    "Demos",
			MaxDepth: 1,
			Entries: []navindex.Entry{
				{Page: "poisson"},
				{Label: "shenfun", URL: "https://github.com/spectralDNS/shenfun"},
			},
		},
	}}
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "introduction.md"), []byte("# Introduction\n\nWelcome.\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "poisson.md"), []byte("---\ntitle: Poisson equation\n---\nSolve.\n"), 0o644))
	cat, err := catalog.Discover(dir)
	require.NoError(t, err)
	return cat
}

func TestBuildNav_JoinsCatalogTitlesAndKeepsOrder(t *testing.T) {
	nav := BuildNav(testIndex(), testCatalog(t))
	require.Len(t, nav.Sections, 2)
	require.Equal(t, "Contents", nav.Sections[0].Title)
	require.Equal(t, 3, nav.Sections[0].MaxDepth)
	require.Equal(t, "Introduction", nav.Sections[0].Items[0].Title)

	demos := nav.Sections[1]
	require.Equal(t, "Poisson equation", demos.Items[0].Title)
	require.False(t, demos.Items[0].External)
	require.Equal(t, "pages/poisson.html", demos.Items[0].Href)
	require.True(t, demos.Items[1].External)
	require.Equal(t, "https://github.com/spectralDNS/shenfun", demos.Items[1].Href)
}

func TestBuildNav_NilCatalog_DerivesTitles(t *testing.T) {
	nav := BuildNav(testIndex(), nil)
	require.Equal(t, "Introduction", nav.Sections[0].Items[0].Title)
	require.Equal(t, "Poisson", nav.Sections[1].Items[0].Title)
}

func TestGenerateSite_WritesNavPagesAndExport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "site")
	g := NewGenerator(&config.Config{}, out)

	require.NoError(t, g.GenerateSite(testIndex(), testCatalog(t)))

	navHTML, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(navHTML), `data-max-depth="3"`)
	require.Contains(t, string(navHTML), `<a href="pages/poisson.html">Poisson equation</a>`)
	require.Contains(t, string(navHTML), `rel="external"`)

	pageHTML, err := os.ReadFile(filepath.Join(out, "pages", "introduction.html"))
	require.NoError(t, err)
	require.Contains(t, string(pageHTML), "<h1>Introduction</h1>")
	require.Contains(t, string(pageHTML), "Welcome.")

	exportYAML, err := os.ReadFile(filepath.Join(out, "nav.yaml"))
	require.NoError(t, err)
	require.Contains(t, string(exportYAML), "nav:")
	require.Contains(t, string(exportYAML), "Poisson equation: poisson.md")
	require.Contains(t, string(exportYAML), "shenfun: https://github.com/spectralDNS/shenfun")
}

func TestGenerateSite_CleanOutput_RemovesPreviousRun(t *testing.T) {
	out := filepath.Join(t.TempDir(), "site")
	require.NoError(t, os.MkdirAll(out, 0o755))
	stale := filepath.Join(out, "stale.html")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	cfg := &config.Config{}
	cfg.Output.Clean = true
	g := NewGenerator(cfg, out)
	require.NoError(t, g.GenerateSite(testIndex(), testCatalog(t)))

	_, err := os.Stat(stale)
	require.True(t, os.IsNotExist(err))
}

func TestExportNav_OrderMatchesDeclaration(t *testing.T) {
	data, err := ExportNav(testIndex(), nil)
	require.NoError(t, err)

	text := string(data)
	require.Less(t, strings.Index(text, "Contents"), strings.Index(text, "Demos"))
	require.Less(t, strings.Index(text, "Poisson"), strings.Index(text, "shenfun"))
}
