package commands

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sciforge/navbuilder/internal/navindex"
	nerrors "github.com/sciforge/navbuilder/internal/navindex/errors"
)

func writeTestWorkspace(t *testing.T, indexYAML string, pages ...string) (configPath string) {
	t.Helper()
	tmp := t.TempDir()

	docsDir := filepath.Join(tmp, "docs")
	require.NoError(t, os.MkdirAll(docsDir, 0o755))
	for _, id := range pages {
		content := "---\ntitle: " + id + "\n---\n\n# " + id + "\n"
		require.NoError(t, os.WriteFile(filepath.Join(docsDir, id+".md"), []byte(content), 0o644))
	}

	indexPath := filepath.Join(tmp, "navigation.yaml")
	require.NoError(t, os.WriteFile(indexPath, []byte(indexYAML), 0o644))

	configPath = filepath.Join(tmp, "config.yaml")
	cfgYAML := "index: " + indexPath + "\n" +
		"docs:\n  path: " + docsDir + "\n" +
		"output:\n  directory: " + filepath.Join(tmp, "site") + "\n" +
		"history: " + filepath.Join(tmp, "history.db") + "\n" +
		"strict: true\n"
	require.NoError(t, os.WriteFile(configPath, []byte(cfgYAML), 0o644))
	return configPath
}

func TestInitCmd_WritesConfigAndExampleIndex(t *testing.T) {
	tmp := t.TempDir()
	root := &CLI{Config: filepath.Join(tmp, "config.yaml")}
	cmd := &InitCmd{Index: filepath.Join(tmp, "navigation.yaml")}

	require.NoError(t, cmd.Run(root))

	ix, err := navindex.LoadFile(cmd.Index)
	require.NoError(t, err)
	require.Len(t, ix.PageRefs(), 22)
	require.Len(t, ix.Links(), 3)

	// Re-running without --force must refuse to clobber either file.
	require.Error(t, cmd.Run(root))
}

func TestCheckCmd_ValidIndex_Succeeds(t *testing.T) {
	indexYAML := `sections:
  - title: Contents
    max_depth: 2
    entries:
      - page: introduction
      - page: installation
`
	configPath := writeTestWorkspace(t, indexYAML, "introduction", "installation")

	root := &CLI{Config: configPath}
	require.NoError(t, (&CheckCmd{}).Run(root))
}

func TestResolveCmd_MissingPage_FailsStrict(t *testing.T) {
	indexYAML := `sections:
  - title: Contents
    max_depth: 2
    entries:
      - page: introduction
      - page: missing
`
	configPath := writeTestWorkspace(t, indexYAML, "introduction")

	root := &CLI{Config: configPath}
	err := (&ResolveCmd{}).Run(root)
	require.Error(t, err)
	require.True(t, errors.Is(err, nerrors.ErrUnresolvedReference))

	// The same workspace passes once unresolved references are downgraded.
	require.NoError(t, (&ResolveCmd{AllowMissing: true}).Run(root))
}

func TestRenderCmd_ProducesSite(t *testing.T) {
	indexYAML := `sections:
  - title: Contents
    max_depth: 1
    entries:
      - page: introduction
      - link: shenfun
        url: https://github.com/spectralDNS/shenfun
`
	configPath := writeTestWorkspace(t, indexYAML, "introduction")

	root := &CLI{Config: configPath}
	out := filepath.Join(filepath.Dir(configPath), "rendered")
	require.NoError(t, (&RenderCmd{Output: out}).Run(root))

	_, err := os.Stat(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "pages", "introduction.html"))
	require.NoError(t, err)
}
