package render

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sciforge/navbuilder/internal/catalog"
	"github.com/sciforge/navbuilder/internal/navindex"
)

// navExport is the generator-facing handoff format: an mkdocs-style `nav`
// list consumed by the external documentation builder. One-way: nothing is
// read back.
type navExport struct {
	Nav []map[string][]map[string]string `yaml:"nav"`
}

// ExportNav builds the mkdocs-style nav document for the index.
func ExportNav(ix *navindex.Index, cat *catalog.Catalog) ([]byte, error) {
	export := navExport{}
	for _, s := range ix.Sections {
		items := make([]map[string]string, 0, len(s.Entries))
		for _, e := range s.Entries {
			if e.IsLink() {
				items = append(items, map[string]string{e.Label: e.URL})
				continue
			}
			title := ""
			if cat != nil {
				if page, ok := cat.Lookup(e.Page); ok {
					title = page.Title
				}
			}
			if title == "" {
				title = DisplayTitle(e.Page)
			}
			items = append(items, map[string]string{title: e.Page + ".md"})
		}
		export.Nav = append(export.Nav, map[string][]map[string]string{s.Title: items})
	}

	data, err := yaml.Marshal(&export)
	if err != nil {
		return nil, fmt.Errorf("marshal nav export: %w", err)
	}
	return data, nil
}

func (g *Generator) writeNavExport(ix *navindex.Index, cat *catalog.Catalog) error {
	data, err := ExportNav(ix, cat)
	if err != nil {
		return err
	}
	path := filepath.Join(g.outputDir, "nav.yaml")
	// #nosec G306 -- generated export is public content
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write nav export %s: %w", path, err)
	}
	return nil
}
