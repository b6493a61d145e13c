package render

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"

	"github.com/sciforge/navbuilder/internal/catalog"
	"github.com/sciforge/navbuilder/internal/config"
	"github.com/sciforge/navbuilder/internal/frontmatter"
	"github.com/sciforge/navbuilder/internal/logfields"
	"github.com/sciforge/navbuilder/internal/navindex"
)

// Generator renders a validated index into a navigable output directory:
// an index.html navigation page, one HTML page per resolvable page reference
// and a generator-facing nav export (nav.yaml).
type Generator struct {
	cfg       *config.Config
	outputDir string
	md        goldmark.Markdown
}

// NewGenerator creates a generator writing to outputDir.
func NewGenerator(cfg *config.Config, outputDir string) *Generator {
	return &Generator{
		cfg:       cfg,
		outputDir: outputDir,
		md:        goldmark.New(),
	}
}

const navTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Documentation</title></head>
<body>
<nav>
{{- range .Sections}}
  <section data-max-depth="{{.MaxDepth}}">
    <h2>{{.Title}}</h2>
    <ul>
{{- range .Items}}
      <li><a href="{{.Href}}"{{if .External}} rel="external"{{end}}>{{.Title}}</a></li>
{{- end}}
    </ul>
  </section>
{{- end}}
</nav>
</body>
</html>
`

const pageTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<p><a href="../index.html">Index</a></p>
<article>
{{.Body}}
</article>
</body>
</html>
`

// GenerateSite writes the full output tree. The catalog may be nil, in which
// case only the navigation page and nav export are produced.
func (g *Generator) GenerateSite(ix *navindex.Index, cat *catalog.Catalog) error {
	if g.cfg != nil && g.cfg.Output.Clean {
		if err := os.RemoveAll(g.outputDir); err != nil {
			return fmt.Errorf("clean output directory: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Join(g.outputDir, "pages"), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	nav := BuildNav(ix, cat)
	if err := g.writeNavPage(nav); err != nil {
		return err
	}
	if err := g.writeNavExport(ix, cat); err != nil {
		return err
	}
	if cat != nil {
		if err := g.writePages(ix, cat); err != nil {
			return err
		}
	}

	slog.Info("Site generated", logfields.Path(g.outputDir))
	return nil
}

func (g *Generator) writeNavPage(nav *NavModel) error {
	tpl, err := template.New("nav").Parse(navTemplate)
	if err != nil {
		return fmt.Errorf("parse nav template: %w", err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, nav); err != nil {
		return fmt.Errorf("exec nav template: %w", err)
	}

	path := filepath.Join(g.outputDir, "index.html")
	// #nosec G306 -- generated pages are public content
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write navigation page %s: %w", path, err)
	}
	slog.Debug("Generated navigation page", logfields.Path(path))
	return nil
}

func (g *Generator) writePages(ix *navindex.Index, cat *catalog.Catalog) error {
	tpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return fmt.Errorf("parse page template: %w", err)
	}

	for _, id := range ix.PageRefs() {
		page, ok := cat.Lookup(id)
		if !ok {
			// Resolve failures are reported before rendering; a missing page
			// here means the caller chose to continue.
			slog.Warn("Skipping unresolved page", logfields.Page(id))
			continue
		}

		content, err := os.ReadFile(page.Path)
		if err != nil {
			return fmt.Errorf("read page %s: %w", page.Path, err)
		}
		_, body, _, fmErr := frontmatter.Split(content)
		if fmErr != nil {
			body = content
		}

		var rendered bytes.Buffer
		if err := g.md.Convert(body, &rendered); err != nil {
			return fmt.Errorf("convert page %s: %w", id, err)
		}

		title := page.Title
		if title == "" {
			title = DisplayTitle(id)
		}

		var buf bytes.Buffer
		data := struct {
			Title string
			Body  template.HTML
		}{Title: title, Body: template.HTML(rendered.String())} // #nosec G203 -- goldmark output of trusted docs
		if err := tpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("exec page template for %s: %w", id, err)
		}

		path := filepath.Join(g.outputDir, "pages", id+".html")
		// #nosec G306 -- generated pages are public content
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write page %s: %w", path, err)
		}
	}
	return nil
}
