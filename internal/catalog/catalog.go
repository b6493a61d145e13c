package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sciforge/navbuilder/internal/frontmatter"
	"github.com/sciforge/navbuilder/internal/logfields"
	"github.com/sciforge/navbuilder/internal/util/sets"
)

var (
	// ErrDocsDirNotFound indicates the configured docs directory does not exist.
	ErrDocsDirNotFound = errors.New("docs directory not found")

	// ErrWalkFailed indicates filesystem traversal of the docs directory failed.
	ErrWalkFailed = errors.New("docs directory walk failed")
)

// Page is one discovered content page.
type Page struct {
	ID           string // identifier the navigation index refers to (basename without extension)
	Title        string // display title from frontmatter or first heading, empty if none
	Path         string // absolute path
	RelativePath string // path relative to the docs directory
}

// Catalog is the set of content pages available to the documentation builder.
// Built once per invocation by Discover; read-only afterwards.
type Catalog struct {
	docsDir string
	pages   []Page
	byID    map[string]Page
}

// markdownExtensions lists the file extensions treated as content pages.
var markdownExtensions = sets.New(".md", ".markdown")

// Discover walks docsDir and builds the catalog of content pages.
// Hidden files and directories are skipped.
func Discover(docsDir string) (*Catalog, error) {
	info, err := os.Stat(docsDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDocsDirNotFound, docsDir)
	}

	c := &Catalog{docsDir: docsDir, byID: make(map[string]Page)}

	err = filepath.WalkDir(docsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if strings.HasPrefix(name, ".") && path != docsDir {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(name))
		if !markdownExtensions.Has(ext) {
			return nil
		}

		rel, relErr := filepath.Rel(docsDir, path)
		if relErr != nil {
			return relErr
		}

		page := Page{
			ID:           strings.TrimSuffix(name, filepath.Ext(name)),
			Path:         path,
			RelativePath: rel,
		}
		page.Title = extractTitle(path)

		if prev, seen := c.byID[page.ID]; seen {
			slog.Warn("Duplicate content page id, keeping first occurrence",
				logfields.Page(page.ID),
				logfields.Path(rel),
				slog.String("kept", prev.RelativePath))
			return nil
		}

		c.pages = append(c.pages, page)
		c.byID[page.ID] = page
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWalkFailed, docsDir, err)
	}

	slog.Debug("Content catalog discovered", logfields.CatalogDir(docsDir), logfields.Count(len(c.pages)))
	return c, nil
}

// IDs returns the set of page identifiers, the shape navindex.Resolve expects.
func (c *Catalog) IDs() sets.Set[string] {
	ids := make(sets.Set[string], len(c.byID))
	for id := range c.byID {
		ids.Add(id)
	}
	return ids
}

// Pages returns the discovered pages in walk order.
func (c *Catalog) Pages() []Page {
	out := make([]Page, len(c.pages))
	copy(out, c.pages)
	return out
}

// Lookup returns the page for an identifier.
func (c *Catalog) Lookup(id string) (Page, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Len returns the number of catalog pages.
func (c *Catalog) Len() int { return len(c.pages) }

// DocsDir returns the directory the catalog was discovered from.
func (c *Catalog) DocsDir() string { return c.docsDir }

// extractTitle reads the page and pulls a display title from frontmatter,
// falling back to the first markdown heading. Failures are non-fatal: a page
// without a readable title still resolves.
func extractTitle(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("Failed to read content page for title extraction", logfields.Path(path), logfields.Error(err))
		return ""
	}

	if title, ok := frontmatter.Title(content); ok {
		return title
	}

	_, body, _, err := frontmatter.Split(content)
	if err != nil {
		body = content
	}
	return firstHeading(body)
}
