package navindex

import (
	"fmt"

	"gopkg.in/yaml.v3"

	nerrors "github.com/sciforge/navbuilder/internal/navindex/errors"
)

// Index is the whole navigation declaration for a documentation set.
//
// An Index is constructed once by Load (or authored in code for tests) and is
// never mutated afterwards: the load/validate/resolve pass treats it as a
// frozen value.
type Index struct {
	Sections []Section `yaml:"sections"`
}

// Section is a named, ordered group of navigation entries with a rendering
// depth hint. Entry order is authoritative and preserved on round-trip.
type Section struct {
	Title    string  `yaml:"title"`
	MaxDepth int     `yaml:"max_depth"`
	Entries  []Entry `yaml:"entries"`
}

// Entry is one navigation entry: either a page reference (an identifier the
// documentation builder resolves to a content file) or an external link
// target (label + URL, embedded as a hyperlink definition, never resolved
// against local content). Exactly one of the two shapes is set.
type Entry struct {
	Page  string
	Label string
	URL   string
}

// IsLink reports whether the entry is an external link target.
func (e Entry) IsLink() bool { return e.Label != "" }

// UnmarshalYAML decodes the declarative entry shape:
//
//	- page: introduction
//	- link: shenfun
//	  url: https://github.com/spectralDNS/shenfun
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: entry at line %d is not a mapping", nerrors.ErrMalformedIndex, node.Line)
	}

	var raw struct {
		Page string `yaml:"page"`
		Link string `yaml:"link"`
		URL  string `yaml:"url"`
	}
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("%w: entry at line %d: %w", nerrors.ErrMalformedIndex, node.Line, err)
	}

	switch {
	case raw.Page != "" && raw.Link != "":
		return fmt.Errorf("%w: entry at line %d declares both page and link", nerrors.ErrMalformedIndex, node.Line)
	case raw.Page != "":
		if raw.URL != "" {
			return fmt.Errorf("%w: page entry %q at line %d carries a url", nerrors.ErrMalformedIndex, raw.Page, node.Line)
		}
		e.Page = raw.Page
	case raw.Link != "":
		if raw.URL == "" {
			return fmt.Errorf("%w: link entry %q at line %d is missing url", nerrors.ErrMalformedIndex, raw.Link, node.Line)
		}
		e.Label = raw.Link
		e.URL = raw.URL
	default:
		return fmt.Errorf("%w: entry at line %d declares neither page nor link", nerrors.ErrMalformedIndex, node.Line)
	}
	return nil
}

// MarshalYAML emits the same declarative shape Load consumes, so
// Load(Render(ix)) reproduces ix.
func (e Entry) MarshalYAML() (any, error) {
	if e.IsLink() {
		return struct {
			Link string `yaml:"link"`
			URL  string `yaml:"url"`
		}{Link: e.Label, URL: e.URL}, nil
	}
	return struct {
		Page string `yaml:"page"`
	}{Page: e.Page}, nil
}

// PageRefs returns the page reference identifiers of all sections in
// declaration order.
func (ix *Index) PageRefs() []string {
	var refs []string
	for _, s := range ix.Sections {
		for _, e := range s.Entries {
			if !e.IsLink() {
				refs = append(refs, e.Page)
			}
		}
	}
	return refs
}

// Links returns the external link targets of all sections in declaration order.
func (ix *Index) Links() []Entry {
	var links []Entry
	for _, s := range ix.Sections {
		for _, e := range s.Entries {
			if e.IsLink() {
				links = append(links, e)
			}
		}
	}
	return links
}

// Section returns the section with the given title, or nil.
func (ix *Index) Section(title string) *Section {
	for i := range ix.Sections {
		if ix.Sections[i].Title == title {
			return &ix.Sections[i]
		}
	}
	return nil
}
