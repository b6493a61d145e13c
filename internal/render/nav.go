package render

import (
	"github.com/sciforge/navbuilder/internal/catalog"
	"github.com/sciforge/navbuilder/internal/navindex"
)

// Item is one rendered navigation item.
type Item struct {
	Title    string
	Href     string
	External bool
}

// SectionView is a rendered navigation section.
type SectionView struct {
	Title    string
	MaxDepth int
	Items    []Item
}

// NavModel is the render-facing projection of a validated index: declaration
// order preserved, page identifiers joined with catalog titles, link targets
// passed through as external hrefs.
type NavModel struct {
	Sections []SectionView
}

// BuildNav projects the index onto the navigation model. cat may be nil when
// no catalog was discovered; page titles then fall back to derived ones.
func BuildNav(ix *navindex.Index, cat *catalog.Catalog) *NavModel {
	model := &NavModel{}
	for _, s := range ix.Sections {
		view := SectionView{Title: s.Title, MaxDepth: s.MaxDepth}
		for _, e := range s.Entries {
			if e.IsLink() {
				view.Items = append(view.Items, Item{Title: e.Label, Href: e.URL, External: true})
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
			view.Items = append(view.Items, Item{Title: title, Href: "pages/" + e.Page + ".html"})
		}
		model.Sections = append(model.Sections, view)
	}
	return model
}
