package navindex

import (
	"errors"
	"fmt"

	nerrors "github.com/sciforge/navbuilder/internal/navindex/errors"
	"github.com/sciforge/navbuilder/internal/util/sets"
)

// Validate checks the index invariants:
//
//   - page identifiers are unique within their enclosing section
//   - link labels are unique across the whole index (labels double as anchors)
//   - every section max_depth is a positive integer
//
// All violations are reported, joined into a single error. Validate does not
// touch the index, so re-validating an already valid index is a no-op.
func Validate(ix *Index) error {
	var errs []error

	globalLabels := sets.New[string]()
	for _, s := range ix.Sections {
		if s.MaxDepth < 1 {
			errs = append(errs, fmt.Errorf("%w: section %q declares max_depth %d",
				nerrors.ErrInvalidDepth, s.Title, s.MaxDepth))
		}

		sectionPages := sets.New[string]()
		for _, e := range s.Entries {
			if e.IsLink() {
				if globalLabels.Has(e.Label) {
					errs = append(errs, fmt.Errorf("%w: link label %q declared more than once",
						nerrors.ErrDuplicateEntry, e.Label))
					continue
				}
				globalLabels.Add(e.Label)
				continue
			}
			if sectionPages.Has(e.Page) {
				errs = append(errs, fmt.Errorf("%w: page %q declared more than once in section %q",
					nerrors.ErrDuplicateEntry, e.Page, s.Title))
				continue
			}
			sectionPages.Add(e.Page)
		}
	}

	return errors.Join(errs...)
}

// Resolve confirms every page reference exists in the supplied content
// catalog. Each dangling reference is reported with ErrUnresolvedReference
// naming the missing identifier; findings are joined into a single error.
func Resolve(ix *Index, catalog sets.Set[string]) error {
	var errs []error
	for _, s := range ix.Sections {
		for _, e := range s.Entries {
			if e.IsLink() {
				continue
			}
			if !catalog.Has(e.Page) {
				errs = append(errs, fmt.Errorf("%w: %q (section %q) has no matching content page",
					nerrors.ErrUnresolvedReference, e.Page, s.Title))
			}
		}
	}
	return errors.Join(errs...)
}
