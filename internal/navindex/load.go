package navindex

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	nerrors "github.com/sciforge/navbuilder/internal/navindex/errors"
)

// Load parses a declarative navigation index document.
//
// The document is YAML with a single top-level `sections` list; each section
// declares a title, a max_depth rendering hint and an ordered entry list.
// Syntactic problems fail with ErrMalformedIndex; Load performs no invariant
// checking beyond shape (see Validate).
func Load(source []byte) (*Index, error) {
	var ix Index
	if err := yaml.Unmarshal(source, &ix); err != nil {
		// Entry-level failures already carry the sentinel; plain YAML syntax
		// errors get mapped onto it here.
		return nil, fmt.Errorf("%w: %w", nerrors.ErrMalformedIndex, err)
	}

	if len(ix.Sections) == 0 {
		return nil, fmt.Errorf("%w: no sections declared", nerrors.ErrMalformedIndex)
	}
	for _, s := range ix.Sections {
		if s.Title == "" {
			return nil, fmt.Errorf("%w: section without title", nerrors.ErrMalformedIndex)
		}
	}
	return &ix, nil
}

// LoadFile reads and parses the index file at path.
func LoadFile(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", nerrors.ErrIndexNotFound, path)
		}
		return nil, fmt.Errorf("read index %s: %w", path, err)
	}
	ix, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("load index %s: %w", path, err)
	}
	return ix, nil
}

// Render serializes the index back to its declarative document form.
// Render is the inverse of Load: loading the rendered bytes yields an
// equal index (order, depths, labels and URLs preserved).
func Render(ix *Index) ([]byte, error) {
	data, err := yaml.Marshal(ix)
	if err != nil {
		return nil, fmt.Errorf("render index: %w", err)
	}
	return data, nil
}
