package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunManifest records a complete check/render run: its inputs, outcome and
// outputs. Written alongside the rendered site so a consumer can tell what a
// build was produced from.
type RunManifest struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Inputs    Inputs    `json:"inputs"`
	Outcome   Outcome   `json:"outcome"`
	Outputs   Outputs   `json:"outputs,omitempty"`
	Duration  int64     `json:"duration_ms"`
}

// Inputs captures the run inputs.
type Inputs struct {
	IndexPath   string `json:"index_path"`
	IndexHash   string `json:"index_hash"`
	DocsSource  string `json:"docs_source,omitempty"`
	CatalogSize int    `json:"catalog_size"`
}

// Outcome captures validation/resolution results.
type Outcome struct {
	Status     string `json:"status"` // "ok" or "failed"
	PageRefs   int    `json:"page_refs"`
	Links      int    `json:"links"`
	Unresolved int    `json:"unresolved,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Outputs captures what was written.
type Outputs struct {
	SiteDir       string `json:"site_dir,omitempty"`
	RenderedPages int    `json:"rendered_pages,omitempty"`
}

// New creates a manifest with a fresh run ID and timestamp.
func New() *RunManifest {
	return &RunManifest{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
	}
}

// HashContent computes the content hash recorded for run inputs.
func HashContent(data []byte) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum)
}

// ToJSON serializes the manifest to JSON.
func (m *RunManifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// FromJSON deserializes a manifest from JSON.
func FromJSON(data []byte) (*RunManifest, error) {
	var m RunManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}
