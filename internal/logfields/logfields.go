package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeySection    = "section"
	KeyPage       = "page"
	KeyLabel      = "label"
	KeyURL        = "url"
	KeyPath       = "path"
	KeyIndex      = "index"
	KeyCatalog    = "catalog"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
	KeyCount      = "count"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Section(s string) slog.Attr      { return slog.String(KeySection, s) }
func Page(id string) slog.Attr        { return slog.String(KeyPage, id) }
func Label(l string) slog.Attr        { return slog.String(KeyLabel, l) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func IndexFile(p string) slog.Attr    { return slog.String(KeyIndex, p) }
func CatalogDir(p string) slog.Attr   { return slog.String(KeyCatalog, p) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
