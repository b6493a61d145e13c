package render

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// DisplayTitle derives a human-readable title from a page identifier when the
// catalog has none: separators become spaces and words are title-cased.
func DisplayTitle(id string) string {
	s := strings.ReplaceAll(id, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.TrimSpace(s)
	if s == "" {
		return id
	}
	return titleCaser.String(s)
}
