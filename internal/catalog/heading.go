package catalog

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// firstHeading parses a Markdown body and returns the text of the first
// heading, or the empty string when the document has none.
func firstHeading(body []byte) string {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	var title string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if h, ok := n.(*gmast.Heading); ok {
			title = string(headingText(h, body))
			return gmast.WalkStop, nil
		}
		return gmast.WalkContinue, nil
	})
	return strings.TrimSpace(title)
}

// headingText concatenates the literal text segments under a heading node.
func headingText(h *gmast.Heading, source []byte) []byte {
	var out []byte
	for child := h.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*gmast.Text); ok {
			out = append(out, t.Segment.Value(source)...)
			continue
		}
		// Inline code, emphasis etc. still carry text children.
		_ = gmast.Walk(child, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
			if entering {
				if t, ok := n.(*gmast.Text); ok {
					out = append(out, t.Segment.Value(source)...)
				}
			}
			return gmast.WalkContinue, nil
		})
	}
	return out
}
