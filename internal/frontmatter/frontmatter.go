package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

var delim = []byte("---\n")

// Split separates `---` delimited YAML frontmatter from the Markdown body.
// If the document does not start with a frontmatter delimiter, had is false
// and body is the full input.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	if !bytes.HasPrefix(content, delim) {
		return nil, content, false, nil
	}

	rest := content[len(delim):]
	if bytes.HasPrefix(rest, delim) {
		return []byte{}, rest[len(delim):], true, nil
	}

	closeSeq := []byte("\n---\n")
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	return rest[:idx+1], rest[idx+len(closeSeq):], true, nil
}

// Parse decodes raw YAML frontmatter (without --- delimiters) into a map.
func Parse(frontmatter []byte) (map[string]any, error) {
	if len(frontmatter) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Title extracts the title field from a document's frontmatter, if present.
func Title(content []byte) (string, bool) {
	fm, _, had, err := Split(content)
	if err != nil || !had {
		return "", false
	}
	fields, err := Parse(fm)
	if err != nil {
		return "", false
	}
	if title, ok := fields["title"].(string); ok && title != "" {
		return title, true
	}
	return "", false
}
