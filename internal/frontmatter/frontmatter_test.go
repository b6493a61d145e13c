package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Poisson\n\nSolve it.\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\ntitle: Poisson\n---\n# Demo\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: Poisson\n"), fm)
	require.Equal(t, []byte("# Demo\n"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, _, had, err := Split([]byte("---\ntitle: Poisson\n# Demo\n"))
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_EmptyFrontmatterBlock_SplitsAsHadWithEmptyFrontmatter(t *testing.T) {
	fm, body, had, err := Split([]byte("---\n---\n# Demo\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, fm)
	require.Equal(t, []byte("# Demo\n"), body)
}

func TestParse_ValidYAML_ReturnsMap(t *testing.T) {
	fields, err := Parse([]byte("title: Stokes flow\nweight: 9\n"))
	require.NoError(t, err)
	require.Equal(t, "Stokes flow", fields["title"])
	require.Equal(t, 9, fields["weight"])
}

func TestParse_Empty_ReturnsEmptyMap(t *testing.T) {
	fields, err := Parse(nil)
	require.NoError(t, err)
	require.Empty(t, fields)
}

func TestParse_InvalidYAML_ReturnsError(t *testing.T) {
	_, err := Parse([]byte(": not yaml"))
	require.Error(t, err)
}

func TestTitle_FrontmatterTitle_Found(t *testing.T) {
	title, ok := Title([]byte("---\ntitle: Rayleigh-Benard\n---\nbody\n"))
	require.True(t, ok)
	require.Equal(t, "Rayleigh-Benard", title)
}

func TestTitle_NoFrontmatter_NotFound(t *testing.T) {
	_, ok := Title([]byte("# Heading only\n"))
	require.False(t, ok)
}
