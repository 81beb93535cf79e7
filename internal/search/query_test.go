package search

import (
	"errors"
	"regexp/syntax"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/dir-search/internal/ignore"
)

func TestCompileQueryLiteral(t *testing.T) {
	q, err := compileQuery("Foo", PatternLiteral, false)
	require.NoError(t, err)

	start, end, ok := q.match("a food bar")
	require.True(t, ok)
	assert.Equal(t, 2, start)
	assert.Equal(t, 5, end)
	assert.True(t, q.matches("FOO"))

	q, err = compileQuery("Foo", PatternLiteral, true)
	require.NoError(t, err)
	assert.False(t, q.matches("foo"))
	assert.True(t, q.matches("xFooy"))
}

func TestCompileQueryGlob(t *testing.T) {
	q, err := compileQuery("*.md", PatternGlob, false)
	require.NoError(t, err)
	assert.True(t, q.matches("README.MD"))
	assert.False(t, q.matches("readme.md.bak"))
	assert.False(t, q.matches("readmemd"))

	q, err = compileQuery("file?.txt", PatternGlob, true)
	require.NoError(t, err)
	assert.True(t, q.matches("file1.txt"))
	assert.False(t, q.matches("file10.txt"))
	assert.False(t, q.matches("File1.txt"))
}

func TestCompileQueryRegex(t *testing.T) {
	q, err := compileQuery("^note.*", PatternRegex, false)
	require.NoError(t, err)
	assert.True(t, q.matches("Notes.txt"))
	assert.False(t, q.matches("my-notes"))

	// A bare star behaves like ".*".
	q, err = compileQuery("*draft*", PatternRegex, false)
	require.NoError(t, err)
	assert.True(t, q.matches("old-draft-2"))

	start, end, ok := q.match("draft")
	assert.True(t, ok)
	assert.Equal(t, 0, start)
	assert.Equal(t, 5, end)
}

func TestCompileQueryRegexError(t *testing.T) {
	_, err := compileQuery("(", PatternRegex, false)
	require.Error(t, err)

	var perr *ignore.PatternError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "(", perr.Pattern)

	var serr *syntax.Error
	assert.True(t, errors.As(err, &serr))
}

func TestCompileQueryUnknownKind(t *testing.T) {
	_, err := compileQuery("x", PatternKind(42), false)
	assert.Error(t, err)
}

func TestMatchFoldWidthChange(t *testing.T) {
	// "İ" lowercases to a sequence with a different byte length.
	q, err := compileQuery("x", PatternLiteral, false)
	require.NoError(t, err)
	line := "İx"
	start, end, ok := q.match(line)
	require.True(t, ok)
	assert.Equal(t, 0, start)
	assert.Equal(t, len(line), end)
}

func TestPatternKind(t *testing.T) {
	for _, k := range []PatternKind{PatternLiteral, PatternGlob, PatternRegex} {
		parsed, err := ParsePatternKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	_, err := ParsePatternKind("fuzzy")
	assert.Error(t, err)

	assert.Equal(t, PatternRegex, DetectPatternKind("^todo"))
	assert.Equal(t, PatternRegex, DetectPatternKind("*.md"))
	assert.Equal(t, PatternLiteral, DetectPatternKind("todo.md"))
}
