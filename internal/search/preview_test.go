package search

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestPreviewShortLineUnchanged(t *testing.T) {
	line := "a short line with needle"
	assert.Equal(t, line, preview(line, 18, 24))
}

func TestPreviewLongLineWindow(t *testing.T) {
	line := strings.Repeat("a", 200) + "needle" + strings.Repeat("b", 200)
	got := preview(line, 200, 206)

	assert.True(t, strings.HasPrefix(got, "… "))
	assert.True(t, strings.HasSuffix(got, " …"))
	inner := strings.TrimSuffix(strings.TrimPrefix(got, "… "), " …")
	assert.Contains(t, inner, "needle")
	assert.LessOrEqual(t, utf8.RuneCountInString(inner), MaxPreviewLength)

	// Window is centred on the match.
	i := strings.Index(inner, "needle")
	assert.InDelta(t, i, len(inner)-i-len("needle"), 1)
}

func TestPreviewMatchNearStart(t *testing.T) {
	line := "needle" + strings.Repeat("x", 300)
	inner := strings.TrimSuffix(strings.TrimPrefix(preview(line, 0, 6), "… "), " …")
	assert.True(t, strings.HasPrefix(inner, "needle"))
}

func TestPreviewMultibyte(t *testing.T) {
	line := strings.Repeat("é", 150) + "ü" + strings.Repeat("é", 150)
	start := len(strings.Repeat("é", 150))
	got := preview(line, start, start+len("ü"))
	assert.True(t, utf8.ValidString(got))
	assert.Contains(t, got, "ü")
}

func TestPreviewMatchWiderThanBudget(t *testing.T) {
	line := strings.Repeat("z", 500)
	got := preview(line, 0, len(line))
	inner := strings.TrimSuffix(strings.TrimPrefix(got, "… "), " …")
	assert.Equal(t, MaxPreviewLength, utf8.RuneCountInString(inner))
}
