package printer

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/dir-search/internal/search"
)

var sample = []search.Result{
	{RelativePath: "notes", IsDirectory: true},
	{RelativePath: "notes/todo.txt", ContentMatches: []search.ContentMatch{
		{Line: 0, Preview: "call `mom`"},
		{Line: 4},
	}},
}

func newPrinter(buf *bytes.Buffer) *Printer {
	return New().WithOutput(buf).WithColors(false)
}

func TestPrintText(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf)
	require.NoError(t, p.PrintResults(sample))
	require.NoError(t, p.Finalize())

	assert.Equal(t, "notes/\nnotes/todo.txt\n  1: call `mom`\n  5\n", buf.String())
	assert.Equal(t, int64(2), p.GetCount())
}

func TestPrintMarkdown(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf).WithMarkdown(true)
	require.NoError(t, p.PrintResults(sample))
	require.NoError(t, p.Finalize())

	assert.Equal(t, "- `notes/`\n- `notes/todo.txt`\n  - line 1: `call 'mom'`\n  - line 5\n", buf.String())
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf).WithJSON(true)
	require.NoError(t, p.PrintResults(sample))
	require.NoError(t, p.Finalize())

	var decoded []search.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sample, decoded)
	assert.Contains(t, buf.String(), `"is_dir": true`)
}

func TestPrintJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf).WithJSON(true)
	require.NoError(t, p.Finalize())
	assert.Equal(t, "[]\n", buf.String())
}
