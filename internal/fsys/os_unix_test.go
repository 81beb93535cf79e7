//go:build unix

package fsys

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestOSFifoIsNeverOpened(t *testing.T) {
	dir := t.TempDir()
	pipe := filepath.Join(dir, "pipe")
	require.NoError(t, unix.Mkfifo(pipe, 0o644))

	fs := NewOS()
	opened := false
	fs.open = func(string) (io.ReadCloser, error) {
		opened = true
		return nil, unix.EAGAIN
	}

	assert.False(t, fs.CanRead(pipe))
	assert.False(t, fs.IsDir(pipe))
	_, ok := fs.ReadLines(pipe)
	assert.False(t, ok)
	assert.False(t, fs.IsBinary(pipe))
	assert.False(t, opened)
}

func TestOSCanReadUsesAccess(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	writeFile(t, file, "a")

	fs := NewOS()
	assert.True(t, fs.CanRead(file))
	assert.True(t, fs.CanRead(dir))
}
