package fsys

import (
	"bufio"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultBinarySampleSize is how many leading bytes IsBinary inspects.
	DefaultBinarySampleSize = 8000

	initialLineBuffer = 64 * 1024
	maxLineLength     = 10 * 1024 * 1024
)

var _ FileSystem = (*OS)(nil)

// OS implements FileSystem using the local OS filesystem.
type OS struct {
	// BinarySampleSize overrides DefaultBinarySampleSize when positive.
	BinarySampleSize int

	// Internal syscall wrappers for testability
	open     func(name string) (io.ReadCloser, error)
	stat     func(name string) (os.FileInfo, error)
	readDir  func(name string) ([]os.DirEntry, error)
	evalLink func(path string) (string, error)
	access   func(path string) error
}

// NewOS creates an OS filesystem backed by real syscalls.
func NewOS() *OS {
	return &OS{
		open: func(name string) (io.ReadCloser, error) {
			return os.Open(name)
		},
		stat:     os.Stat,
		readDir:  os.ReadDir,
		evalLink: filepath.EvalSymlinks,
		access:   readable,
	}
}

// IsDir reports whether path is a directory.
func (o *OS) IsDir(path string) bool {
	info, err := o.stat(path)
	return err == nil && info.IsDir()
}

// CanRead reports whether path is a regular file or directory the process
// may read. Nothing is opened: opening a FIFO or device can block forever.
func (o *OS) CanRead(path string) bool {
	info, err := o.stat(path)
	if err != nil || !(info.Mode().IsRegular() || info.IsDir()) {
		return false
	}
	return o.access(path) == nil
}

func (o *OS) isRegular(path string) bool {
	info, err := o.stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ListChildren lists the direct children of path.
func (o *OS) ListChildren(path string) ([]string, bool) {
	entries, err := o.readDir(path)
	if err != nil {
		return nil, false
	}
	children := make([]string, 0, len(entries))
	for _, e := range entries {
		children = append(children, filepath.Join(path, e.Name()))
	}
	return children, true
}

// CanonicalPath resolves path to an absolute path with all symlinks evaluated.
func (o *OS) CanonicalPath(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	resolved, err := o.evalLink(abs)
	if err != nil {
		return "", false
	}
	return filepath.Clean(resolved), true
}

// ReadLines streams the lines of a regular file. The file is opened eagerly
// so that an unreadable file reports ok=false, and closed when iteration ends.
func (o *OS) ReadLines(path string) (iter.Seq[string], bool) {
	if !o.isRegular(path) {
		return nil, false
	}
	f, err := o.open(path)
	if err != nil {
		return nil, false
	}
	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, initialLineBuffer), maxLineLength)
		for scanner.Scan() {
			if !yield(strings.TrimSuffix(scanner.Text(), "\r")) {
				return
			}
		}
		// A scan error (e.g. over-long line) simply ends the sequence.
	}, true
}

// IsBinary samples the head of path and reports whether it contains a NUL byte.
func (o *OS) IsBinary(path string) bool {
	if !o.isRegular(path) {
		return false
	}
	f, err := o.open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	size := o.BinarySampleSize
	if size <= 0 {
		size = DefaultBinarySampleSize
	}
	buf := make([]byte, size)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return false
	}
	return IsBinaryContent(buf[:n])
}

// IsBinaryContent checks content for null bytes, treating UTF-16 and UTF-32
// byte order marks as text.
func IsBinaryContent(content []byte) bool {
	if len(content) >= 2 {
		if (content[0] == 0xFF && content[1] == 0xFE) ||
			(content[0] == 0xFE && content[1] == 0xFF) {
			return false
		}
	}
	if len(content) >= 4 {
		if content[0] == 0x00 && content[1] == 0x00 && content[2] == 0xFE && content[3] == 0xFF {
			return false
		}
	}
	for _, b := range content {
		if b == 0 {
			return true
		}
	}
	return false
}
