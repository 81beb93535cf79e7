// Package fsys is the filesystem collaborator used by the search engine.
//
// Every operation reports failure through an explicit ok result instead of an
// error: the engine skips entries it cannot stat, list or read, so there is
// nothing for it to do with the error value beyond branching on it.
package fsys

import "iter"

// FileSystem is the set of operations the search engine needs.
type FileSystem interface {
	// IsDir reports whether path names a directory (symlinks followed).
	IsDir(path string) bool
	// CanRead reports whether path can be opened for reading.
	CanRead(path string) bool
	// ListChildren returns the full paths of the direct children of path,
	// in the order the underlying filesystem lists them.
	ListChildren(path string) ([]string, bool)
	// CanonicalPath returns the absolute, symlink-free form of path.
	CanonicalPath(path string) (string, bool)
	// ReadLines returns a lazy sequence over the lines of path without
	// their line terminators. Breaking out of the loop releases the file.
	ReadLines(path string) (iter.Seq[string], bool)
	// IsBinary reports whether the head of path looks like binary content.
	IsBinary(path string) bool
}
