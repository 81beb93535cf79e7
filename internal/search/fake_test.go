package search

import (
	"iter"
	"path/filepath"
	"strings"
	"sync"
)

// fakeNode is one entry of fakeFS.
type fakeNode struct {
	isDir      bool
	content    string
	unreadable bool
	canonical  string // overrides the node's own path when set
	children   []string
}

// fakeFS is an in-memory FileSystem with deterministic listing order and
// hooks for simulating symlinks and cancelling mid-walk.
type fakeFS struct {
	mu     sync.Mutex
	nodes  map[string]*fakeNode
	onList func(path string)
	opened []string
}

func newFakeFS(root string) *fakeFS {
	f := &fakeFS{nodes: map[string]*fakeNode{}}
	f.nodes[root] = &fakeNode{isDir: true}
	return f
}

func (f *fakeFS) attach(path string, n *fakeNode) {
	parent := filepath.Dir(path)
	if _, ok := f.nodes[parent]; !ok {
		f.dir(parent)
	}
	f.nodes[parent].children = append(f.nodes[parent].children, path)
	f.nodes[path] = n
}

func (f *fakeFS) dir(path string) *fakeNode {
	if n, ok := f.nodes[path]; ok {
		return n
	}
	n := &fakeNode{isDir: true}
	f.attach(path, n)
	return n
}

func (f *fakeFS) file(path, content string) *fakeNode {
	n := &fakeNode{content: content}
	f.attach(path, n)
	return n
}

func (f *fakeFS) IsDir(path string) bool {
	n, ok := f.nodes[path]
	return ok && n.isDir
}

func (f *fakeFS) CanRead(path string) bool {
	n, ok := f.nodes[path]
	return ok && !n.unreadable
}

func (f *fakeFS) ListChildren(path string) ([]string, bool) {
	if f.onList != nil {
		f.onList(path)
	}
	n, ok := f.nodes[path]
	if !ok || !n.isDir || n.unreadable {
		return nil, false
	}
	return append([]string(nil), n.children...), true
}

func (f *fakeFS) CanonicalPath(path string) (string, bool) {
	n, ok := f.nodes[path]
	if !ok {
		return "", false
	}
	if n.canonical != "" {
		return n.canonical, true
	}
	return path, true
}

func (f *fakeFS) ReadLines(path string) (iter.Seq[string], bool) {
	n, ok := f.nodes[path]
	if !ok || n.isDir || n.unreadable {
		return nil, false
	}
	f.mu.Lock()
	f.opened = append(f.opened, path)
	f.mu.Unlock()
	lines := strings.Split(strings.TrimSuffix(n.content, "\n"), "\n")
	if n.content == "" {
		lines = nil
	}
	return func(yield func(string) bool) {
		for _, l := range lines {
			if !yield(l) {
				return
			}
		}
	}, true
}

func (f *fakeFS) IsBinary(path string) bool {
	n, ok := f.nodes[path]
	return ok && strings.ContainsRune(n.content, 0)
}

func (f *fakeFS) openedFiles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.opened...)
}
