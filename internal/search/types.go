// Package search implements a cancellable breadth-first directory search
package search

import (
	"fmt"
	"strings"
	"sync"
)

// PatternKind selects how Config.Query is interpreted.
type PatternKind int

const (
	// PatternLiteral matches by substring containment.
	PatternLiteral PatternKind = iota
	// PatternGlob matches the whole name/line; '*' is any run, '?' any rune.
	PatternGlob
	// PatternRegex matches the whole name/line against a regular expression.
	// Bare '*' is first rewritten to ".*".
	PatternRegex
)

func (k PatternKind) String() string {
	switch k {
	case PatternLiteral:
		return "literal"
	case PatternGlob:
		return "glob"
	case PatternRegex:
		return "regex"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParsePatternKind parses "literal", "glob" or "regex".
func ParsePatternKind(s string) (PatternKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "literal", "text", "":
		return PatternLiteral, nil
	case "glob":
		return PatternGlob, nil
	case "regex", "regexp":
		return PatternRegex, nil
	default:
		return PatternLiteral, fmt.Errorf("search: unknown pattern kind %q", s)
	}
}

// DetectPatternKind guesses the kind from the shape of query: a leading '^'
// or any '*' means regex, everything else is literal.
func DetectPatternKind(query string) PatternKind {
	if strings.HasPrefix(query, "^") || strings.Contains(query, "*") {
		return PatternRegex
	}
	return PatternLiteral
}

// Config describes one search. It is read once by Start and never mutated.
type Config struct {
	RootDir string
	Query   string
	Kind    PatternKind

	CaseSensitive         bool
	SearchInContent       bool
	OnlyFirstContentMatch bool
	ShowMatchPreview      bool

	// MaxSearchDepth bounds how many separators a result path may contain.
	// Zero searches only the root's immediate children; negative is unbounded.
	MaxSearchDepth int

	IgnoredDirectories []string
	IgnoredFiles       []string

	// ContentSearchExtensions limits which files are opened in content mode.
	// Entries use the ignore list syntax; empty means every file.
	ContentSearchExtensions []string

	// ShowResultsOnCancel keeps results gathered before a cancel (soft cancel).
	ShowResultsOnCancel bool

	RespectGitignore bool
	SkipBinaryFiles  bool
}

// ContentMatch is one matching line of a file.
type ContentMatch struct {
	Line    int    `json:"line"`
	Preview string `json:"preview,omitempty"`
}

// Result is a matching file or directory.
type Result struct {
	RelativePath   string         `json:"path"`
	IsDirectory    bool           `json:"is_dir"`
	ContentMatches []ContentMatch `json:"matches,omitempty"`
}

// ProgressStats is a snapshot reported while the search runs.
type ProgressStats struct {
	QueueLength  int   // Directories waiting, including the current one
	Depth        int   // Depth of the directory being processed
	Matches      int   // Results so far
	FilesChecked int64 // Children inspected so far
}

// Outcome is the terminal state of a search.
type Outcome struct {
	Results   []Result
	Cancelled bool
	Stats     ProgressStats
}

// SkippedReason clarifies why a file/directory was not processed.
type SkippedReason string

const (
	ReasonIgnoredDefault    SkippedReason = "Ignored (Default Rule)"
	ReasonIgnoredRule       SkippedReason = "Ignored (Exact/Pattern Rule)"
	ReasonIgnoredGitignore  SkippedReason = "Ignored (Gitignore Rule)"
	ReasonFilteredExtension SkippedReason = "Filtered (Extension Mismatch)"
	ReasonSkippedBinary     SkippedReason = "Skipped (Binary Content)"
	ReasonSkippedUnreadable SkippedReason = "Skipped (Unreadable)"
	ReasonSkippedSymlink    SkippedReason = "Skipped (Symlink Escape)"
	ReasonSkippedDepth      SkippedReason = "Skipped (Depth Limit)"
)

// SkippedItem holds information about a skipped path.
type SkippedItem struct {
	Path   string        `json:"path"`
	Reason SkippedReason `json:"reason"`
	IsDir  bool          `json:"is_dir"`
}

// SkippedTracker is a struct to track skipped items
type SkippedTracker struct {
	items []SkippedItem
	mutex sync.Mutex
}

// NewSkippedTracker creates a new SkippedTracker
func NewSkippedTracker(capacity int) *SkippedTracker {
	return &SkippedTracker{
		items: make([]SkippedItem, 0, capacity),
	}
}

// Track adds a skipped item to the tracker
func (st *SkippedTracker) Track(path string, reason SkippedReason, isDir bool) {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	st.items = append(st.items, SkippedItem{Path: path, Reason: reason, IsDir: isDir})
}

// Items returns a copy of the tracked skipped items
func (st *SkippedTracker) Items() []SkippedItem {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	out := make([]SkippedItem, len(st.items))
	copy(out, st.items)
	return out
}
