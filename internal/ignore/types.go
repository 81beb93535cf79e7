// Package ignore provides file/directory pattern matching for exclusion
package ignore

import (
	"fmt"
	"regexp"

	"github.com/bethropolis/dir-search/internal/utils"
	gitignore "github.com/denormal/go-gitignore"
)

// DefaultIgnoredDirs are always checked before any user supplied rule.
var DefaultIgnoredDirs = []string{`^\.git$`, `^\.tmp$`, `(?i).*thumb.*`}

// DefaultIgnoredFiles is empty; it exists so files go through the same tiers.
var DefaultIgnoredFiles = []string{}

// Verdict says whether, and by which rule tier, an entry was ignored.
type Verdict int

const (
	NotIgnored Verdict = iota
	IgnoredDefault
	IgnoredExact
	IgnoredPattern
	IgnoredGitignore
)

func (v Verdict) String() string {
	switch v {
	case NotIgnored:
		return "not ignored"
	case IgnoredDefault:
		return "default rule"
	case IgnoredExact:
		return "exact rule"
	case IgnoredPattern:
		return "pattern rule"
	case IgnoredGitignore:
		return "gitignore rule"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// Ignored reports whether v excludes the entry.
func (v Verdict) Ignored() bool {
	return v != NotIgnored
}

// PatternError reports a user pattern that failed to compile.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("cannot compile pattern: %s: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// List is a compiled set of name rules: exact names and full-match patterns.
type List struct {
	exact         []string
	patterns      []*regexp.Regexp
	caseSensitive bool
}

// IgnoreMatcher determines whether a file or directory should be ignored
type IgnoreMatcher struct {
	// The core gitignore object handling repository rules
	repoIgnore gitignore.GitIgnore

	defaultDirs  List
	defaultFiles List
	dirs         List
	files        List

	// Configuration flags
	rootDir       string
	caseSensitive bool
	useGitignore  bool
	dirPatterns   []string
	filePatterns  []string
	onWarning     func(error)
	logger        utils.Logger
}

// Config holds configuration options for the ignore matcher
type Config struct {
	RootDir          string
	CaseSensitive    bool
	RespectGitignore bool
	DirPatterns      []string
	FilePatterns     []string
	OnWarning        func(error)
	Logger           utils.Logger
}
