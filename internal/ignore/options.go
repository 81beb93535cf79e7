package ignore

import "github.com/bethropolis/dir-search/internal/utils"

// Option functions for configuration
type Option func(*IgnoreMatcher)

// WithCaseSensitive controls whether names are compared case-sensitively.
func WithCaseSensitive(sensitive bool) Option {
	return func(m *IgnoreMatcher) {
		m.caseSensitive = sensitive
	}
}

// WithGitignore also consults .gitignore files found below the root.
func WithGitignore(enabled bool) Option {
	return func(m *IgnoreMatcher) {
		m.useGitignore = enabled
	}
}

// WithDirPatterns sets the user directory ignore list.
func WithDirPatterns(patterns []string) Option {
	return func(m *IgnoreMatcher) {
		m.dirPatterns = patterns
	}
}

// WithFilePatterns sets the user file ignore list.
func WithFilePatterns(patterns []string) Option {
	return func(m *IgnoreMatcher) {
		m.filePatterns = patterns
	}
}

// WithWarningHandler receives one call per pattern that failed to compile.
func WithWarningHandler(fn func(error)) Option {
	return func(m *IgnoreMatcher) {
		m.onWarning = fn
	}
}

func WithLogger(logger utils.Logger) Option {
	return func(m *IgnoreMatcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

