// Package ignore provides file/directory pattern matching for exclusion
//
// Rules are checked in tiers: the built-in defaults (.git, .tmp and any
// thumbnail directory), then the user's exact names, then the user's
// patterns, and finally, when enabled, .gitignore files under the root.
// A user list entry that starts with a double quote is an exact name; any
// other entry is a pattern matched against the whole base name, with bare
// '*' read as ".*". It uses the functional options pattern for configuration.
package ignore

// NewFromConfig creates an IgnoreMatcher from a Config struct
func NewFromConfig(cfg Config) (*IgnoreMatcher, error) {
	options := []Option{
		WithCaseSensitive(cfg.CaseSensitive),
		WithGitignore(cfg.RespectGitignore),
		WithDirPatterns(cfg.DirPatterns),
		WithFilePatterns(cfg.FilePatterns),
	}

	if cfg.OnWarning != nil {
		options = append(options, WithWarningHandler(cfg.OnWarning))
	}

	if cfg.Logger != nil {
		options = append(options, WithLogger(cfg.Logger))
	}

	return New(cfg.RootDir, options...)
}
