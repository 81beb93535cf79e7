package ignore

import (
	"fmt"
	"path/filepath"

	"github.com/bethropolis/dir-search/internal/utils"
	gitignore "github.com/denormal/go-gitignore"
)

// New creates and initializes an IgnoreMatcher
func New(rootDir string, opts ...Option) (*IgnoreMatcher, error) {
	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("ignore: failed to get absolute path for rootDir '%s': %w", rootDir, err)
	}

	matcher := &IgnoreMatcher{
		rootDir: absRootDir,
		logger:  &utils.NoopLogger{},
	}

	for _, opt := range opts {
		opt(matcher)
	}

	if err := matcher.init(); err != nil {
		return nil, err
	}

	return matcher, nil
}

// init compiles the rule tiers and loads gitignore files when requested
func (m *IgnoreMatcher) init() error {
	m.logger.Debug("ignore.New: Initializing for root: %s", m.rootDir)

	// Defaults are ours and always valid; their errors would be a programming bug.
	var errs []error
	m.defaultDirs, errs = CompileList(DefaultIgnoredDirs, true)
	if len(errs) > 0 {
		return fmt.Errorf("ignore: default directory rules: %w", errs[0])
	}
	m.defaultFiles, errs = CompileList(DefaultIgnoredFiles, true)
	if len(errs) > 0 {
		return fmt.Errorf("ignore: default file rules: %w", errs[0])
	}

	var dirErrs, fileErrs []error
	m.dirs, dirErrs = CompileList(m.dirPatterns, m.caseSensitive)
	m.files, fileErrs = CompileList(m.filePatterns, m.caseSensitive)
	for _, err := range append(dirErrs, fileErrs...) {
		m.warn(err)
	}
	m.logger.Debug("ignore.New: %d directory rules, %d file rules (caseSensitive=%v)",
		m.dirs.Len(), m.files.Len(), m.caseSensitive)

	if !m.useGitignore {
		return nil
	}

	repoMatcher, repoErr := gitignore.NewRepository(m.rootDir)
	if repoErr != nil {
		m.logger.Warn("ignore.New: Error loading repository ignores from '%s': %v", m.rootDir, repoErr)
		if repoMatcher == nil {
			m.logger.Warn("ignore.New: No .gitignore rules loaded for '%s'. Continuing without them.", m.rootDir)
			repoMatcher = gitignore.New(nil, "", nil)
		} else {
			return fmt.Errorf("ignore: failed to load repository ignores: %w", repoErr)
		}
	}
	m.repoIgnore = repoMatcher
	m.logger.Debug("ignore.New: Loaded repository ignores.")
	return nil
}

func (m *IgnoreMatcher) warn(err error) {
	m.logger.Warn("ignore: %v", err)
	if m.onWarning != nil {
		m.onWarning(err)
	}
}
