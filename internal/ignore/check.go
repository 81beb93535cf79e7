package ignore

import (
	"path"
	"path/filepath"
)

// Check classifies an entry by its path relative to the root. Tiers run in
// order defaults, exact, pattern, gitignore; the first hit wins.
func (m *IgnoreMatcher) Check(relativePath string, isDir bool) Verdict {
	if m == nil {
		return NotIgnored
	}

	unixPath := filepath.ToSlash(relativePath)
	if unixPath == "" || unixPath == "." {
		return NotIgnored // Never ignore the root itself
	}
	name := path.Base(unixPath)

	defaults, user := m.defaultFiles, m.files
	if isDir {
		defaults, user = m.defaultDirs, m.dirs
	}

	var verdict Verdict
	switch {
	case defaults.Match(name):
		verdict = IgnoredDefault
	case user.MatchExact(name):
		verdict = IgnoredExact
	case user.MatchPattern(name):
		verdict = IgnoredPattern
	case m.gitignored(unixPath, isDir):
		verdict = IgnoredGitignore
	default:
		return NotIgnored
	}
	m.logger.Debug("ignore.Check: Ignored %q (%s)", relativePath, verdict)
	return verdict
}

func (m *IgnoreMatcher) gitignored(unixPath string, isDir bool) (ignored bool) {
	if m.repoIgnore == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("PANIC recovered in gitignore library for path %q: %v", unixPath, r)
			ignored = false
		}
	}()
	match := m.repoIgnore.Relative(unixPath, isDir)
	return match != nil && match.Ignore()
}
