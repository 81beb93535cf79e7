// Package setup provides initialization and configuration functions
package setup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/bethropolis/dir-search/internal/config"
	"github.com/bethropolis/dir-search/internal/search"
	"github.com/bethropolis/dir-search/internal/utils"
)

// InfoLogger wraps the Info method for status updates
type InfoLogger func(format string, args ...interface{})

// Session is a search prepared from the CLI configuration.
type Session struct {
	Config  search.Config
	Options []search.Option

	mu       sync.Mutex
	warnings []string
}

// Warnings returns the pattern warnings reported so far.
func (s *Session) Warnings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.warnings...)
}

func (s *Session) addWarning(msg string) {
	s.mu.Lock()
	s.warnings = append(s.warnings, msg)
	s.mu.Unlock()
}

// ConfigureSearch resolves the root directory and builds the engine config
// and options. Progress lines go to progressOut when enabled.
func ConfigureSearch(cfg *config.Config, log utils.Logger, infoLog InfoLogger, progressOut io.Writer) (*Session, error) {
	log = utils.OrNoop(log)
	if infoLog == nil {
		infoLog = func(string, ...interface{}) {}
	}

	root, err := ResolveRoot(cfg.RootDir)
	if err != nil {
		return nil, err
	}

	kind, err := cfg.PatternKind()
	if err != nil {
		return nil, err
	}

	sc := search.Config{
		RootDir:                 root,
		Query:                   cfg.Query,
		Kind:                    kind,
		CaseSensitive:           cfg.CaseSensitive,
		SearchInContent:         cfg.Content,
		OnlyFirstContentMatch:   cfg.FirstMatchOnly,
		ShowMatchPreview:        cfg.Preview,
		MaxSearchDepth:          cfg.MaxDepth,
		IgnoredDirectories:      cfg.IgnoredDirs,
		IgnoredFiles:            cfg.IgnoredFiles,
		ContentSearchExtensions: cfg.Extensions,
		ShowResultsOnCancel:     cfg.KeepOnCancel,
		RespectGitignore:        cfg.Gitignore,
		SkipBinaryFiles:         cfg.SkipBinary,
	}

	if sc.SearchInContent {
		infoLog("Searching file contents for %s %q.", kind, cfg.Query)
		if len(sc.ContentSearchExtensions) > 0 {
			infoLog("Only opening files matching: %s", strings.Join(sc.ContentSearchExtensions, ", "))
		}
	} else {
		infoLog("Searching names for %s %q.", kind, cfg.Query)
	}
	if len(sc.IgnoredDirectories) > 0 {
		infoLog("Ignoring directories: %v", sc.IgnoredDirectories)
	}
	if len(sc.IgnoredFiles) > 0 {
		infoLog("Ignoring files: %v", sc.IgnoredFiles)
	}
	if sc.RespectGitignore {
		infoLog("Respecting .gitignore rules.")
	}

	s := &Session{Config: sc}
	s.Options = append(s.Options,
		search.WithLogger(log),
		search.WithWarnings(s.addWarning),
		search.WithCancelled(func() {
			log.Debug("Search cancelled before any result was kept")
		}),
	)

	if cfg.ShowProgress && progressOut != nil {
		log.Debug("Progress display enabled")
		s.Options = append(s.Options, search.WithProgress(progressPrinter(progressOut, cfg.UseColors)))
	}

	return s, nil
}

// progressPrinter overwrites a single status line on out.
func progressPrinter(out io.Writer, useColors bool) search.ProgressCallback {
	label := "Searching..."
	if useColors {
		label = color.New(color.FgCyan, color.Bold).Sprint(label)
	}
	return func(stats search.ProgressStats) {
		fmt.Fprintf(out, "\r%s | Depth: %d | Queue: %d | Checked: %d | Matches: %d",
			label, stats.Depth, stats.QueueLength, stats.FilesChecked, stats.Matches)
	}
}

// ResolveRoot expands a leading "~", makes dir absolute and checks that it
// is a readable directory.
func ResolveRoot(dir string) (string, error) {
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding %q: %w", dir, err)
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("invalid root directory path '%s': %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("root directory '%s' not found", abs)
		}
		return "", fmt.Errorf("could not access root directory '%s': %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("specified path '%s' is not a directory", abs)
	}
	return abs, nil
}
