// Package config holds the CLI settings for a search run.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/bethropolis/dir-search/internal/search"
)

// Output formats.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// KindAuto guesses the pattern kind from the query's shape.
const KindAuto = "auto"

// DefaultMaxDepth is used when neither a flag nor a profile sets the depth.
const DefaultMaxDepth = 10

// Config holds all application configuration settings
type Config struct {
	// Search settings
	RootDir        string
	Query          string
	Kind           string
	CaseSensitive  bool
	Content        bool
	FirstMatchOnly bool
	Preview        bool
	MaxDepth       int
	KeepOnCancel   bool

	// Filtering settings
	IgnoredDirs  []string
	IgnoredFiles []string
	Extensions   []string
	Gitignore    bool
	SkipBinary   bool

	// Logging settings
	LogLevel    string
	NoColor     bool
	UseColors   bool
	ShowSkipped bool

	// Processing settings
	ShowProgress bool
	Timeout      time.Duration

	// Output
	Format     string
	OutputFile string

	// Profile file, applied by ApplyProfile
	ConfigFile string

	Version string
}

// Default returns the settings used before flags and profiles are applied.
func Default() *Config {
	return &Config{
		RootDir:    ".",
		Kind:       search.PatternLiteral.String(),
		MaxDepth:   DefaultMaxDepth,
		SkipBinary: true,
		LogLevel:   "info",
		Format:     FormatText,
		Version:    "1.0.0",
	}
}

// Finalize derives settings that depend on the environment. Colours are used
// only when stderr is a terminal and output is not redirected to a file.
func (c *Config) Finalize() {
	c.UseColors = !c.NoColor && isatty.IsTerminal(os.Stderr.Fd()) && c.OutputFile == ""
	if c.Format == FormatJSON || c.Format == FormatMarkdown {
		c.UseColors = false
	}
	c.IgnoredDirs = cleanEntries(c.IgnoredDirs)
	c.IgnoredFiles = cleanEntries(c.IgnoredFiles)
	c.Extensions = cleanEntries(c.Extensions)
}

// PatternKind resolves Kind, including "auto", against Query.
func (c *Config) PatternKind() (search.PatternKind, error) {
	if strings.EqualFold(c.Kind, KindAuto) {
		return search.DetectPatternKind(c.Query), nil
	}
	return search.ParsePatternKind(c.Kind)
}

// Validate reports every problem with the settings at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Query == "" {
		errs = append(errs, errors.New("query must not be empty"))
	}
	if c.RootDir == "" {
		errs = append(errs, errors.New("directory must not be empty"))
	}
	if c.MaxDepth < -1 {
		errs = append(errs, fmt.Errorf("depth %d is invalid (use -1 for unlimited)", c.MaxDepth))
	}
	if _, err := c.PatternKind(); err != nil {
		errs = append(errs, err)
	}
	switch c.Format {
	case FormatText, FormatJSON, FormatMarkdown:
	default:
		errs = append(errs, fmt.Errorf("unknown output format %q", c.Format))
	}
	if c.Timeout < 0 {
		errs = append(errs, errors.New("timeout must not be negative"))
	}
	return errors.Join(errs...)
}

// cleanEntries trims list entries and drops blank ones. Entries are never
// split: a pattern such as "^v{1,3}$" must survive intact.
func cleanEntries(in []string) []string {
	var out []string
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
