package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/bethropolis/dir-search/internal/app"
	"github.com/bethropolis/dir-search/internal/config"
)

// Exit codes.
const (
	exitOK        = 0
	exitError     = 1
	exitCancelled = 130
)

func main() {
	cmd := newRootCmd(config.Default(), runApp)
	err := cmd.Execute()
	if err != nil && !errors.Is(err, app.ErrCancelled) {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	}
	os.Exit(exitCode(err))
}

func runApp(ctx context.Context, cfg *config.Config) error {
	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.Run(ctx)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, app.ErrCancelled):
		return exitCancelled
	default:
		return exitError
	}
}

func newRootCmd(cfg *config.Config, run func(context.Context, *config.Config) error) *cobra.Command {
	var jsonOut, markdownOut bool

	cmd := &cobra.Command{
		Use:   "dir-search [flags] QUERY",
		Short: "Search a directory tree by file name or file content.",
		Long: heredoc.Doc(`
			Breadth-first search of a directory tree, matching names (default) or
			file contents (--content) against a literal, glob or regular expression query.

			Press Ctrl+C to stop a running search; with --keep-on-cancel the results
			found so far are still printed.
		`),
		Example: heredoc.Doc(`
			dir-search --dir ~/notes todo
			dir-search --content --preview --ext '*.md' "call mom"
			dir-search --kind regex --depth 2 '^draft-.*'
		`),
		Version:       cfg.Version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Query = args[0]
			switch {
			case jsonOut:
				cfg.Format = config.FormatJSON
			case markdownOut:
				cfg.Format = config.FormatMarkdown
			}

			if cfg.ConfigFile != "" {
				profile, err := config.LoadProfile(cfg.ConfigFile)
				if err != nil {
					return err
				}
				flags := cmd.Flags()
				cfg.ApplyProfile(profile, func(name string) bool {
					if name == "format" && (jsonOut || markdownOut) {
						return true
					}
					return flags.Changed(name)
				})
			}
			cfg.Finalize()

			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&cfg.RootDir, "dir", "d", cfg.RootDir, "The root directory to search")
	f.StringVarP(&cfg.Kind, "kind", "k", cfg.Kind, "Query kind: literal, glob, regex or auto")
	f.BoolVarP(&cfg.CaseSensitive, "case-sensitive", "s", cfg.CaseSensitive, "Match case exactly")
	f.BoolVarP(&cfg.Content, "content", "c", cfg.Content, "Search file contents instead of names")
	f.BoolVar(&cfg.FirstMatchOnly, "first-only", cfg.FirstMatchOnly, "Stop at the first matching line of each file")
	f.BoolVarP(&cfg.Preview, "preview", "p", cfg.Preview, "Show the matching line for content matches")
	f.IntVar(&cfg.MaxDepth, "depth", cfg.MaxDepth, "Maximum directory depth (-1 for unlimited)")
	f.BoolVar(&cfg.KeepOnCancel, "keep-on-cancel", cfg.KeepOnCancel, "Print results found before Ctrl+C")
	f.StringArrayVar(&cfg.IgnoredDirs, "ignore-dir", cfg.IgnoredDirs, `Directory to skip, repeatable: "name" for an exact name, otherwise a pattern`)
	f.StringArrayVar(&cfg.IgnoredFiles, "ignore-file", cfg.IgnoredFiles, `File to skip, repeatable: "name" for an exact name, otherwise a pattern`)
	f.StringArrayVar(&cfg.Extensions, "ext", cfg.Extensions, "Only search contents of files matching this pattern, repeatable (e.g. '*.md')")
	f.BoolVar(&cfg.Gitignore, "gitignore", cfg.Gitignore, "Also skip paths matched by .gitignore files")
	f.BoolVar(&cfg.SkipBinary, "skip-binary", cfg.SkipBinary, "Skip binary files in content searches (--skip-binary=false scans them)")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Set the logging level (debug, info, warn, error, none)")
	f.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable color output")
	f.BoolVar(&cfg.ShowSkipped, "show-skipped", cfg.ShowSkipped, "Show a list of skipped files/directories and reasons at the end")
	f.BoolVar(&cfg.ShowProgress, "progress", cfg.ShowProgress, "Show progress information")
	f.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Maximum search time (e.g., '30s', '5m')")
	f.StringVar(&cfg.Format, "format", cfg.Format, "Output format: text, json or markdown")
	f.BoolVar(&jsonOut, "json", false, "Output results in JSON format")
	f.BoolVar(&markdownOut, "markdown", false, "Output results in Markdown format")
	f.StringVarP(&cfg.OutputFile, "output", "o", cfg.OutputFile, "Output to file instead of stdout")
	f.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "YAML profile with default settings; flags take precedence")
	cmd.MarkFlagsMutuallyExclusive("json", "markdown")

	cmd.SetContext(context.Background())
	cmd.SetVersionTemplate(fmt.Sprintf("dir-search version %s\n", cfg.Version))
	return cmd
}
