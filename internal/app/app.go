// Package app runs one search from CLI configuration to printed output.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"

	"github.com/bethropolis/dir-search/internal/config"
	"github.com/bethropolis/dir-search/internal/logger"
	"github.com/bethropolis/dir-search/internal/printer"
	"github.com/bethropolis/dir-search/internal/search"
	"github.com/bethropolis/dir-search/internal/setup"
	"github.com/bethropolis/dir-search/internal/summary"
)

var (
	// ErrCancelled is returned when the user interrupted the search.
	ErrCancelled = errors.New("search cancelled")
	// ErrTimeout is returned when the configured timeout expired.
	ErrTimeout = errors.New("search timed out")
)

// App encapsulates the main application functionality
type App struct {
	cfg    *config.Config
	log    *logger.Logger
	Output io.Writer
	Stderr io.Writer

	closer     io.Closer
	interrupts chan os.Signal
}

// New creates a new App writing results to stdout or cfg.OutputFile.
func New(cfg *config.Config) (*App, error) {
	var output io.Writer = os.Stdout
	var closer io.Closer
	if cfg.OutputFile != "" {
		file, err := os.Create(cfg.OutputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file: %w", err)
		}
		output, closer = file, file
	}
	a, err := NewWithWriters(cfg, output, os.Stderr)
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, err
	}
	a.closer = closer
	return a, nil
}

// NewWithWriters creates an App with explicit result and diagnostic writers.
func NewWithWriters(cfg *config.Config, output, stderr io.Writer) (*App, error) {
	// Configure color globally
	color.NoColor = !cfg.UseColors

	log := logger.New(stderr, cfg.UseColors)
	if err := log.SetLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	return &App{
		cfg:        cfg,
		log:        log,
		Output:     output,
		Stderr:     stderr,
		interrupts: make(chan os.Signal, 1),
	}, nil
}

// Close releases the output file, if any.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// Run executes one search. An interrupt cancels it; a soft cancel still
// prints what was found. The returned error is ErrCancelled or ErrTimeout
// when the search did not run to completion.
func (a *App) Run(ctx context.Context) error {
	startTime := time.Now()

	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if a.log.Enabled(logger.LevelDebug) {
		a.log.Debug("Color output: %v", a.cfg.UseColors)
		a.log.Debug("Directory: %s", a.cfg.RootDir)
		a.log.Debug("Max depth: %d, kind: %s, content: %v", a.cfg.MaxDepth, a.cfg.Kind, a.cfg.Content)
		if a.cfg.ConfigFile != "" {
			a.log.Debug("Profile: %s", a.cfg.ConfigFile)
		}
	}

	var progressOut io.Writer
	if a.cfg.ShowProgress {
		progressOut = a.log.Status()
	}
	session, err := setup.ConfigureSearch(a.cfg, a.log, a.log.Info, progressOut)
	if err != nil {
		return err
	}

	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	a.log.Info("Searching directory: %s", session.Config.RootDir)
	handle, err := search.Start(ctx, session.Config, session.Options...)
	if err != nil {
		return err
	}

	signal.Notify(a.interrupts, os.Interrupt)
	defer signal.Stop(a.interrupts)
	go func() {
		select {
		case <-a.interrupts:
			a.log.Warn("Interrupt received, stopping search...")
			handle.Cancel()
		case <-handle.Done():
		}
	}()

	outcome := handle.Wait()
	a.log.EndStatus()

	p := printer.New().WithOutput(a.Output).WithColors(a.cfg.UseColors)
	switch a.cfg.Format {
	case config.FormatJSON:
		a.log.Debug("JSON output mode enabled")
		p.WithJSON(true).WithColors(false)
	case config.FormatMarkdown:
		a.log.Debug("Markdown output mode enabled")
		p.WithMarkdown(true).WithColors(false)
	}
	if outcome.Results != nil {
		if err := p.PrintResults(outcome.Results); err != nil {
			return fmt.Errorf("writing results: %w", err)
		}
		if err := p.Finalize(); err != nil {
			return fmt.Errorf("writing results: %w", err)
		}
		a.log.Debug("Printed %d result(s)", p.GetCount())
	}

	if n := len(session.Warnings()); n > 0 && len(outcome.Results) == 0 {
		a.log.Info("%d ignore pattern(s) were invalid and skipped; see warnings above.", n)
	}
	summary.DisplayResults(a.log, outcome, time.Since(startTime))
	if a.cfg.ShowSkipped {
		summary.DisplaySkippedItems(a.log, handle.Skipped(), a.Stderr)
	}

	if outcome.Cancelled {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w after %v", ErrTimeout, a.cfg.Timeout)
		}
		return ErrCancelled
	}
	return nil
}
