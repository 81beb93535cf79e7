package search

import (
	"github.com/bethropolis/dir-search/internal/fsys"
	"github.com/bethropolis/dir-search/internal/utils"
)

// DefaultProgressEvery is how many children are inspected between progress
// reports inside a single directory.
const DefaultProgressEvery = 64

// ProgressCallback receives progress snapshots in traversal order.
type ProgressCallback func(stats ProgressStats)

// ResultsCallback receives the final (or soft-cancelled partial) result list.
type ResultsCallback func(results []Result)

// WarningCallback receives user-facing, non-fatal messages.
type WarningCallback func(message string)

// Options configures the behavior of a search run. Callbacks are invoked on
// the search goroutine.
type Options struct {
	Logger        utils.Logger
	FileSystem    fsys.FileSystem
	ProgressFn    ProgressCallback
	ResultsFn     ResultsCallback
	CancelledFn   func()
	WarningFn     WarningCallback
	ProgressEvery int
}

// defaultOptions returns the default search options
func defaultOptions() Options {
	return Options{
		Logger:        &utils.NoopLogger{},
		FileSystem:    fsys.NewOS(),
		ProgressEvery: DefaultProgressEvery,
	}
}

// Option is a functional option for configuring Options
type Option func(*Options)

// WithLogger sets a custom logger for the engine
func WithLogger(logger utils.Logger) Option {
	return func(opts *Options) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}

// WithFileSystem replaces the OS filesystem.
func WithFileSystem(fs fsys.FileSystem) Option {
	return func(opts *Options) {
		if fs != nil {
			opts.FileSystem = fs
		}
	}
}

// WithProgress adds a progress callback function
func WithProgress(fn ProgressCallback) Option {
	return func(opts *Options) {
		opts.ProgressFn = fn
	}
}

// WithResults sets the callback for the final result list.
func WithResults(fn ResultsCallback) Option {
	return func(opts *Options) {
		opts.ResultsFn = fn
	}
}

// WithCancelled sets the callback fired when a search ends without results
// because it was cancelled.
func WithCancelled(fn func()) Option {
	return func(opts *Options) {
		opts.CancelledFn = fn
	}
}

// WithWarnings sets the callback for pattern compile warnings.
func WithWarnings(fn WarningCallback) Option {
	return func(opts *Options) {
		opts.WarningFn = fn
	}
}

// WithProgressEvery sets the in-directory progress interval.
func WithProgressEvery(n int) Option {
	return func(opts *Options) {
		if n > 0 {
			opts.ProgressEvery = n
		}
	}
}
