package search

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bethropolis/dir-search/internal/fsys"
	"github.com/bethropolis/dir-search/internal/ignore"
	"github.com/bethropolis/dir-search/internal/utils"
)

// Handle controls a running search. It is safe to use from any goroutine.
type Handle struct {
	cancelled atomic.Bool
	done      chan struct{}
	outcome   Outcome
	tracker   *SkippedTracker
}

// Cancel asks the search to stop. Whether partial results are delivered is
// decided by Config.ShowResultsOnCancel.
func (h *Handle) Cancel() {
	h.cancelled.Store(true)
}

// Done is closed once the search has delivered its outcome.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the search finishes and returns its outcome.
func (h *Handle) Wait() Outcome {
	<-h.done
	return h.outcome
}

// Skipped returns entries the search passed over. Complete once Done is closed.
func (h *Handle) Skipped() []SkippedItem {
	return h.tracker.Items()
}

// Search runs a search to completion on the calling goroutine's behalf.
func Search(ctx context.Context, cfg Config, opts ...Option) (Outcome, error) {
	h, err := Start(ctx, cfg, opts...)
	if err != nil {
		return Outcome{}, err
	}
	return h.Wait(), nil
}

// Start validates cfg, compiles its patterns and launches the search on its
// own goroutine. A query that does not compile is reported through the
// warning callback and returned as ErrInvalidQuery before any work starts.
// Cancelling ctx has the same effect as Handle.Cancel.
func Start(ctx context.Context, cfg Config, opts ...Option) (*Handle, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	log := options.Logger

	if cfg.RootDir == "" {
		return nil, fmt.Errorf("search: %w", ErrRootRequired)
	}

	warn := func(err error) {
		log.Warn("search: %v", err)
		if options.WarningFn != nil {
			options.WarningFn(err.Error())
		}
	}

	q, err := compileQuery(cfg.Query, cfg.Kind, cfg.CaseSensitive)
	if err != nil {
		warn(err)
		return nil, fmt.Errorf("search: %w: %v", ErrInvalidQuery, err)
	}

	matcher, err := ignore.NewFromConfig(ignore.Config{
		RootDir:          cfg.RootDir,
		CaseSensitive:    cfg.CaseSensitive,
		RespectGitignore: cfg.RespectGitignore,
		DirPatterns:      cfg.IgnoredDirectories,
		FilePatterns:     cfg.IgnoredFiles,
		OnWarning:        warn,
		Logger:           log,
	})
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	// Extensions are compared case-insensitively regardless of the query.
	extensions, extErrs := ignore.CompileList(cfg.ContentSearchExtensions, false)
	for _, err := range extErrs {
		warn(err)
	}

	h := &Handle{
		done:    make(chan struct{}),
		tracker: NewSkippedTracker(64),
	}
	w := &worker{
		ctx:        ctx,
		cfg:        cfg,
		opts:       options,
		fs:         options.FileSystem,
		log:        log,
		query:      q,
		matcher:    matcher,
		extensions: extensions,
		handle:     h,
	}

	log.Debug("search.Start: root=%s query=%q kind=%s content=%v depth=%d",
		cfg.RootDir, cfg.Query, cfg.Kind, cfg.SearchInContent, cfg.MaxSearchDepth)

	go w.run()
	return h, nil
}

// queued is a directory waiting in the breadth-first queue.
type queued struct {
	path string
	rel  string // slash separated, "" for the root
}

// worker owns all mutable search state; only the cancel flag is shared.
type worker struct {
	ctx        context.Context
	cfg        Config
	opts       Options
	fs         fsys.FileSystem
	log        utils.Logger
	query      *query
	matcher    *ignore.IgnoreMatcher
	extensions ignore.List
	handle     *Handle

	rootCanon    string
	results      []Result
	filesChecked int64
	depth        int
	queue        []queued
	interrupted  bool
}

// stopped polls the cancel flag and the context. Once it reports true the
// search counts as cancelled even if no work was left.
func (w *worker) stopped() bool {
	if w.interrupted {
		return true
	}
	if w.handle.cancelled.Load() || (w.ctx != nil && w.ctx.Err() != nil) {
		w.interrupted = true
	}
	return w.interrupted
}

func (w *worker) stats() ProgressStats {
	return ProgressStats{
		QueueLength:  len(w.queue) + 1,
		Depth:        w.depth,
		Matches:      len(w.results),
		FilesChecked: w.filesChecked,
	}
}

func (w *worker) progress() {
	if w.opts.ProgressFn != nil {
		w.opts.ProgressFn(w.stats())
	}
}

func (w *worker) run() {
	startTime := time.Now()
	defer close(w.handle.done)

	rootCanon, ok := w.fs.CanonicalPath(w.cfg.RootDir)
	if !ok {
		abs, err := filepath.Abs(w.cfg.RootDir)
		if err != nil {
			abs = w.cfg.RootDir
		}
		rootCanon = filepath.Clean(abs)
	}
	w.rootCanon = rootCanon

	w.queue = append(w.queue, queued{path: w.cfg.RootDir})
	for len(w.queue) > 0 && !w.stopped() {
		current := w.queue[0]
		w.queue = w.queue[1:]

		if !w.fs.CanRead(current.path) || !w.fs.IsDir(current.path) {
			continue
		}

		canon, ok := w.fs.CanonicalPath(current.path)
		if !ok {
			continue
		}
		depth, ok := w.dirDepth(canon)
		if !ok {
			w.handle.tracker.Track(current.rel, ReasonSkippedSymlink, true)
			continue
		}
		w.depth = depth
		if w.cfg.MaxSearchDepth >= 0 && depth > w.cfg.MaxSearchDepth {
			w.log.Debug("search: depth %d exceeds limit %d, stopping", depth, w.cfg.MaxSearchDepth)
			break
		}

		w.progress()
		w.processDirectory(current, canon)
	}

	w.finish(time.Since(startTime))
}

func (w *worker) finish(elapsed time.Duration) {
	cancelled := w.interrupted
	stats := w.stats()
	stats.QueueLength = len(w.queue)

	// A soft cancel that found nothing ends like a hard cancel.
	deliver := !cancelled || (w.cfg.ShowResultsOnCancel && len(w.results) > 0)
	var results []Result
	if deliver {
		results = w.results
		if results == nil {
			results = []Result{}
		}
	}
	w.handle.outcome = Outcome{Results: results, Cancelled: cancelled, Stats: stats}

	w.log.Debug("search: finished in %s (cancelled=%v, results=%d, checked=%d)",
		elapsed, cancelled, len(results), w.filesChecked)

	if !deliver {
		if w.opts.CancelledFn != nil {
			w.opts.CancelledFn()
		}
		return
	}
	if w.opts.ResultsFn != nil {
		w.opts.ResultsFn(results)
	}
}

// dirDepth is the number of path components between the canonical root and
// dir. ok is false when dir lies outside the root.
func (w *worker) dirDepth(dir string) (int, bool) {
	if dir == w.rootCanon {
		return 0, true
	}
	rel, ok := w.withinRoot(dir)
	if !ok {
		return 0, false
	}
	return strings.Count(rel, "/") + 1, true
}

func (w *worker) withinRoot(p string) (string, bool) {
	rel, err := filepath.Rel(w.rootCanon, p)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// escapes reports whether the directory child, listed under parentCanon,
// really lives somewhere else (a symlink).
func (w *worker) escapes(child, parentCanon string) bool {
	canon, ok := w.fs.CanonicalPath(child)
	if !ok {
		return true
	}
	if filepath.Dir(canon) != parentCanon {
		return true
	}
	_, inside := w.withinRoot(canon)
	return !inside
}

func (w *worker) processDirectory(dir queued, dirCanon string) {
	children, ok := w.fs.ListChildren(dir.path)
	if !ok {
		w.handle.tracker.Track(dir.rel, ReasonSkippedUnreadable, true)
		return
	}

	for i, child := range children {
		if w.stopped() {
			return
		}
		w.filesChecked++

		rel := path.Join(dir.rel, filepath.Base(child))
		w.processChild(child, rel, dirCanon)

		if (i+1)%w.opts.ProgressEvery == 0 {
			w.progress()
		}
	}
}

func (w *worker) processChild(child, rel, parentCanon string) {
	if !w.fs.CanRead(child) {
		w.handle.tracker.Track(rel, ReasonSkippedUnreadable, false)
		return
	}
	isDir := w.fs.IsDir(child)

	if verdict := w.matcher.Check(rel, isDir); verdict.Ignored() {
		w.handle.tracker.Track(rel, reasonFor(verdict), isDir)
		return
	}

	if isDir {
		if w.escapes(child, parentCanon) {
			w.handle.tracker.Track(rel, ReasonSkippedSymlink, true)
			return
		}
		childDepth := strings.Count(rel, "/") + 1
		if w.cfg.MaxSearchDepth < 0 || childDepth <= w.cfg.MaxSearchDepth {
			w.queue = append(w.queue, queued{path: child, rel: rel})
		} else {
			w.handle.tracker.Track(rel, ReasonSkippedDepth, true)
		}
		if !w.cfg.SearchInContent {
			w.matchName(rel, true)
		}
		return
	}

	if w.cfg.SearchInContent {
		w.searchContent(child, rel)
		return
	}
	w.matchName(rel, false)
}

func (w *worker) matchName(rel string, isDir bool) {
	name := path.Base(rel)
	if !w.query.matches(name) {
		return
	}
	w.log.Debug("search: name match %q", rel)
	w.results = append(w.results, Result{RelativePath: rel, IsDirectory: isDir})
}

func reasonFor(v ignore.Verdict) SkippedReason {
	switch v {
	case ignore.IgnoredDefault:
		return ReasonIgnoredDefault
	case ignore.IgnoredGitignore:
		return ReasonIgnoredGitignore
	default:
		return ReasonIgnoredRule
	}
}
