package search

import "path"

// searchContent scans one file line by line and records a Result when any
// line matches. Line numbers are 0-based.
func (w *worker) searchContent(file, rel string) {
	if !w.extensions.Empty() && !w.extensions.Match(path.Base(rel)) {
		w.handle.tracker.Track(rel, ReasonFilteredExtension, false)
		return
	}
	if w.cfg.SkipBinaryFiles && w.fs.IsBinary(file) {
		w.handle.tracker.Track(rel, ReasonSkippedBinary, false)
		return
	}

	lines, ok := w.fs.ReadLines(file)
	if !ok {
		w.handle.tracker.Track(rel, ReasonSkippedUnreadable, false)
		return
	}

	var matches []ContentMatch
	lineNumber := 0
	for line := range lines {
		if w.stopped() {
			break
		}
		if start, end, ok := w.query.match(line); ok {
			m := ContentMatch{Line: lineNumber}
			if w.cfg.ShowMatchPreview {
				m.Preview = preview(line, start, end)
			}
			matches = append(matches, m)
			if w.cfg.OnlyFirstContentMatch {
				break
			}
		}
		lineNumber++
	}

	if len(matches) == 0 {
		return
	}
	w.log.Debug("search: %d content match(es) in %q", len(matches), rel)
	w.results = append(w.results, Result{RelativePath: rel, ContentMatches: matches})
}
