// Package summary handles display of search statistics and skipped items
package summary

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/bethropolis/dir-search/internal/search"
)

// Logger defines the minimal logging interface required
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
}

// DisplayResults reports how the search ended.
func DisplayResults(logger Logger, outcome search.Outcome, duration time.Duration) {
	stats := outcome.Stats
	if outcome.Cancelled {
		if outcome.Results == nil {
			logger.Warn("Search cancelled after checking %d entries; no results kept.", stats.FilesChecked)
		} else {
			logger.Warn("Search cancelled; showing %d partial result(s).", len(outcome.Results))
		}
	} else {
		logger.Info("Found %d match(es) in %d checked entries.", len(outcome.Results), stats.FilesChecked)
	}
	logger.Info("Search finished in %v.", duration.Round(time.Millisecond))
}

// DisplaySkippedItems formats and prints information about skipped items
func DisplaySkippedItems(logger Logger, skippedItems []search.SkippedItem, output io.Writer) {
	logger.Info("--- Skipped Items (%d) ---", len(skippedItems))
	if len(skippedItems) == 0 {
		logger.Info("No items were skipped.")
		logger.Info("--- End Skipped Items ---")
		return
	}

	// Sort for consistent output
	sort.SliceStable(skippedItems, func(i, j int) bool {
		return skippedItems[i].Path < skippedItems[j].Path
	})
	for _, item := range skippedItems {
		typeStr := "FILE"
		if item.IsDir {
			typeStr = "DIR " // Add space for alignment
		}
		fmt.Fprintf(output, "Skipped %s: %-50.50s [%s]\n", typeStr, item.Path, item.Reason)
	}
	logger.Info("--- End Skipped Items ---")
}
