package search

import (
	"fmt"
	"unicode/utf8"
)

// MaxPreviewLength is the rune budget for a match preview.
const MaxPreviewLength = 100

// preview shapes the text shown for a matching line. Lines under the budget
// are returned whole; longer ones are cut to a window around [start,end)
// and wrapped in ellipses.
func preview(line string, start, end int) string {
	n := utf8.RuneCountInString(line)
	if n < MaxPreviewLength {
		return line
	}

	runes := []rune(line)
	rs := utf8.RuneCountInString(line[:start])
	re := rs + utf8.RuneCountInString(line[start:end])

	offset := (MaxPreviewLength - (re - rs)) / 2
	from := max(rs-offset, 0)
	to := min(re+offset, n)
	if from >= to {
		// Match wider than the budget: keep its centre.
		mid := (rs + re) / 2
		from = max(mid-MaxPreviewLength/2, 0)
		to = min(from+MaxPreviewLength, n)
	}
	return fmt.Sprintf("… %s …", string(runes[from:to]))
}
