package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bethropolis/dir-search/internal/ignore"
)

// query is the compiled form of Config.Query.
type query struct {
	kind          PatternKind
	literal       string
	re            *regexp.Regexp
	caseSensitive bool
}

func compileQuery(raw string, kind PatternKind, caseSensitive bool) (*query, error) {
	q := &query{kind: kind, caseSensitive: caseSensitive}
	switch kind {
	case PatternLiteral:
		q.literal = raw
		if !caseSensitive {
			q.literal = strings.ToLower(raw)
		}
		return q, nil
	case PatternGlob:
		re, err := ignore.CompilePattern(globToRegexp(raw), caseSensitive)
		if err != nil {
			return nil, &ignore.PatternError{Pattern: raw, Err: err}
		}
		q.re = re
		return q, nil
	case PatternRegex:
		expr := ignore.TranslateWildcards(raw)
		re, err := ignore.CompilePattern(expr, caseSensitive)
		if err != nil {
			return nil, &ignore.PatternError{Pattern: expr, Err: err}
		}
		q.re = re
		return q, nil
	default:
		return nil, fmt.Errorf("unknown pattern kind %v", kind)
	}
}

// globToRegexp quotes everything except '*' and '?'.
func globToRegexp(glob string) string {
	var b strings.Builder
	for _, r := range glob {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return b.String()
}

// match reports whether s matches and, if so, the byte span of the match
// within s. Pattern kinds match the whole string.
func (q *query) match(s string) (start, end int, ok bool) {
	if q.re != nil {
		if q.re.MatchString(s) {
			return 0, len(s), true
		}
		return 0, 0, false
	}

	if q.caseSensitive {
		i := strings.Index(s, q.literal)
		if i < 0 {
			return 0, 0, false
		}
		return i, i + len(q.literal), true
	}

	folded := strings.ToLower(s)
	i := strings.Index(folded, q.literal)
	if i < 0 {
		return 0, 0, false
	}
	if len(folded) != len(s) {
		// Folding changed byte widths; offsets into s are unknown.
		return 0, len(s), true
	}
	return i, i + len(q.literal), true
}

func (q *query) matches(s string) bool {
	_, _, ok := q.match(s)
	return ok
}
