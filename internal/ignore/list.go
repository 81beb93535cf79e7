package ignore

import (
	"regexp"
	"strings"
)

// TranslateWildcards turns every bare '*' into ".*". A '*' preceded by '.'
// or by a backslash is left alone, so ".*" and "\*" written by regex authors
// survive.
func TranslateWildcards(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern) + 4)
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c == '*' && (i == 0 || (pattern[i-1] != '.' && pattern[i-1] != '\\')) {
			b.WriteString(".*")
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// CompilePattern compiles a name pattern for full-string matching.
func CompilePattern(pattern string, caseSensitive bool) (*regexp.Regexp, error) {
	expr := "^(?:" + pattern + ")$"
	if !caseSensitive {
		expr = "(?i)" + expr
	}
	return regexp.Compile(expr)
}

// CompileList splits entries into exact names (entries starting with '"',
// quotes stripped) and patterns. Empty entries are skipped. Patterns that
// fail to compile are returned as *PatternError and left out of the list.
func CompileList(entries []string, caseSensitive bool) (List, []error) {
	list := List{caseSensitive: caseSensitive}
	var errs []error
	for _, entry := range entries {
		if entry == "" {
			continue
		}
		if strings.HasPrefix(entry, `"`) {
			name := strings.ReplaceAll(entry, `"`, "")
			if name != "" {
				list.exact = append(list.exact, name)
			}
			continue
		}
		translated := TranslateWildcards(entry)
		re, err := CompilePattern(translated, caseSensitive)
		if err != nil {
			errs = append(errs, &PatternError{Pattern: translated, Err: err})
			continue
		}
		list.patterns = append(list.patterns, re)
	}
	return list, errs
}

// MatchExact reports whether name equals one of the exact entries.
func (l List) MatchExact(name string) bool {
	for _, e := range l.exact {
		if l.caseSensitive && name == e {
			return true
		}
		if !l.caseSensitive && strings.EqualFold(name, e) {
			return true
		}
	}
	return false
}

// MatchPattern reports whether name fully matches one of the patterns.
func (l List) MatchPattern(name string) bool {
	for _, re := range l.patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// Match checks exact entries first, then patterns.
func (l List) Match(name string) bool {
	return l.MatchExact(name) || l.MatchPattern(name)
}

// Empty reports whether the list holds no usable rule.
func (l List) Empty() bool {
	return len(l.exact) == 0 && len(l.patterns) == 0
}

// Len is the number of usable rules.
func (l List) Len() int {
	return len(l.exact) + len(l.patterns)
}
