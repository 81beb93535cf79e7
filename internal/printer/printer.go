// Package printer handles output formatting and display
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/fatih/color"

	"github.com/bethropolis/dir-search/internal/search"
)

// Printer writes search results to the configured output in text, JSON or
// Markdown form.
type Printer struct {
	output         io.Writer
	count          atomic.Int64
	useColors      bool
	jsonOutput     bool
	jsonStarted    bool
	markdownOutput bool

	fileColor *color.Color
	dirColor  *color.Color
	lineColor *color.Color
}

// New creates a new Printer with default settings
func New() *Printer {
	p := &Printer{
		output:    os.Stdout,
		useColors: true,
		fileColor: color.New(color.FgCyan, color.Bold),
		dirColor:  color.New(color.FgBlue, color.Bold),
		lineColor: color.New(color.FgYellow),
	}
	return p
}

// WithOutput sets the output destination
func (p *Printer) WithOutput(w io.Writer) *Printer {
	p.output = w
	return p
}

// WithColors enables or disables colored output
func (p *Printer) WithColors(enabled bool) *Printer {
	p.useColors = enabled
	for _, c := range []*color.Color{p.fileColor, p.dirColor, p.lineColor} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// WithJSON enables JSON output mode
func (p *Printer) WithJSON(enabled bool) *Printer {
	p.jsonOutput = enabled
	return p
}

// WithMarkdown enables Markdown output mode
func (p *Printer) WithMarkdown(enabled bool) *Printer {
	p.markdownOutput = enabled
	return p
}

// PrintResults writes every result in order.
func (p *Printer) PrintResults(results []search.Result) error {
	for _, r := range results {
		if err := p.PrintResult(r); err != nil {
			return err
		}
	}
	return nil
}

// PrintResult outputs one match. Content matches are shown 1-based.
func (p *Printer) PrintResult(r search.Result) error {
	p.count.Add(1)

	switch {
	case p.jsonOutput:
		sep := ",\n"
		if !p.jsonStarted {
			sep = "[\n"
			p.jsonStarted = true
		}
		data, err := json.MarshalIndent(r, "  ", "  ")
		if err != nil {
			return fmt.Errorf("marshaling result %q: %w", r.RelativePath, err)
		}
		_, err = fmt.Fprintf(p.output, "%s  %s", sep, data)
		return err

	case p.markdownOutput:
		name := r.RelativePath
		if r.IsDirectory {
			name += "/"
		}
		if _, err := fmt.Fprintf(p.output, "- `%s`\n", name); err != nil {
			return err
		}
		for _, m := range r.ContentMatches {
			line := fmt.Sprintf("  - line %d", m.Line+1)
			if m.Preview != "" {
				line += ": `" + strings.ReplaceAll(m.Preview, "`", "'") + "`"
			}
			if _, err := fmt.Fprintln(p.output, line); err != nil {
				return err
			}
		}
		return nil

	default:
		var err error
		if r.IsDirectory {
			_, err = fmt.Fprintln(p.output, p.dirColor.Sprint(r.RelativePath+"/"))
		} else {
			_, err = fmt.Fprintln(p.output, p.fileColor.Sprint(r.RelativePath))
		}
		if err != nil {
			return err
		}
		for _, m := range r.ContentMatches {
			lineNo := p.lineColor.Sprintf("%d", m.Line+1)
			if m.Preview != "" {
				_, err = fmt.Fprintf(p.output, "  %s: %s\n", lineNo, m.Preview)
			} else {
				_, err = fmt.Fprintf(p.output, "  %s\n", lineNo)
			}
			if err != nil {
				return err
			}
		}
		return nil
	}
}

// Finalize completes any pending operations (like closing JSON array)
func (p *Printer) Finalize() error {
	if !p.jsonOutput {
		return nil
	}
	if !p.jsonStarted {
		_, err := fmt.Fprint(p.output, "[]\n")
		return err
	}
	_, err := fmt.Fprint(p.output, "\n]\n")
	return err
}

// GetCount returns the number of results printed
func (p *Printer) GetCount() int64 {
	return p.count.Load()
}
