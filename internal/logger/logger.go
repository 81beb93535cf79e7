// Package logger provides the levelled terminal logger used by the CLI.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/bethropolis/dir-search/internal/utils"
)

// LogLevel defines log severity levels
type LogLevel int

const (
	// Log levels from least to most restrictive
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "NONE"
	}
}

var levelColors = map[LogLevel]*color.Color{
	LevelDebug: color.New(color.FgCyan),
	LevelInfo:  color.New(color.FgBlue),
	LevelWarn:  color.New(color.FgYellow),
	LevelError: color.New(color.FgRed, color.Bold),
}

// Logger writes "[15:04:05.000 LEVEL] message" lines. It is safe for
// concurrent use; the search goroutine and the CLI share one instance.
type Logger struct {
	mu        sync.Mutex
	out       io.Writer
	useColors bool
	level     LogLevel
	now       func() time.Time

	// statusOpen is set while an unterminated status line is on screen.
	statusOpen bool
}

var _ utils.Logger = (*Logger)(nil)

// New creates a Logger at Info level.
func New(out io.Writer, useColors bool) *Logger {
	return &Logger{
		out:       out,
		useColors: useColors,
		level:     LevelInfo,
		now:       time.Now,
	}
}

// WithLevel sets the log level and returns the logger
func (l *Logger) WithLevel(level LogLevel) *Logger {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
	return l
}

// SetLevel sets the level by name. Unknown names leave it unchanged.
func (l *Logger) SetLevel(levelStr string) error {
	level, err := ParseLevel(levelStr)
	if err != nil {
		return err
	}
	l.WithLevel(level)
	return nil
}

// Level reports the current level.
func (l *Logger) Level() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// Enabled reports whether messages at level would be written.
func (l *Logger) Enabled(level LogLevel) bool {
	return level != LevelNone && l.Level() <= level
}

// ParseLevel converts "debug", "info", "warn", "error" or "none" to a LogLevel.
func ParseLevel(level string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "none", "off", "quiet":
		return LevelNone, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

func (l *Logger) Debug(format string, args ...interface{}) { l.logf(LevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.logf(LevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.logf(LevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.logf(LevelError, format, args...) }

func (l *Logger) logf(level LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.level > level {
		return
	}

	l.closeStatus()
	prefix := level.String()
	if l.useColors {
		prefix = levelColors[level].Sprint(prefix)
	}
	fmt.Fprintf(l.out, "[%s %s] %s\n", l.now().Format("15:04:05.000"), prefix, fmt.Sprintf(format, args...))
}

// Status returns a writer for a single self-overwriting status line (text
// starting with '\r'). It shares the logger's lock, and the next log message
// first moves to a fresh line.
func (l *Logger) Status() io.Writer {
	return statusWriter{l}
}

// EndStatus terminates an open status line.
func (l *Logger) EndStatus() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closeStatus()
}

func (l *Logger) closeStatus() {
	if l.statusOpen {
		fmt.Fprintln(l.out)
		l.statusOpen = false
	}
}

type statusWriter struct {
	l *Logger
}

func (w statusWriter) Write(p []byte) (int, error) {
	w.l.mu.Lock()
	defer w.l.mu.Unlock()
	n, err := w.l.out.Write(p)
	if n > 0 {
		w.l.statusOpen = p[n-1] != '\n'
	}
	return n, err
}
