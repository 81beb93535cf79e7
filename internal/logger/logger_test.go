package logger

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedLogger(buf *bytes.Buffer) *Logger {
	l := New(buf, false)
	l.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 6e6, time.UTC) }
	return l
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf)

	l.Info("found %d results", 3)
	assert.Equal(t, "[03:04:05.006 INFO] found 3 results\n", buf.String())
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf).WithLevel(LevelWarn)

	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e")
	assert.Equal(t, "[03:04:05.006 WARN] w\n[03:04:05.006 ERROR] e\n", buf.String())

	buf.Reset()
	l.WithLevel(LevelNone)
	l.Error("silent")
	assert.Empty(t, buf.String())
	assert.False(t, l.Enabled(LevelError))
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf)

	require.NoError(t, l.SetLevel("DEBUG"))
	assert.Equal(t, LevelDebug, l.Level())
	assert.True(t, l.Enabled(LevelDebug))

	assert.Error(t, l.SetLevel("chatty"))
	assert.Equal(t, LevelDebug, l.Level())
}

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   LevelDebug,
		"":        LevelInfo,
		"Warning": LevelWarn,
		"error":   LevelError,
		"off":     LevelNone,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestStatusLineEndsBeforeMessages(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf)
	status := l.Status()

	_, err := status.Write([]byte("\rSearching... | Depth: 1"))
	require.NoError(t, err)
	l.Warn("w")
	_, err = status.Write([]byte("\rSearching... | Depth: 2"))
	require.NoError(t, err)
	l.EndStatus()
	l.EndStatus()

	assert.Equal(t, "\rSearching... | Depth: 1\n[03:04:05.006 WARN] w\n\rSearching... | Depth: 2\n", buf.String())
}

func TestEndStatusWithoutStatusLine(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf)

	l.EndStatus()
	l.Info("i")
	assert.Equal(t, "[03:04:05.006 INFO] i\n", buf.String())
}
