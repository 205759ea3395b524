package logger

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level Level) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewLogger(&Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     buf,
	}), buf
}

func TestInfoWritesStructuredFields(t *testing.T) {
	l, buf := newBufferLogger(InfoLevel)

	l.Info("starting server", "port", 8080)

	out := buf.String()
	assert.Contains(t, out, `"level":"info"`)
	assert.Contains(t, out, `"message":"starting server"`)
	assert.Contains(t, out, `"port":8080`)
}

func TestErrorIncludesCause(t *testing.T) {
	l, buf := newBufferLogger(InfoLevel)

	l.Error(errors.New("dial timeout"), "failed to send notification email", "to", "jane@example.com")

	out := buf.String()
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, `"error":"dial timeout"`)
	assert.Contains(t, out, `"to":"jane@example.com"`)
}

func TestLevelFiltersLowerEvents(t *testing.T) {
	l, buf := newBufferLogger(WarnLevel)

	l.Info("dropped")
	l.Warn("kept")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept")
}

func TestWithFieldsCarriesContext(t *testing.T) {
	l, buf := newBufferLogger(InfoLevel)

	l.WithFields(map[string]interface{}{"component": "store"}).Info("connected")

	assert.Contains(t, buf.String(), `"component":"store"`)
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, DebugLevel, level)

	_, err = ParseLevel("chatty")
	assert.Error(t, err)
}
