package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasicLogging(t *testing.T) {
	var buf bytes.Buffer
	lg := NewLogger(WithOutput(&buf))

	lg.Info("info message")
	assert.Contains(t, buf.String(), "info")
	assert.Contains(t, buf.String(), "info message")
	buf.Reset()

	lg.Warn("warn %s", "message")
	assert.Contains(t, buf.String(), "warn message")
	buf.Reset()

	lg.Error("error message")
	assert.Contains(t, buf.String(), "error message")
	buf.Reset()

	// Debug suppressed at the default level
	lg.Debug("debug message")
	assert.Empty(t, buf.String())
}

func TestPackageLevelFields(t *testing.T) {
	var buf bytes.Buffer
	old := std
	std = NewLogger(WithOutput(&buf))
	defer func() { std = old }()

	LogWithFields(F("directory", "/tmp/in"), F("count", 3)).Info("organized")
	out := buf.String()
	assert.Contains(t, out, "organized")
	assert.Contains(t, out, "directory")
	assert.Contains(t, out, "/tmp/in")
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	old := std
	std = NewLogger(WithOutput(&buf))
	defer func() { std = old }()

	assert.Error(t, SetLevel("chatty"))

	assert.NoError(t, SetLevel("debug"))
	Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
	buf.Reset()

	SetDebug(false)
	Debug("hidden again")
	assert.Empty(t, buf.String())
}
