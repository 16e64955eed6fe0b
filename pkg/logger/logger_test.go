package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{TraceLevel, "TRACE"},
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(999), "UNKNOWN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.level.String())
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, TraceLevel, ParseLevel("trace"))
	assert.Equal(t, DebugLevel, ParseLevel(" DEBUG "))
	assert.Equal(t, WarnLevel, ParseLevel("warning"))
	assert.Equal(t, ErrorLevel, ParseLevel("error"))
	assert.Equal(t, InfoLevel, ParseLevel("bogus"))
}

func TestPrettyOutputKeepsFieldOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Initialize(Config{Level: InfoLevel, Component: "cwt", Output: &buf}))

	Info("injected header", TraceID("abc123"), Path("src/a.go"), Int("bytes", 42))

	line := buf.String()
	assert.Contains(t, line, "[INFO] cwt: injected header")
	assert.Contains(t, line, "{trace_id=abc123, path=src/a.go, bytes=42}")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Initialize(Config{Level: WarnLevel, Output: &buf}))

	Info("dropped")
	Debug("dropped too")
	Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
	assert.True(t, Enabled(ErrorLevel))
	assert.False(t, Enabled(InfoLevel))
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Initialize(Config{Level: InfoLevel, JSON: true, Component: "cwt", Output: &buf}))

	Error("write failed", Path("x.java"), Err(errors.New("disk full")))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "write failed", entry["message"])
	fields, ok := entry["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "x.java", fields["path"])
	assert.Equal(t, "disk full", fields["error"])
}

func TestNoOpMarker(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Initialize(Config{Level: InfoLevel, NoOp: true, Output: &buf}))

	Info("would inject")
	assert.Contains(t, buf.String(), "[NO-OP] would inject")
}

func TestSetOutput(t *testing.T) {
	var first, second bytes.Buffer
	require.NoError(t, Initialize(Config{Level: InfoLevel, Output: &first}))

	SetOutput(&second)
	Info("moved")

	assert.Empty(t, first.String())
	assert.Contains(t, second.String(), "moved")
}

func TestFieldHelpers(t *testing.T) {
	assert.Equal(t, Field{Key: "k", Value: "v"}, String("k", "v"))
	assert.Equal(t, Field{Key: "exts", Value: "[java,cpp]"}, Strings("exts", []string{"java", "cpp"}))
	assert.Equal(t, Field{Key: "ok", Value: true}, Bool("ok", true))
	assert.Equal(t, Field{Key: "error", Value: "<nil>"}, Err(nil))
}
