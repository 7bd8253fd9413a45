// internal/infrastructure/logger/logger_test.go
package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var logEntry map[string]interface{}
	line := strings.TrimSpace(buf.String())
	require.NoError(t, json.Unmarshal([]byte(line), &logEntry))
	return logEntry
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	logger.Debug("Debug message", map[string]interface{}{
		"key1": "value1",
	})

	logEntry := decodeLine(t, &buf)
	assert.Equal(t, "debug", logEntry["level"])
	assert.Equal(t, "Debug message", logEntry["message"])
	assert.Equal(t, "value1", logEntry["key1"])
	assert.Contains(t, logEntry, "timestamp")
	assert.Contains(t, logEntry["file"], "logger_test.go")
	assert.Contains(t, logEntry, "line")

	// Levels below the threshold are dropped
	buf.Reset()
	warnLogger := NewJSONLogger(&buf, WarnLevel)
	warnLogger.Debug("Should not appear", nil)
	warnLogger.Info("Should not appear either", nil)
	assert.Equal(t, "", buf.String())

	warnLogger.Warn("Warning message", nil)
	assert.Contains(t, buf.String(), "Warning message")

	buf.Reset()
	fieldLogger := logger.WithField("context", "test")
	fieldLogger.Info("With field", nil)

	logEntry = decodeLine(t, &buf)
	assert.Equal(t, "test", logEntry["context"])
	assert.Equal(t, "With field", logEntry["message"])

	buf.Reset()
	fieldsLogger := logger.WithFields(map[string]interface{}{
		"app":     "expense-tracker",
		"version": "1.0.0",
	})
	fieldsLogger.Info("With fields", map[string]interface{}{"extra": 1})

	logEntry = decodeLine(t, &buf)
	assert.Equal(t, "expense-tracker", logEntry["app"])
	assert.Equal(t, "1.0.0", logEntry["version"])
	assert.Equal(t, float64(1), logEntry["extra"])
	assert.Equal(t, "With fields", logEntry["message"])

	// Context fields do not leak back into the parent logger
	buf.Reset()
	logger.Info("Parent", nil)
	logEntry = decodeLine(t, &buf)
	assert.NotContains(t, logEntry, "app")

	buf.Reset()
	infoLogger := NewJSONLogger(&buf, InfoLevel)
	infoLogger.Debug("Debug", nil)
	assert.Equal(t, "", buf.String())

	infoLogger.Error("Error", nil)
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("debug"))
	assert.Equal(t, WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, ErrorLevel, ParseLevel("error"))
	assert.Equal(t, InfoLevel, ParseLevel("verbose"))
	assert.Equal(t, InfoLevel, ParseLevel(""))
}

func TestDefaultLogger(t *testing.T) {
	originalLogger := GetDefaultLogger()
	defer SetDefaultLogger(originalLogger)

	var buf bytes.Buffer
	SetDefaultLogger(NewJSONLogger(&buf, DebugLevel))

	Info("through default", map[string]interface{}{"k": "v"})
	logEntry := decodeLine(t, &buf)
	assert.Equal(t, "through default", logEntry["message"])
	assert.Equal(t, "v", logEntry["k"])

	// The call site is reported, not the global wrapper
	assert.True(t, strings.HasSuffix(logEntry["file"].(string), "logger_test.go"))

	// nil is ignored
	SetDefaultLogger(nil)
	assert.NotNil(t, GetDefaultLogger())
}
