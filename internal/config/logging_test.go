package config

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelDebug, NormalizeLogLevel(" Debug "))
	assert.Equal(t, LogLevelWarn, NormalizeLogLevel("WARNING"))
	assert.Equal(t, LogLevelInfo, NormalizeLogLevel("verbose"))
	assert.Equal(t, slog.LevelError, LogLevelError.Slog())
	assert.Equal(t, slog.LevelInfo, LogLevel("").Slog())
}

func TestNormalizeLogFormat(t *testing.T) {
	assert.Equal(t, LogFormatJSON, NormalizeLogFormat("JSON"))
	assert.Equal(t, LogFormatText, NormalizeLogFormat(""))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := LoggingConfig{Level: "warn", Format: "json"}.NewLogger(&buf, false)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	LoggingConfig{Level: "error"}.NewLogger(&buf, true).Debug("verbose wins")
	assert.Contains(t, buf.String(), "level=DEBUG")
}
