// Package logger_test contains tests for the logger package
package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/phrazzld/ziwei-api/internal/config"
	"github.com/phrazzld/ziwei-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSetupLevels verifies records below the configured level are dropped
// and the output is JSON.
func TestSetupLevels(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	testCases := []struct {
		name       string
		level      string
		emitDebug  bool
		emitInfo   bool
		emitErrors bool
	}{
		{name: "debug", level: "debug", emitDebug: true, emitInfo: true, emitErrors: true},
		{name: "info", level: "info", emitDebug: false, emitInfo: true, emitErrors: true},
		{name: "error", level: "ERROR", emitDebug: false, emitInfo: false, emitErrors: true},
		{name: "invalid falls back to info", level: "loud", emitDebug: false, emitInfo: true, emitErrors: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			log, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: tc.level}, &buf)
			require.NoError(t, err)
			require.NotNil(t, log)

			log.Debug("debug message")
			assert.Equal(t, tc.emitDebug, bytes.Contains(buf.Bytes(), []byte("debug message")))
			log.Info("info message")
			assert.Equal(t, tc.emitInfo, bytes.Contains(buf.Bytes(), []byte("info message")))
			log.Error("error message", "component", "test")
			assert.Equal(t, tc.emitErrors, bytes.Contains(buf.Bytes(), []byte("error message")))

			lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
			var entry map[string]any
			require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
			assert.Equal(t, "error message", entry["msg"])
			assert.Equal(t, "test", entry["component"])
		})
	}
}

// TestSetupSetsDefault verifies the configured logger becomes slog's default.
func TestSetupSetsDefault(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	var buf bytes.Buffer
	_, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "info"}, &buf)
	require.NoError(t, err)

	slog.Info("through default")
	assert.Contains(t, buf.String(), "through default")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	level, ok := logger.ParseLevel("Warn")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelWarn, level)

	level, ok = logger.ParseLevel("nope")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	stored := slog.New(slog.NewJSONHandler(&buf, nil))
	fallback := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))

	ctx := logger.WithLogger(context.Background(), stored)
	assert.Same(t, stored, logger.FromContext(ctx))
	assert.Same(t, stored, logger.FromContextOrDefault(ctx, fallback))

	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	assert.NotNil(t, logger.FromContext(context.Background()))
	assert.NotNil(t, logger.FromContextOrDefault(context.Background(), nil))
}
