package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/glekoz/rvdesk/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestHandler_AddsContextData(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, nil)

	ctx := logger.WithRequestID(context.Background(), "req-1")
	ctx = logger.WithEntity(ctx, "parts")
	ctx = logger.WithDetails(ctx, "page", 2)
	log.InfoContext(ctx, "listed")

	line := decodeLine(t, &buf)
	assert.Equal(t, "listed", line["msg"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "parts", line["entity"])
	assert.Equal(t, map[string]any{"page": float64(2)}, line["details"])
}

func TestHandler_WithAttrsKeepsContextData(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}).With("component", "importer")

	log.DebugContext(logger.WithRequestID(context.Background(), "abc"), "scan")

	line := decodeLine(t, &buf)
	assert.Equal(t, "importer", line["component"])
	assert.Equal(t, "abc", line["request_id"])
}

func TestHandler_NoContextData(t *testing.T) {
	var buf bytes.Buffer
	logger.New(&buf, nil).Info("plain")

	line := decodeLine(t, &buf)
	assert.NotContains(t, line, "request_id")
	assert.NotContains(t, line, "details")
}

func TestWithDetails_DoesNotLeakIntoParent(t *testing.T) {
	parent := logger.WithDetails(context.Background(), "a", 1)
	child := logger.WithDetails(parent, "b", 2)

	var buf bytes.Buffer
	logger.New(&buf, nil).InfoContext(parent, "parent")

	line := decodeLine(t, &buf)
	assert.Equal(t, map[string]any{"a": float64(1)}, line["details"])
	assert.Equal(t, "", logger.RequestID(child))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("loud"))
}
