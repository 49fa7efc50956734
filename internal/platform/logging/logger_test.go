package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &out))
	return out
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel(" warning "))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
}

func TestLogger_WritesKeyValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, LevelInfo).With("component", "importer")

	logger.Warn("rows skipped", "skipped", 3, "error", errors.New("bad row"))

	line := decodeLine(t, &buf)
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, "rows skipped", line["msg"])
	assert.Equal(t, "importer", line["component"])
	assert.EqualValues(t, 3, line["skipped"])
	assert.Equal(t, "bad row", line["error"])
}

func TestLogger_BelowLevelIsDropped(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, LevelWarn).Info("ignored")

	assert.Zero(t, buf.Len())
}

func TestLogger_ContextAddsTraceIDs(t *testing.T) {
	t.Parallel()

	traceID, _ := sdktrace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := sdktrace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := sdktrace.ContextWithSpanContext(context.Background(), sdktrace.NewSpanContext(sdktrace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: sdktrace.FlagsSampled,
	}))

	var buf bytes.Buffer
	New(&buf, LevelDebug).InfoContext(ctx, "imported")

	line := decodeLine(t, &buf)
	assert.Equal(t, traceID.String(), line["trace_id"])
	assert.Equal(t, spanID.String(), line["span_id"])
}

func TestLogger_NilReceiverFallsBackToDefault(t *testing.T) {
	var logger *Logger
	assert.NotPanics(t, func() {
		logger.Info("nothing")
		logger.ErrorContext(context.Background(), "nothing")
	})
}

func TestLogger_FieldTypes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, LevelInfo).Info("batch done",
		"took", 1500*time.Millisecond,
		zap.Int("rows", 12),
		"dangling",
	)

	line := decodeLine(t, &buf)
	assert.EqualValues(t, 1500, line["took"])
	assert.EqualValues(t, 12, line["rows"])
	assert.Contains(t, line, "dangling")
	assert.Nil(t, line["dangling"])
}

func TestLogger_CallerPointsAtCallSite(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, LevelInfo).Info("here")

	line := decodeLine(t, &buf)
	assert.Contains(t, line["caller"], "logger_test.go")
}

func TestLogger_SyncIsShared(t *testing.T) {
	t.Parallel()

	base := New(&bytes.Buffer{}, LevelInfo)
	child := base.With("component", "statsimport")
	assert.NoError(t, child.Sync())
	assert.True(t, base.synced.Load())
	assert.NoError(t, base.Sync())
}
