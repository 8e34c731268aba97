package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/embedded"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/parsaloi/value-driven-domain-pattern/eventstore/oteladapters"
)

type recordingLogger struct {
	embedded.Logger
	records []log.Record
}

func (l *recordingLogger) Emit(_ context.Context, record log.Record) {
	l.records = append(l.records, record)
}

func (l *recordingLogger) Enabled(context.Context, log.EnabledParameters) bool {
	return true
}

func Test_SlogBridgeLoggerWithHandler_AddsTraceIDsInsideASpan(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(
		slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	provider := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	ctx, span := provider.Tracer("test").Start(context.Background(), "command.register_attendee")

	// act
	logger.InfoContext(ctx, "attendee registered", "event_id", "e-1")
	span.End()

	// assert
	assert.Contains(t, buf.String(), `"msg":"attendee registered"`)
	assert.Contains(t, buf.String(), `"event_id":"e-1"`)
	assert.Contains(t, buf.String(), `"trace_id":"`+span.SpanContext().TraceID().String()+`"`)
	assert.Contains(t, buf.String(), `"span_id":"`+span.SpanContext().SpanID().String()+`"`)
}

func Test_SlogBridgeLoggerWithHandler_WithoutSpan(t *testing.T) {
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(slog.NewJSONHandler(&buf, nil))

	logger.WarnContext(context.Background(), "slow query")
	logger.DebugContext(context.Background(), "filtered out by level")

	assert.Contains(t, buf.String(), "slow query")
	assert.NotContains(t, buf.String(), "trace_id")
	assert.NotContains(t, buf.String(), "filtered out by level")
}

func Test_TraceHandler_KeepsGroupsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(oteladapters.NewTraceHandler(slog.NewJSONHandler(&buf, nil))).
		With("component", "cli").
		WithGroup("op")

	logger.Info("done", "count", 2)

	assert.Contains(t, buf.String(), `"component":"cli"`)
	assert.Contains(t, buf.String(), `"op":{"count":2}`)
}

func Test_OTelLogger_EmitsRecordsWithSeverityAndAttributes(t *testing.T) {
	// arrange
	recorder := &recordingLogger{}
	logger := oteladapters.NewOTelLogger(recorder)

	// act
	logger.DebugContext(context.Background(), "debug")
	logger.InfoContext(context.Background(), "info", "event_count", 3, "engine", "sqlite", "dangling")
	logger.WarnContext(context.Background(), "warn")
	logger.ErrorContext(context.Background(), "error", 42, "not a key")

	// assert
	require.Len(t, recorder.records, 4)
	assert.Equal(t, log.SeverityDebug, recorder.records[0].Severity())
	assert.Equal(t, log.SeverityError, recorder.records[3].Severity())
	assert.Equal(t, "info", recorder.records[1].Body().AsString())

	attrs := map[string]log.Value{}
	recorder.records[1].WalkAttributes(func(kv log.KeyValue) bool {
		attrs[kv.Key] = kv.Value
		return true
	})
	assert.Len(t, attrs, 2)
	assert.Equal(t, int64(3), attrs["event_count"].AsInt64())
	assert.Equal(t, "sqlite", attrs["engine"].AsString())
	assert.Equal(t, 0, recorder.records[3].AttributesLen())
}
