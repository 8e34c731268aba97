package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/parsaloi/value-driven-domain-pattern/eventstore/oteladapters"
)

func newTracingCollector(t *testing.T) (*oteladapters.TracingCollector, *tracetest.InMemoryExporter) {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	return oteladapters.NewTracingCollector(provider.Tracer("test")), exporter
}

func spanAttribute(span tracetest.SpanStub, key string) (string, bool) {
	for _, attr := range span.Attributes {
		if string(attr.Key) == key {
			return attr.Value.AsString(), true
		}
	}

	return "", false
}

func Test_TracingCollector_StartAndFinishSpan(t *testing.T) {
	// arrange
	collector, exporter := newTracingCollector(t)

	// act
	ctx, spanCtx := collector.StartSpan(context.Background(), "eventstore.query", map[string]string{"operation": "query"})
	spanCtx.AddAttribute("event_count", "3")
	collector.FinishSpan(spanCtx, "success", map[string]string{"engine": "memory"})

	// assert
	assert.True(t, trace.SpanContextFromContext(ctx).IsValid())
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "eventstore.query", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)

	for key, expected := range map[string]string{"operation": "query", "event_count": "3", "engine": "memory"} {
		actual, ok := spanAttribute(spans[0], key)
		assert.True(t, ok, key)
		assert.Equal(t, expected, actual)
	}
}

func Test_TracingCollector_StatusMapping(t *testing.T) {
	tests := []struct {
		status   string
		expected codes.Code
	}{
		{status: "success", expected: codes.Ok},
		{status: "idempotent", expected: codes.Ok},
		{status: "error", expected: codes.Error},
		{status: "canceled", expected: codes.Error},
		{status: "timeout", expected: codes.Error},
		{status: "conflict", expected: codes.Error},
		{status: "something_else", expected: codes.Unset},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			collector, exporter := newTracingCollector(t)

			_, spanCtx := collector.StartSpan(context.Background(), "command.handle", nil)
			collector.FinishSpan(spanCtx, tt.status, nil)

			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.expected, spans[0].Status.Code)
		})
	}
}

func Test_TracingCollector_ChildSpansShareTheTrace(t *testing.T) {
	collector, exporter := newTracingCollector(t)

	ctx, parent := collector.StartSpan(context.Background(), "command.handle", nil)
	_, child := collector.StartSpan(ctx, "eventstore.append", nil)
	collector.FinishSpan(child, "success", nil)
	collector.FinishSpan(parent, "success", nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, spans[1].SpanContext.TraceID(), spans[0].SpanContext.TraceID())
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
}

type foreignSpanContext struct{}

func (foreignSpanContext) SetStatus(string)            {}
func (foreignSpanContext) AddAttribute(string, string) {}

func Test_TracingCollector_IgnoresForeignSpanContexts(t *testing.T) {
	collector, exporter := newTracingCollector(t)

	assert.NotPanics(t, func() { collector.FinishSpan(foreignSpanContext{}, "success", nil) })
	assert.Empty(t, exporter.GetSpans())
}
