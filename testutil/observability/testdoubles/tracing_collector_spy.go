package testdoubles

import (
	"context"
	"maps"
	"sync"

	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
)

// SpySpanRecord is a started span and, once finished, its final status and attributes.
type SpySpanRecord struct {
	Name     string
	Attrs    map[string]string
	Status   string
	Finished bool
}

// SpanContextSpy is the eventstore.SpanContext handed out by TracingCollectorSpy.
type SpanContextSpy struct {
	spy   *TracingCollectorSpy
	index int
}

func (s *SpanContextSpy) SetStatus(status string) {
	s.spy.mu.Lock()
	defer s.spy.mu.Unlock()

	s.spy.spans[s.index].Status = status
}

func (s *SpanContextSpy) AddAttribute(key, value string) {
	s.spy.mu.Lock()
	defer s.spy.mu.Unlock()

	s.spy.spans[s.index].Attrs[key] = value
}

// TracingCollectorSpy records spans.
type TracingCollectorSpy struct {
	mu          sync.Mutex
	spans       []SpySpanRecord
	recordCalls bool
}

func NewTracingCollectorSpy(recordCalls bool) *TracingCollectorSpy {
	return &TracingCollectorSpy{recordCalls: recordCalls}
}

func (s *TracingCollectorSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, eventstore.SpanContext) {
	if !s.recordCalls {
		return ctx, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.spans = append(s.spans, SpySpanRecord{Name: name, Attrs: maps.Clone(attrs)})
	if s.spans[len(s.spans)-1].Attrs == nil {
		s.spans[len(s.spans)-1].Attrs = make(map[string]string)
	}

	return ctx, &SpanContextSpy{spy: s, index: len(s.spans) - 1}
}

func (s *TracingCollectorSpy) FinishSpan(spanCtx eventstore.SpanContext, status string, attrs map[string]string) {
	spy, ok := spanCtx.(*SpanContextSpy)
	if !ok || spy == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	span := &s.spans[spy.index]
	span.Status = status
	span.Finished = true
	maps.Copy(span.Attrs, attrs)
}

// Spans returns a copy of all spans.
func (s *TracingCollectorSpy) Spans() []SpySpanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]SpySpanRecord, len(s.spans))
	for i, span := range s.spans {
		span.Attrs = maps.Clone(span.Attrs)
		out[i] = span
	}

	return out
}

func (s *TracingCollectorSpy) HasSpan(name string) bool {
	for _, span := range s.Spans() {
		if span.Name == name {
			return true
		}
	}

	return false
}

// HasFinishedSpanWithStatus reports whether span name was finished with status.
func (s *TracingCollectorSpy) HasFinishedSpanWithStatus(name, status string) bool {
	for _, span := range s.Spans() {
		if span.Name == name && span.Finished && span.Status == status {
			return true
		}
	}

	return false
}

var _ eventstore.TracingCollector = (*TracingCollectorSpy)(nil)
