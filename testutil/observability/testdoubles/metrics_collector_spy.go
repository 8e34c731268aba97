package testdoubles

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
)

// SpyMetricRecord is one recorded metrics call.
type SpyMetricRecord struct {
	Kind     string // "duration", "counter" or "value"
	Metric   string
	Duration time.Duration
	Value    float64
	Labels   map[string]string
	Context  context.Context
}

// MetricsCollectorSpy records calls of both MetricsCollector and ContextualMetricsCollector.
type MetricsCollectorSpy struct {
	mu          sync.Mutex
	records     []SpyMetricRecord
	recordCalls bool
}

func NewMetricsCollectorSpy(recordCalls bool) *MetricsCollectorSpy {
	return &MetricsCollectorSpy{recordCalls: recordCalls}
}

func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.record(SpyMetricRecord{Kind: "duration", Metric: metric, Duration: duration, Labels: labels})
}

func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.record(SpyMetricRecord{Kind: "counter", Metric: metric, Value: 1, Labels: labels})
}

func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.record(SpyMetricRecord{Kind: "value", Metric: metric, Value: value, Labels: labels})
}

func (s *MetricsCollectorSpy) RecordDurationContext(ctx context.Context, metric string, duration time.Duration, labels map[string]string) {
	s.record(SpyMetricRecord{Kind: "duration", Metric: metric, Duration: duration, Labels: labels, Context: ctx})
}

func (s *MetricsCollectorSpy) IncrementCounterContext(ctx context.Context, metric string, labels map[string]string) {
	s.record(SpyMetricRecord{Kind: "counter", Metric: metric, Value: 1, Labels: labels, Context: ctx})
}

func (s *MetricsCollectorSpy) RecordValueContext(ctx context.Context, metric string, value float64, labels map[string]string) {
	s.record(SpyMetricRecord{Kind: "value", Metric: metric, Value: value, Labels: labels, Context: ctx})
}

func (s *MetricsCollectorSpy) record(r SpyMetricRecord) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, r)
}

// Records returns a copy of all records.
func (s *MetricsCollectorSpy) Records() []SpyMetricRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.records)
}

func (s *MetricsCollectorSpy) has(kind, metric string) bool {
	for _, r := range s.Records() {
		if r.Kind == kind && r.Metric == metric {
			return true
		}
	}

	return false
}

func (s *MetricsCollectorSpy) HasDurationRecord(metric string) bool { return s.has("duration", metric) }
func (s *MetricsCollectorSpy) HasCounterRecord(metric string) bool  { return s.has("counter", metric) }
func (s *MetricsCollectorSpy) HasValueRecord(metric string) bool    { return s.has("value", metric) }

// HasRecordWithLabel reports whether metric was recorded with label key=val.
func (s *MetricsCollectorSpy) HasRecordWithLabel(metric, key, val string) bool {
	for _, r := range s.Records() {
		if r.Metric == metric && r.Labels[key] == val {
			return true
		}
	}

	return false
}

var _ eventstore.ContextualMetricsCollector = (*MetricsCollectorSpy)(nil)
