// Package observer holds the logging, metrics and tracing plumbing shared by the engines.
package observer

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
)

const (
	MetricQueryDuration        = "eventstore_query_duration_seconds"
	MetricAppendDuration       = "eventstore_append_duration_seconds"
	MetricSnapshotDuration     = "eventstore_snapshot_duration_seconds"
	MetricEventsQueried        = "eventstore_events_queried_total"
	MetricEventsAppended       = "eventstore_events_appended_total"
	MetricConcurrencyConflicts = "eventstore_concurrency_conflicts_total"
	MetricDatabaseErrors       = "eventstore_database_errors_total"

	SpanNameQuery        = "eventstore.query"
	SpanNameAppend       = "eventstore.append"
	SpanNameSaveSnapshot = "eventstore.save_snapshot"
	SpanNameLoadSnapshot = "eventstore.load_snapshot"

	OperationQuery          = "query"
	OperationAppend         = "append"
	OperationSaveSnapshot   = "save_snapshot"
	OperationLoadSnapshot   = "load_snapshot"
	OperationDeleteSnapshot = "delete_snapshot"

	StatusSuccess = "success"
	StatusError   = "error"

	AttrOperation    = "operation"
	AttrStatus       = "status"
	AttrEngine       = "engine"
	AttrErrorType    = "error_type"
	AttrEventCount   = "event_count"
	AttrEventType    = "event_type"
	AttrMaxSequence  = "max_sequence"
	AttrExpectedSeq  = "expected_sequence"
	AttrDurationMS   = "duration_ms"
	AttrQuery        = "query"
	AttrError        = "error"
	AttrProjection   = "projection_type"
	AttrConflictType = "conflict_type"

	ErrorTypeBuildQuery   = "build_query"
	ErrorTypeDatabase     = "database"
	ErrorTypeScan         = "row_scan"
	ErrorTypeBuildEvent   = "build_storable_event"
	ErrorTypeConcurrency  = "concurrency_conflict"
	ErrorTypeRowsAffected = "rows_affected"
	ErrorTypeSnapshot     = "snapshot"

	logMsgOperation = "eventstore operation: "
	logMsgSQL       = "executed sql for: "
)

// Observer is embedded by the engines. All collectors are optional.
type Observer struct {
	Engine           string
	Logger           eventstore.Logger
	ContextualLogger eventstore.ContextualLogger
	Metrics          eventstore.MetricsCollector
	Tracing          eventstore.TracingCollector
}

// Operation tracks one engine call from start to finish.
type Operation struct {
	o     Observer
	ctx   context.Context
	name  string
	span  eventstore.SpanContext
	start time.Time
}

// Start opens a span for the operation and starts the clock.
func (o Observer) Start(ctx context.Context, operation string, spanName string, attrs map[string]string) (*Operation, context.Context) {
	spanAttrs := map[string]string{AttrOperation: operation, AttrEngine: o.Engine}
	for k, v := range attrs {
		spanAttrs[k] = v
	}

	var span eventstore.SpanContext
	if o.Tracing != nil {
		ctx, span = o.Tracing.StartSpan(ctx, spanName, spanAttrs)
	}

	return &Operation{o: o, ctx: ctx, name: operation, span: span, start: time.Now()}, ctx
}

// Elapsed returns the time since Start.
func (op *Operation) Elapsed() time.Duration {
	return time.Since(op.start)
}

// Succeed finishes the operation. A non-negative count is recorded as events queried/appended.
func (op *Operation) Succeed(durationMetric string, countMetric string, count int, attrs map[string]string) {
	duration := op.Elapsed()
	op.o.recordDuration(op.ctx, durationMetric, duration, op.name, StatusSuccess)

	if countMetric != "" {
		op.o.recordValue(op.ctx, countMetric, float64(count), op.name, StatusSuccess)
	}

	op.finishSpan(StatusSuccess, duration, attrs)
}

// Fail finishes the operation as failed and logs err.
func (op *Operation) Fail(durationMetric string, errorType string, err error, args ...any) {
	duration := op.Elapsed()
	op.o.recordDuration(op.ctx, durationMetric, duration, op.name, StatusError)
	op.o.incrementCounter(op.ctx, MetricDatabaseErrors, map[string]string{
		AttrOperation: op.name,
		AttrStatus:    StatusError,
		AttrErrorType: errorType,
	})
	op.o.LogError(op.ctx, "eventstore "+op.name+" failed", err, append([]any{AttrErrorType, errorType}, args...)...)
	op.finishSpan(StatusError, duration, map[string]string{AttrErrorType: errorType})
}

// Conflict finishes an append that lost the optimistic concurrency check.
func (op *Operation) Conflict(expectedEvents int, expectedSequence eventstore.MaxSequenceNumberUint) {
	duration := op.Elapsed()
	op.o.recordDuration(op.ctx, MetricAppendDuration, duration, op.name, StatusError)
	op.o.incrementCounter(op.ctx, MetricConcurrencyConflicts, map[string]string{
		AttrOperation:    op.name,
		AttrConflictType: "concurrency",
	})
	op.o.LogInfo(op.ctx, "concurrency conflict detected",
		AttrEventCount, expectedEvents,
		AttrExpectedSeq, expectedSequence)
	op.finishSpan(StatusError, duration, map[string]string{AttrErrorType: ErrorTypeConcurrency})
}

func (op *Operation) finishSpan(status string, duration time.Duration, attrs map[string]string) {
	if op.o.Tracing == nil || op.span == nil {
		return
	}

	op.span.AddAttribute(AttrDurationMS, strconv.FormatFloat(ToMilliseconds(duration), 'f', 2, 64))
	op.o.Tracing.FinishSpan(op.span, status, attrs)
}

// LogSQL logs an executed statement at debug level.
func (o Observer) LogSQL(ctx context.Context, action string, sqlQuery string, duration time.Duration) {
	args := []any{AttrDurationMS, ToMilliseconds(duration), AttrQuery, sqlQuery}

	switch {
	case o.ContextualLogger != nil:
		o.ContextualLogger.DebugContext(ctx, logMsgSQL+action, args...)
	case o.Logger != nil:
		o.Logger.Debug(logMsgSQL+action, args...)
	}
}

// LogOperation logs a completed operation at info level.
func (o Observer) LogOperation(ctx context.Context, action string, args ...any) {
	o.LogInfo(ctx, logMsgOperation+action, args...)
}

func (o Observer) LogInfo(ctx context.Context, msg string, args ...any) {
	switch {
	case o.ContextualLogger != nil:
		o.ContextualLogger.InfoContext(ctx, msg, args...)
	case o.Logger != nil:
		o.Logger.Info(msg, args...)
	}
}

func (o Observer) LogWarn(ctx context.Context, msg string, args ...any) {
	switch {
	case o.ContextualLogger != nil:
		o.ContextualLogger.WarnContext(ctx, msg, args...)
	case o.Logger != nil:
		o.Logger.Warn(msg, args...)
	}
}

func (o Observer) LogError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := append([]any{AttrError, err.Error()}, args...)

	switch {
	case o.ContextualLogger != nil:
		o.ContextualLogger.ErrorContext(ctx, msg, allArgs...)
	case o.Logger != nil:
		o.Logger.Error(msg, allArgs...)
	}
}

func (o Observer) recordDuration(ctx context.Context, metric string, d time.Duration, operation, status string) {
	if o.Metrics == nil {
		return
	}

	labels := map[string]string{AttrOperation: operation, AttrStatus: status}
	if c, ok := o.Metrics.(eventstore.ContextualMetricsCollector); ok {
		c.RecordDurationContext(ctx, metric, d, labels)
		return
	}

	o.Metrics.RecordDuration(metric, d, labels)
}

func (o Observer) recordValue(ctx context.Context, metric string, v float64, operation, status string) {
	if o.Metrics == nil {
		return
	}

	labels := map[string]string{AttrOperation: operation, AttrStatus: status}
	if c, ok := o.Metrics.(eventstore.ContextualMetricsCollector); ok {
		c.RecordValueContext(ctx, metric, v, labels)
		return
	}

	o.Metrics.RecordValue(metric, v, labels)
}

func (o Observer) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if o.Metrics == nil {
		return
	}

	if c, ok := o.Metrics.(eventstore.ContextualMetricsCollector); ok {
		c.IncrementCounterContext(ctx, metric, labels)
		return
	}

	o.Metrics.IncrementCounter(metric, labels)
}

// ToMilliseconds converts d to milliseconds rounded to 3 decimal places.
func ToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
