package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/shell"
	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
)

const saveTimeout = 60 * time.Second

// ErrEventStoreNotSnapshotCapable is returned by NewWrapper when the wrapped handler's store can't save snapshots.
var ErrEventStoreNotSnapshotCapable = errors.New("event store does not support snapshot operations")

// Wrapper is a snapshot-aware QueryHandler around a full-replay QueryHandler.
type Wrapper[Q shell.Query, R shell.QueryResult] struct {
	baseHandler      shell.QueryHandler[Q, R]
	eventStore       shell.QueriesEventsAndHandlesSnapshots
	projectFunc      shell.ProjectionFunc[Q, R]
	filterBuilder    shell.FilterBuilderFunc[Q]
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	contextualLogger shell.ContextualLogger
	logger           shell.Logger
}

// NewWrapper takes the store and the observability collectors from baseHandler.
func NewWrapper[Q shell.Query, R shell.QueryResult](
	baseHandler shell.QueryHandler[Q, R],
	projectFunc shell.ProjectionFunc[Q, R],
	filterBuilder shell.FilterBuilderFunc[Q],
) (*Wrapper[Q, R], error) {

	store := baseHandler.ExposeEventStore()

	snapshotStore, ok := store.(shell.QueriesEventsAndHandlesSnapshots)
	if !ok {
		return nil, errors.Join(
			ErrEventStoreNotSnapshotCapable,
			fmt.Errorf("store type %T", store),
		)
	}

	return &Wrapper[Q, R]{
		baseHandler:      baseHandler,
		eventStore:       snapshotStore,
		projectFunc:      projectFunc,
		filterBuilder:    filterBuilder,
		metricsCollector: baseHandler.ExposeMetricsCollector(),
		tracingCollector: baseHandler.ExposeTracingCollector(),
		contextualLogger: baseHandler.ExposeContextualLogger(),
		logger:           baseHandler.ExposeLogger(),
	}, nil
}

func (w *Wrapper[Q, R]) Handle(ctx context.Context, query Q) (R, error) {
	start := time.Now()
	ctx, span := shell.StartQuerySpan(ctx, w.tracingCollector, query.QueryType())

	if eligible, ok := any(query).(shell.SnapshotEligible); ok && !eligible.SnapshotEligible() {
		return w.fallback(ctx, query, start, span, shell.SnapshotReasonNotEligible)
	}

	filter := w.filterBuilder(query)

	snapshot, err := w.eventStore.LoadSnapshot(ctx, query.SnapshotType(), filter)
	if err != nil {
		w.logError(ctx, shell.LogMsgSnapshotLoadError, err)
		return w.fallback(ctx, query, start, span, shell.SnapshotReasonError)
	}

	if snapshot == nil {
		return w.fallback(ctx, query, start, span, shell.SnapshotReasonMiss)
	}

	capable, ok := filter.ReopenForSequenceFiltering().(eventstore.SequenceFilteringCapable)
	if !ok {
		return w.fallback(ctx, query, start, span, shell.SnapshotReasonIncompatibleFilter)
	}

	storableEvents, maxSeq, err := w.eventStore.Query(ctx, capable.WithSequenceNumberHigherThan(snapshot.SequenceNumber).Finalize())
	if err != nil {
		w.logError(ctx, shell.LogMsgIncrementalQueryError, err)
		return w.fallback(ctx, query, start, span, shell.SnapshotReasonIncrementalQueryError)
	}

	newEvents, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		w.logError(ctx, shell.LogMsgEventConversionError, err)
		return w.fallback(ctx, query, start, span, shell.SnapshotReasonUnmarshalError)
	}

	base, err := w.deserialize(snapshot)
	if err != nil {
		w.logError(ctx, shell.LogMsgSnapshotDeserializationError, err)
		return w.fallback(ctx, query, start, span, shell.SnapshotReasonDeserializeError)
	}

	// an empty incremental query reports 0 as its max sequence
	finalSeq := max(maxSeq, snapshot.SequenceNumber)
	result := w.projectFunc(newEvents, query, finalSeq, base)

	if len(newEvents) > 0 {
		w.save(ctx, query, filter, finalSeq, result)
	}

	shell.LogDebug(ctx, w.logger, w.contextualLogger, shell.LogMsgSnapshotHit,
		shell.LogAttrFromSequence, snapshot.SequenceNumber,
		shell.LogAttrToSequence, finalSeq,
		shell.LogAttrEventCount, len(newEvents))

	w.finish(ctx, query, start, span, shell.SnapshotReasonHit)

	return result, nil
}

// BuildSnapshotType returns the projection type the snapshots of query are saved under.
func (w *Wrapper[Q, R]) BuildSnapshotType(query Q) string {
	return query.SnapshotType()
}

func (w *Wrapper[Q, R]) ExposeEventStore() shell.QueriesEvents {
	return w.eventStore
}

func (w *Wrapper[Q, R]) ExposeMetricsCollector() shell.MetricsCollector {
	return w.metricsCollector
}

func (w *Wrapper[Q, R]) ExposeTracingCollector() shell.TracingCollector {
	return w.tracingCollector
}

func (w *Wrapper[Q, R]) ExposeContextualLogger() shell.ContextualLogger {
	return w.contextualLogger
}

func (w *Wrapper[Q, R]) ExposeLogger() shell.Logger {
	return w.logger
}

func (w *Wrapper[Q, R]) deserialize(snapshot *eventstore.Snapshot) (R, error) {
	var base R
	err := jsoniter.ConfigFastest.Unmarshal(snapshot.Data, &base)

	return base, err
}

// fallback replays the full history with the base handler. After a miss the result becomes the first snapshot.
func (w *Wrapper[Q, R]) fallback(
	ctx context.Context,
	query Q,
	start time.Time,
	span shell.SpanContext,
	reason string,
) (R, error) {

	shell.LogDebug(ctx, w.logger, w.contextualLogger, shell.LogMsgSnapshotFallback, shell.LogAttrReason, reason)

	result, err := w.baseHandler.Handle(ctx, query)
	if err != nil {
		status := shell.StatusFromError(err)
		shell.RecordQueryMetrics(ctx, w.metricsCollector, query.QueryType(), status, time.Since(start), reason)
		shell.FinishQuerySpan(w.tracingCollector, span, status, time.Since(start), err)

		return result, err
	}

	if reason == shell.SnapshotReasonMiss {
		w.save(ctx, query, w.filterBuilder(query), result.GetSequenceNumber(), result)
	}

	w.finish(ctx, query, start, span, reason)

	return result, nil
}

func (w *Wrapper[Q, R]) finish(ctx context.Context, query Q, start time.Time, span shell.SpanContext, reason string) {
	duration := time.Since(start)
	shell.RecordQueryMetrics(ctx, w.metricsCollector, query.QueryType(), shell.StatusSuccess, duration, reason)
	shell.FinishQuerySpan(w.tracingCollector, span, shell.StatusSuccess, duration, nil)
	shell.LogDebug(ctx, w.logger, w.contextualLogger, shell.LogMsgSnapshotQuerySuccess,
		shell.LogAttrQueryType, query.QueryType(),
		shell.LogAttrSnapshotStatus, reason,
		shell.LogAttrDurationMS, shell.ToMilliseconds(duration))
}

// save never fails the query, problems are only logged.
func (w *Wrapper[Q, R]) save(
	parentCtx context.Context,
	query Q,
	filter eventstore.Filter,
	sequenceNumber eventstore.MaxSequenceNumberUint,
	projection R,
) {

	ctx, cancel := context.WithTimeout(parentCtx, saveTimeout)
	defer cancel()

	data, err := jsoniter.ConfigFastest.Marshal(projection)
	if err != nil {
		w.logSaveError(ctx, "marshal", err)
		return
	}

	snapshot, err := eventstore.BuildSnapshot(query.SnapshotType(), filter.Hash(), sequenceNumber, data)
	if err != nil {
		w.logSaveError(ctx, "build", err)
		return
	}

	if err = w.eventStore.SaveSnapshot(ctx, snapshot); err != nil {
		w.logSaveError(ctx, "save", err)
		return
	}

	shell.LogDebug(ctx, w.logger, w.contextualLogger, shell.LogMsgSnapshotSaved, shell.LogAttrSequence, sequenceNumber)
}

func (w *Wrapper[Q, R]) logSaveError(ctx context.Context, operation string, err error) {
	shell.LogWarn(ctx, w.logger, w.contextualLogger, shell.LogMsgSnapshotSaveError,
		shell.LogAttrOperation, operation,
		shell.LogAttrError, err.Error())
}

func (w *Wrapper[Q, R]) logError(ctx context.Context, msg string, err error) {
	shell.LogWarn(ctx, w.logger, w.contextualLogger, msg, shell.LogAttrError, err.Error())
}
