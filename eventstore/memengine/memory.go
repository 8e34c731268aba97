// Package memengine is an in-process event store engine.
//
// It implements the same contract as the database engines: Query and Append on "dynamic event streams"
// with optimistic concurrency, plus snapshot storage. It is used by tests and by throwaway CLI sessions.
package memengine

import (
	"context"
	"errors"
	"slices"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
	"github.com/parsaloi/value-driven-domain-pattern/eventstore/internal/observer"
)

var ErrEventStoreClosed = errors.New("event store is closed")

type storedEvent struct {
	event          eventstore.StorableEvent
	payload        map[string]any
	sequenceNumber eventstore.MaxSequenceNumberUint
}

type snapshotKey struct {
	projectionType string
	filterHash     string
}

// EventStore keeps all events in a slice ordered by sequence number.
type EventStore struct {
	mu        sync.RWMutex
	events    []storedEvent
	snapshots map[snapshotKey]eventstore.Snapshot
	closed    bool
	observer  observer.Observer
}

// Option configures an EventStore.
type Option func(*EventStore) error

func WithLogger(logger eventstore.Logger) Option {
	return func(es *EventStore) error {
		es.observer.Logger = logger
		return nil
	}
}

func WithContextualLogger(logger eventstore.ContextualLogger) Option {
	return func(es *EventStore) error {
		es.observer.ContextualLogger = logger
		return nil
	}
}

func WithMetrics(collector eventstore.MetricsCollector) Option {
	return func(es *EventStore) error {
		es.observer.Metrics = collector
		return nil
	}
}

func WithTracing(collector eventstore.TracingCollector) Option {
	return func(es *EventStore) error {
		es.observer.Tracing = collector
		return nil
	}
}

// NewEventStore creates an empty EventStore.
func NewEventStore(options ...Option) (*EventStore, error) {
	es := &EventStore{
		snapshots: make(map[snapshotKey]eventstore.Snapshot),
		observer:  observer.Observer{Engine: "memory"},
	}

	for _, option := range options {
		if err := option(es); err != nil {
			return nil, err
		}
	}

	return es, nil
}

// Query returns the events matching filter in sequence order and the highest matching sequence number.
func (es *EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	op, ctx := es.observer.Start(ctx, observer.OperationQuery, observer.SpanNameQuery, nil)

	if err := ctx.Err(); err != nil {
		op.Fail(observer.MetricQueryDuration, observer.ErrorTypeDatabase, err)
		return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, err)
	}

	es.mu.RLock()
	defer es.mu.RUnlock()

	if es.closed {
		op.Fail(observer.MetricQueryDuration, observer.ErrorTypeDatabase, ErrEventStoreClosed)
		return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, ErrEventStoreClosed)
	}

	eventStream := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for _, stored := range es.events {
		if !matches(filter, stored) {
			continue
		}

		eventStream = append(eventStream, stored.event)
		maxSequenceNumber = stored.sequenceNumber
	}

	op.Succeed(observer.MetricQueryDuration, observer.MetricEventsQueried, len(eventStream), nil)
	es.observer.LogOperation(ctx, "query completed",
		observer.AttrEventCount, len(eventStream),
		observer.AttrDurationMS, observer.ToMilliseconds(op.Elapsed()))

	return eventStream, maxSequenceNumber, nil
}

// Append appends the events atomically if the max sequence number of the stream selected by filter
// still equals expectedMaxSequenceNumber, otherwise it returns eventstore.ErrConcurrencyConflict.
func (es *EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	allEvents := append(eventstore.StorableEvents{event}, additionalEvents...)

	op, ctx := es.observer.Start(ctx, observer.OperationAppend, observer.SpanNameAppend, map[string]string{
		observer.AttrEventType: event.EventType,
	})

	if err := ctx.Err(); err != nil {
		op.Fail(observer.MetricAppendDuration, observer.ErrorTypeDatabase, err)
		return errors.Join(eventstore.ErrAppendingEventFailed, err)
	}

	decoded := make([]map[string]any, 0, len(allEvents))
	for _, e := range allEvents {
		payload, err := decodePayload(e.PayloadJSON)
		if err != nil {
			op.Fail(observer.MetricAppendDuration, observer.ErrorTypeBuildEvent, err, observer.AttrEventType, e.EventType)
			return errors.Join(eventstore.ErrAppendingEventFailed, eventstore.ErrInvalidPayloadJSON, err)
		}

		decoded = append(decoded, payload)
	}

	es.mu.Lock()
	defer es.mu.Unlock()

	if es.closed {
		op.Fail(observer.MetricAppendDuration, observer.ErrorTypeDatabase, ErrEventStoreClosed)
		return errors.Join(eventstore.ErrAppendingEventFailed, ErrEventStoreClosed)
	}

	if es.currentMaxSequenceNumber(filter) != expectedMaxSequenceNumber {
		op.Conflict(len(allEvents), expectedMaxSequenceNumber)
		return eventstore.ErrConcurrencyConflict
	}

	next := eventstore.MaxSequenceNumberUint(len(es.events))
	for i, e := range allEvents {
		next++
		es.events = append(es.events, storedEvent{event: e, payload: decoded[i], sequenceNumber: next})
	}

	op.Succeed(observer.MetricAppendDuration, observer.MetricEventsAppended, len(allEvents), nil)
	es.observer.LogOperation(ctx, "events appended",
		observer.AttrEventCount, len(allEvents),
		observer.AttrDurationMS, observer.ToMilliseconds(op.Elapsed()))

	return nil
}

// currentMaxSequenceNumber ignores the sequence boundary of filter, like the database engines do for appends.
func (es *EventStore) currentMaxSequenceNumber(filter eventstore.Filter) eventstore.MaxSequenceNumberUint {
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for _, stored := range es.events {
		if matchesItems(filter, stored) && matchesTimeRange(filter, stored) {
			maxSequenceNumber = stored.sequenceNumber
		}
	}

	return maxSequenceNumber
}

// SaveSnapshot stores the snapshot for (ProjectionType, FilterHash) unless one with a higher sequence number exists.
func (es *EventStore) SaveSnapshot(ctx context.Context, snapshot eventstore.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return errors.Join(eventstore.ErrSavingSnapshotFailed, err)
	}

	es.mu.Lock()
	defer es.mu.Unlock()

	if es.closed {
		return errors.Join(eventstore.ErrSavingSnapshotFailed, ErrEventStoreClosed)
	}

	key := snapshotKey{snapshot.ProjectionType, snapshot.FilterHash}
	if existing, ok := es.snapshots[key]; ok && existing.SequenceNumber > snapshot.SequenceNumber {
		return nil
	}

	snapshot.Data = slices.Clone(snapshot.Data)
	es.snapshots[key] = snapshot

	es.observer.LogOperation(ctx, "snapshot saved",
		observer.AttrProjection, snapshot.ProjectionType,
		observer.AttrMaxSequence, snapshot.SequenceNumber)

	return nil
}

// LoadSnapshot returns nil, nil when no snapshot exists.
func (es *EventStore) LoadSnapshot(
	_ context.Context,
	projectionType string,
	filter eventstore.Filter,
) (*eventstore.Snapshot, error) {

	if projectionType == "" {
		return nil, errors.Join(eventstore.ErrLoadingSnapshotFailed, eventstore.ErrEmptyProjectionType)
	}

	es.mu.RLock()
	defer es.mu.RUnlock()

	if es.closed {
		return nil, errors.Join(eventstore.ErrLoadingSnapshotFailed, ErrEventStoreClosed)
	}

	snapshot, ok := es.snapshots[snapshotKey{projectionType, filter.Hash()}]
	if !ok {
		return nil, nil
	}

	snapshot.Data = slices.Clone(snapshot.Data)

	return &snapshot, nil
}

// DeleteSnapshot removes the snapshot, deleting a missing one is not an error.
func (es *EventStore) DeleteSnapshot(_ context.Context, projectionType string, filter eventstore.Filter) error {
	if projectionType == "" {
		return errors.Join(eventstore.ErrDeletingSnapshotFailed, eventstore.ErrEmptyProjectionType)
	}

	es.mu.Lock()
	defer es.mu.Unlock()

	delete(es.snapshots, snapshotKey{projectionType, filter.Hash()})

	return nil
}

// Len returns the number of stored events.
func (es *EventStore) Len() int {
	es.mu.RLock()
	defer es.mu.RUnlock()

	return len(es.events)
}

// Close makes all further calls fail.
func (es *EventStore) Close() error {
	es.mu.Lock()
	defer es.mu.Unlock()

	es.closed = true

	return nil
}

func decodePayload(payloadJSON []byte) (map[string]any, error) {
	payload := make(map[string]any)
	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &payload); err != nil {
		return nil, err
	}

	return payload, nil
}
