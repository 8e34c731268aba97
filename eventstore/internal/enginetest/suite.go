// Package enginetest contains the behavior every engine must show, run by the engine test packages.
package enginetest

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
)

// Engine is the contract shared by all engines.
type Engine interface {
	Query(ctx context.Context, filter eventstore.Filter) (eventstore.StorableEvents, eventstore.MaxSequenceNumberUint, error)
	Append(
		ctx context.Context,
		filter eventstore.Filter,
		expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
		event eventstore.StorableEvent,
		additionalEvents ...eventstore.StorableEvent,
	) error
	SaveSnapshot(ctx context.Context, snapshot eventstore.Snapshot) error
	LoadSnapshot(ctx context.Context, projectionType string, filter eventstore.Filter) (*eventstore.Snapshot, error)
	DeleteSnapshot(ctx context.Context, projectionType string, filter eventstore.Filter) error
}

// Factory returns a fresh, empty Engine.
type Factory func(t *testing.T) Engine

var baseTime = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

// Event builds a StorableEvent occurring minutesAfterBase after a fixed base time.
func Event(t *testing.T, eventType string, payload string, minutesAfterBase int) eventstore.StorableEvent {
	t.Helper()

	event, err := eventstore.BuildStorableEventWithEmptyMetadata(
		eventType,
		baseTime.Add(time.Duration(minutesAfterBase)*time.Minute),
		[]byte(payload),
	)
	require.NoError(t, err)

	return event
}

func eventIDFilter(eventID string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("EventScheduled", "AttendeeRegistered").
		AndAnyPredicateOf(eventstore.P("EventID", eventID)).
		Finalize()
}

// Run executes the whole suite against engines built by newEngine.
//
//nolint:funlen
func Run(t *testing.T, newEngine Factory) {
	ctx := context.Background()

	t.Run("query_on_empty_store", func(t *testing.T) {
		es := newEngine(t)

		events, maxSeq, err := es.Query(ctx, eventstore.BuildEventFilter().MatchingAnyEvent())

		require.NoError(t, err)
		assert.Empty(t, events)
		assert.Equal(t, uint(0), maxSeq)
	})

	t.Run("append_then_query_roundtrip", func(t *testing.T) {
		// arrange
		es := newEngine(t)
		filter := eventIDFilter("e-1")
		event := Event(t, "EventScheduled", `{"EventID": "e-1", "Name": "Rock Night"}`, 0)

		// act
		require.NoError(t, es.Append(ctx, filter, 0, event))
		events, maxSeq, err := es.Query(ctx, filter)

		// assert
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, uint(1), maxSeq)
		assert.Equal(t, "EventScheduled", events[0].EventType)
		assert.True(t, event.OccurredAt.Equal(events[0].OccurredAt))
		assert.JSONEq(t, `{"EventID": "e-1", "Name": "Rock Night"}`, string(events[0].PayloadJSON))
		assert.JSONEq(t, `{}`, string(events[0].MetadataJSON))
	})

	t.Run("stale_expected_sequence_is_a_conflict", func(t *testing.T) {
		// arrange
		es := newEngine(t)
		filter := eventIDFilter("e-1")
		require.NoError(t, es.Append(ctx, filter, 0, Event(t, "EventScheduled", `{"EventID": "e-1"}`, 0)))

		// act
		err := es.Append(ctx, filter, 0, Event(t, "AttendeeRegistered", `{"EventID": "e-1"}`, 1))

		// assert
		assert.ErrorIs(t, err, eventstore.ErrConcurrencyConflict)
		events, _, queryErr := es.Query(ctx, filter)
		require.NoError(t, queryErr)
		assert.Len(t, events, 1)
	})

	t.Run("conflicts_are_scoped_to_the_stream", func(t *testing.T) {
		es := newEngine(t)
		require.NoError(t, es.Append(ctx, eventIDFilter("e-1"), 0, Event(t, "EventScheduled", `{"EventID": "e-1"}`, 0)))

		err := es.Append(ctx, eventIDFilter("e-2"), 0, Event(t, "EventScheduled", `{"EventID": "e-2"}`, 1))
		require.NoError(t, err)

		events, maxSeq, err := es.Query(ctx, eventIDFilter("e-2"))
		require.NoError(t, err)
		assert.Len(t, events, 1)
		assert.Equal(t, uint(2), maxSeq)
	})

	t.Run("multiple_events_are_appended_in_order", func(t *testing.T) {
		es := newEngine(t)
		filter := eventIDFilter("e-1")

		err := es.Append(ctx, filter, 0,
			Event(t, "EventScheduled", `{"EventID": "e-1"}`, 0),
			Event(t, "AttendeeRegistered", `{"EventID": "e-1", "Email": "a@x.io"}`, 1),
			Event(t, "AttendeeRegistered", `{"EventID": "e-1", "Email": "b@x.io"}`, 2),
		)
		require.NoError(t, err)

		events, maxSeq, err := es.Query(ctx, filter)
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, uint(3), maxSeq)
		assert.Equal(t, "EventScheduled", events[0].EventType)
		assert.Contains(t, string(events[2].PayloadJSON), "b@x.io")

		err = es.Append(ctx, filter, 1, Event(t, "AttendeeRegistered", `{"EventID": "e-1"}`, 3), Event(t, "AttendeeRegistered", `{"EventID": "e-1"}`, 4))
		assert.ErrorIs(t, err, eventstore.ErrConcurrencyConflict)
	})

	t.Run("predicates_and_event_types", func(t *testing.T) {
		// arrange
		es := newEngine(t)
		all := eventstore.BuildEventFilter().MatchingAnyEvent()
		require.NoError(t, es.Append(ctx, all, 0,
			Event(t, "EventScheduled", `{"EventID": "e-1", "Kind": "Concert", "MaxAttendees": 100, "Open": true, "Tier": "100"}`, 0),
			Event(t, "EventScheduled", `{"EventID": "e-2", "Kind": "Workshop"}`, 1),
			Event(t, "AttendeeRegistered", `{"EventID": "e-1", "Email": "a@x.io"}`, 2),
			Event(t, "AttendeeRegistered", `{"EventID": "e-2", "Email": "a@x.io"}`, 3),
		))

		tests := []struct {
			name     string
			filter   eventstore.Filter
			expected int
			maxSeq   uint
		}{
			{
				name:     "event_type_only",
				filter:   eventstore.BuildEventFilter().Matching().AnyEventTypeOf("AttendeeRegistered").Finalize(),
				expected: 2,
				maxSeq:   4,
			},
			{
				name:     "any_predicate",
				filter:   eventstore.BuildEventFilter().Matching().AnyPredicateOf(eventstore.P("Kind", "Concert"), eventstore.P("Kind", "Workshop")).Finalize(),
				expected: 2,
				maxSeq:   2,
			},
			{
				name: "all_predicates",
				filter: eventstore.BuildEventFilter().
					Matching().
					AllPredicatesOf(eventstore.P("EventID", "e-2"), eventstore.P("Email", "a@x.io")).
					Finalize(),
				expected: 1,
				maxSeq:   4,
			},
			{
				name:     "numeric_payload_field_does_not_match",
				filter:   eventstore.BuildEventFilter().Matching().AnyPredicateOf(eventstore.P("MaxAttendees", "100")).Finalize(),
				expected: 0,
				maxSeq:   0,
			},
			{
				name:     "bool_payload_field_does_not_match",
				filter:   eventstore.BuildEventFilter().Matching().AnyPredicateOf(eventstore.P("Open", "true"), eventstore.P("Open", "1")).Finalize(),
				expected: 0,
				maxSeq:   0,
			},
			{
				name:     "string_payload_field_with_numeric_text",
				filter:   eventstore.BuildEventFilter().Matching().AnyPredicateOf(eventstore.P("Tier", "100")).Finalize(),
				expected: 1,
				maxSeq:   1,
			},
			{
				name: "or_matching_items",
				filter: eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("EventScheduled").
					AndAnyPredicateOf(eventstore.P("EventID", "e-2")).
					OrMatching().
					AnyEventTypeOf("AttendeeRegistered").
					AndAnyPredicateOf(eventstore.P("EventID", "e-1")).
					Finalize(),
				expected: 2,
				maxSeq:   3,
			},
			{
				name:     "no_match",
				filter:   eventstore.BuildEventFilter().Matching().AnyPredicateOf(eventstore.P("EventID", "e-404")).Finalize(),
				expected: 0,
				maxSeq:   0,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				// act
				events, maxSeq, err := es.Query(ctx, tt.filter)

				// assert
				require.NoError(t, err)
				assert.Len(t, events, tt.expected)
				assert.Equal(t, tt.maxSeq, maxSeq)
			})
		}
	})

	t.Run("time_range_and_sequence_boundaries", func(t *testing.T) {
		es := newEngine(t)
		all := eventstore.BuildEventFilter().MatchingAnyEvent()
		require.NoError(t, es.Append(ctx, all, 0,
			Event(t, "EventScheduled", `{"EventID": "e-1"}`, 0),
			Event(t, "EventScheduled", `{"EventID": "e-2"}`, 10),
			Event(t, "EventScheduled", `{"EventID": "e-3"}`, 20),
		))

		inRange := eventstore.BuildEventFilter().
			Matching().
			AnyEventTypeOf("EventScheduled").
			OccurredFrom(baseTime.Add(10 * time.Minute)).
			AndOccurredUntil(baseTime.Add(20 * time.Minute)).
			Finalize()

		events, maxSeq, err := es.Query(ctx, inRange)
		require.NoError(t, err)
		assert.Len(t, events, 2)
		assert.Equal(t, uint(3), maxSeq)

		afterFirst := eventstore.BuildEventFilter().
			Matching().
			AnyEventTypeOf("EventScheduled").
			WithSequenceNumberHigherThan(1).
			Finalize()

		events, maxSeq, err = es.Query(ctx, afterFirst)
		require.NoError(t, err)
		assert.Len(t, events, 2)
		assert.Equal(t, uint(3), maxSeq)
	})

	t.Run("concurrent_appends_to_the_same_stream", func(t *testing.T) {
		// arrange
		es := newEngine(t)
		filter := eventIDFilter("e-1")
		var succeeded atomic.Int32
		var conflicted atomic.Int32
		var wg sync.WaitGroup

		// act
		for i := 0; i < 8; i++ {
			wg.Add(1)

			go func() {
				defer wg.Done()

				err := es.Append(ctx, filter, 0, Event(t, "AttendeeRegistered", `{"EventID": "e-1"}`, i))
				switch {
				case err == nil:
					succeeded.Add(1)
				case assert.ErrorIs(t, err, eventstore.ErrConcurrencyConflict):
					conflicted.Add(1)
				}
			}()
		}

		wg.Wait()

		// assert
		assert.Equal(t, int32(1), succeeded.Load())
		assert.Equal(t, int32(7), conflicted.Load())
	})

	t.Run("snapshots", func(t *testing.T) {
		es := newEngine(t)
		filter := eventIDFilter("e-1")

		missing, err := es.LoadSnapshot(ctx, "EventDetails", filter)
		require.NoError(t, err)
		assert.Nil(t, missing)

		first, err := eventstore.BuildSnapshot("EventDetails", filter.Hash(), 3, []byte(`{"Name": "Rock Night"}`))
		require.NoError(t, err)
		require.NoError(t, es.SaveSnapshot(ctx, first))

		second, err := eventstore.BuildSnapshot("EventDetails", filter.Hash(), 7, []byte(`{"Name": "Jazz Night"}`))
		require.NoError(t, err)
		require.NoError(t, es.SaveSnapshot(ctx, second))

		loaded, err := es.LoadSnapshot(ctx, "EventDetails", filter)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, uint(7), loaded.SequenceNumber)
		assert.JSONEq(t, `{"Name": "Jazz Night"}`, string(loaded.Data))

		stale, err := eventstore.BuildSnapshot("EventDetails", filter.Hash(), 5, []byte(`{"Name": "stale"}`))
		require.NoError(t, err)
		require.NoError(t, es.SaveSnapshot(ctx, stale))

		loaded, err = es.LoadSnapshot(ctx, "EventDetails", filter)
		require.NoError(t, err)
		assert.Equal(t, uint(7), loaded.SequenceNumber)

		other, err := es.LoadSnapshot(ctx, "EventDetails", eventIDFilter("e-2"))
		require.NoError(t, err)
		assert.Nil(t, other)

		require.NoError(t, es.DeleteSnapshot(ctx, "EventDetails", filter))
		deleted, err := es.LoadSnapshot(ctx, "EventDetails", filter)
		require.NoError(t, err)
		assert.Nil(t, deleted)

		assert.Error(t, es.SaveSnapshot(ctx, eventstore.Snapshot{ProjectionType: "", FilterHash: "x", Data: []byte(`{}`)}))
	})
}
