// Package eventstore provides the engine-agnostic building blocks of an event store
// with dynamic event streams.
//
// A "dynamic event stream" is whatever a Filter selects: event types, JSON payload predicates,
// an occurred_at range or a sequence number boundary. Its highest sequence number is the
// optimistic concurrency token for appending to it.
//
// The engines live in sub packages:
//   - memengine: in-process, for tests and throwaway sessions
//   - sqliteengine: a single file database
//   - postgresengine: PostgreSQL via pgx, database/sql or sqlx
//
// Typical command handler flow:
//
//	filter := eventstore.BuildEventFilter().
//		Matching().
//		AnyEventTypeOf(core.EventScheduledEventType, core.AttendeeRegisteredEventType).
//		AndAnyPredicateOf(eventstore.P("EventID", eventID)).
//		Finalize()
//
//	events, maxSeq, err := store.Query(ctx, filter)
//	// decide ...
//	err = store.Append(ctx, filter, maxSeq, newEvent)
//	if errors.Is(err, eventstore.ErrConcurrencyConflict) {
//		// retry
//	}
package eventstore
