package shell

import (
	"context"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/core"
	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
)

// QueriesEvents is the part of an event store a query handler needs.
type QueriesEvents interface {
	Query(ctx context.Context, filter eventstore.Filter) (
		eventstore.StorableEvents,
		eventstore.MaxSequenceNumberUint,
		error,
	)
}

// AppendsEvents is the part of an event store a command handler needs besides QueriesEvents.
type AppendsEvents interface {
	Append(
		ctx context.Context,
		filter eventstore.Filter,
		expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
		event eventstore.StorableEvent,
		additionalEvents ...eventstore.StorableEvent,
	) error
}

// EventStore is what command handlers work with.
type EventStore interface {
	QueriesEvents
	AppendsEvents
}

// HandlesSnapshots is implemented by event stores that can persist projection snapshots.
type HandlesSnapshots interface {
	SaveSnapshot(ctx context.Context, snapshot eventstore.Snapshot) error
	LoadSnapshot(ctx context.Context, projectionType string, filter eventstore.Filter) (*eventstore.Snapshot, error)
	DeleteSnapshot(ctx context.Context, projectionType string, filter eventstore.Filter) error
}

// QueriesEventsAndHandlesSnapshots is required by the snapshot wrapper.
type QueriesEventsAndHandlesSnapshots interface {
	QueriesEvents
	HandlesSnapshots
}

// ExposesSnapshotWrapperDependencies gives the snapshot wrapper access to the components of the handler it wraps,
// so the wrapping logic exists once instead of in every feature slice.
type ExposesSnapshotWrapperDependencies interface {
	ExposeEventStore() QueriesEvents
	ExposeMetricsCollector() MetricsCollector
	ExposeTracingCollector() TracingCollector
	ExposeContextualLogger() ContextualLogger
	ExposeLogger() Logger
}

// Query is implemented by all query types. SnapshotType names the projection for snapshot storage.
type Query interface {
	QueryType() string
	SnapshotType() string
}

// SnapshotEligible is optionally implemented by queries. Queries reporting false are never snapshotted,
// e.g. ones carrying arbitrary parameters that would make the snapshot key unbounded.
type SnapshotEligible interface {
	SnapshotEligible() bool
}

// QueryResult is implemented by all projections. GetSequenceNumber is the highest event sequence number
// included in the projection.
type QueryResult interface {
	GetSequenceNumber() uint
}

// CoreQueryHandler processes queries without observability concerns.
type CoreQueryHandler[Q Query, R QueryResult] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// QueryHandler processes queries and exposes its dependencies for wrapping.
type QueryHandler[Q Query, R QueryResult] interface {
	Handle(ctx context.Context, query Q) (R, error)
	ExposesSnapshotWrapperDependencies
}

// ProjectionFunc folds events into a projection. With a base it continues from a previous projection,
// maxSeq is the sequence number of the last event. It must be deterministic.
type ProjectionFunc[Q Query, R QueryResult] func(
	events core.DomainEvents,
	query Q,
	maxSeq uint,
	base ...R,
) R

// FilterBuilderFunc builds the event filter of a query.
type FilterBuilderFunc[Q Query] func(query Q) eventstore.Filter

// Command is implemented by all command types.
type Command interface {
	CommandType() string
}

// CoreCommandHandler processes commands without observability concerns.
type CoreCommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}
