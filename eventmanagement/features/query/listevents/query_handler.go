package listevents

import (
	"context"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/shell"
	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
)

// QueryHandler replays the full history on every call, wrap it with snapshot.Wrapper for incremental reads.
type QueryHandler struct {
	shell.QueryDependencies
}

// NewQueryHandler creates a new QueryHandler with the provided EventStore dependency.
func NewQueryHandler(eventStore shell.QueriesEvents, opts ...shell.QueryOption) QueryHandler {
	return QueryHandler{
		QueryDependencies: shell.NewQueryDependencies(eventStore, opts...),
	}
}

// Handle executes the complete query processing workflow: Query -> Project.
func (h QueryHandler) Handle(ctx context.Context, query Query) (ScheduledEvents, error) {
	filter := BuildEventFilter()

	// Listing tolerates slightly stale data.
	ctx = eventstore.WithEventualConsistency(ctx)

	storableEvents, maxSeq, err := h.ExposeEventStore().Query(ctx, filter)
	if err != nil {
		return ScheduledEvents{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return ScheduledEvents{}, err
	}

	return Project(history, query, maxSeq), nil
}
