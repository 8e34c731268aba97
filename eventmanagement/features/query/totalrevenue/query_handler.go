package totalrevenue

import (
	"context"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/shell"
	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
)

// QueryHandler orchestrates the complete query processing workflow.
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
func (h QueryHandler) Handle(ctx context.Context, query Query) (Revenue, error) {
	filter := BuildEventFilter(query.EventID)
	ctx = eventstore.WithEventualConsistency(ctx)

	storableEvents, maxSeq, err := h.ExposeEventStore().Query(ctx, filter)
	if err != nil {
		return Revenue{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return Revenue{}, err
	}

	return Project(history, query, maxSeq)
}
