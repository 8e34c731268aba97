package totalrevenue

import (
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
)

const (
	queryType = "TotalRevenue"
)

// Query represents the intent to sum up the revenue. A zero EventID means all events.
type Query struct {
	EventID domain.EventID
}

// BuildQuery creates a Query over all events.
func BuildQuery() Query {
	return Query{}
}

// BuildQueryForEvent creates a Query over one event.
func BuildQueryForEvent(eventID domain.EventID) Query {
	return Query{
		EventID: eventID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

// SnapshotType returns the projection type.
func (q Query) SnapshotType() string {
	if q.EventID.IsZero() {
		return queryType
	}

	return queryType + ":" + q.EventID.String()
}
