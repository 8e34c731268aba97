package eventdetails

import (
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
)

const (
	queryType = "EventDetails"
)

// Query represents the intent to look at one event.
type Query struct {
	EventID domain.EventID
}

// BuildQuery creates a new Query with the provided event ID.
func BuildQuery(eventID domain.EventID) Query {
	return Query{
		EventID: eventID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

// SnapshotType returns the projection type, one per event.
func (q Query) SnapshotType() string {
	return queryType + ":" + q.EventID.String()
}
