package eventattendees

import (
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
)

const (
	queryType = "EventAttendees"
)

// Query represents the intent to see who registered for an event.
// With ActiveOnly the CANCELLED registrations are left out.
type Query struct {
	EventID    domain.EventID
	ActiveOnly bool
}

// BuildQuery creates a new Query for all registrations of the event.
func BuildQuery(eventID domain.EventID) Query {
	return Query{
		EventID: eventID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

// SnapshotType returns the projection type, one per event and variant.
func (q Query) SnapshotType() string {
	if q.ActiveOnly {
		return queryType + ":active:" + q.EventID.String()
	}

	return queryType + ":" + q.EventID.String()
}
