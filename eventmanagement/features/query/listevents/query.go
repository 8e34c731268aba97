package listevents

import (
	"fmt"
	"time"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
)

const (
	queryType = "ListEvents"
)

// Query represents the intent to list scheduled events.
// A zero Kind matches every kind, a zero From or Until leaves that side of the window open.
type Query struct {
	Kind  domain.EventKind
	From  time.Time
	Until time.Time
}

// BuildQuery creates a Query for all scheduled events.
func BuildQuery() Query {
	return Query{}
}

// BuildFilteredQuery creates a Query for the events of kind that lie completely inside [from, until].
func BuildFilteredQuery(kind domain.EventKind, from, until time.Time) Query {
	return Query{
		Kind:  kind,
		From:  from,
		Until: until,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

// SnapshotType differs per kind, the projected lists differ as well.
func (q Query) SnapshotType() string {
	return fmt.Sprintf("%s:%d", queryType, q.Kind)
}

// SnapshotEligible is false for time windows. Every window would get its own snapshot that is rarely reused.
func (q Query) SnapshotEligible() bool {
	return q.From.IsZero() && q.Until.IsZero()
}
