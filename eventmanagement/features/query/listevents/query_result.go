package listevents

import (
	"time"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/core"
)

// EventSummary is one line of the event list.
type EventSummary struct {
	EventID             core.EventIDString
	Kind                string
	Name                string
	StartTime           time.Time
	EndTime             time.Time
	VenueName           string
	VenueAddress        string
	Capacity            int
	ActiveRegistrations int
	FeeAmount           string
	FeeCurrency         string
}

// AvailableSpots never drops below zero.
func (s EventSummary) AvailableSpots() int {
	return max(s.Capacity-s.ActiveRegistrations, 0)
}

// ScheduledEvents represents the query result containing the listed events in scheduling order.
type ScheduledEvents struct {
	Events         []EventSummary
	Count          int
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event in the event history that was used to build the projection.
func (r ScheduledEvents) GetSequenceNumber() uint {
	return r.SequenceNumber
}
