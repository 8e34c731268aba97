package eventdetails

import (
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
)

// EventDetails represents the query result. Event is nil when the event was never scheduled.
type EventDetails struct {
	Event                  domain.Event
	Capacity               int
	ActiveRegistrations    int
	CancelledRegistrations int
	SequenceNumber         uint
}

// Found reports whether the queried event exists.
func (r EventDetails) Found() bool {
	return r.Event != nil
}

// AvailableSpots never drops below zero.
func (r EventDetails) AvailableSpots() int {
	return max(r.Capacity-r.ActiveRegistrations, 0)
}

// GetSequenceNumber returns the sequence number of the last event in the event history that was used to build the projection.
func (r EventDetails) GetSequenceNumber() uint {
	return r.SequenceNumber
}
