package eventattendees

import (
	"time"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/core"
)

// AttendeeInfo represents one registration of the event.
type AttendeeInfo struct {
	RegistrationID core.RegistrationIDString
	AttendeeID     string
	Name           string
	Email          string
	Phone          string
	Status         string
	RegisteredAt   time.Time
}

// EventAttendees represents the query result. EventName is empty when the event was never scheduled.
type EventAttendees struct {
	EventID        core.EventIDString
	EventName      string
	Attendees      []AttendeeInfo
	Count          int
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event in the event history that was used to build the projection.
func (r EventAttendees) GetSequenceNumber() uint {
	return r.SequenceNumber
}
