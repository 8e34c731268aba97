package core

import (
	"time"
)

// RegisteringAttendeeFailedEventType is the event type identifier.
const RegisteringAttendeeFailedEventType = "RegisteringAttendeeFailed"

// RegisteringAttendeeFailed represents when registering an attendee for an event fails due to business rule violations.
type RegisteringAttendeeFailed struct {
	EntityID    string
	EventID     EventIDString
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildRegisteringAttendeeFailed creates a new RegisteringAttendeeFailed event, entityID is the email of the attendee.
func BuildRegisteringAttendeeFailed(
	entityID string,
	eventID string,
	failureInfo string,
	occurredAt time.Time,
) RegisteringAttendeeFailed {

	return RegisteringAttendeeFailed{
		EntityID:    entityID,
		EventID:     eventID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e RegisteringAttendeeFailed) IsEventType() string {
	return RegisteringAttendeeFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e RegisteringAttendeeFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e RegisteringAttendeeFailed) IsErrorEvent() bool {
	return true
}
