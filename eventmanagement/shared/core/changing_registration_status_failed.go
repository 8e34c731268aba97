package core

import (
	"time"
)

// ChangingRegistrationStatusFailedEventType is the event type identifier.
const ChangingRegistrationStatusFailedEventType = "ChangingRegistrationStatusFailed"

// ChangingRegistrationStatusFailed represents when changing the status of a registration fails due to business rule violations.
type ChangingRegistrationStatusFailed struct {
	EntityID    string
	EventID     EventIDString
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildChangingRegistrationStatusFailed creates a new ChangingRegistrationStatusFailed event, entityID is the registration ID.
func BuildChangingRegistrationStatusFailed(
	entityID string,
	eventID string,
	failureInfo string,
	occurredAt time.Time,
) ChangingRegistrationStatusFailed {

	return ChangingRegistrationStatusFailed{
		EntityID:    entityID,
		EventID:     eventID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e ChangingRegistrationStatusFailed) IsEventType() string {
	return ChangingRegistrationStatusFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ChangingRegistrationStatusFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e ChangingRegistrationStatusFailed) IsErrorEvent() bool {
	return true
}
