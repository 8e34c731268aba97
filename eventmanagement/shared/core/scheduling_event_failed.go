package core

import (
	"time"
)

// SchedulingEventFailedEventType is the event type identifier.
const SchedulingEventFailedEventType = "SchedulingEventFailed"

// SchedulingEventFailed represents when scheduling an event fails due to business rule violations.
type SchedulingEventFailed struct {
	EntityID    string
	EventID     EventIDString
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildSchedulingEventFailed creates a new SchedulingEventFailed event, entityID is the ID of the event that could not be scheduled.
func BuildSchedulingEventFailed(
	entityID string,
	eventID string,
	failureInfo string,
	occurredAt time.Time,
) SchedulingEventFailed {

	return SchedulingEventFailed{
		EntityID:    entityID,
		EventID:     eventID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e SchedulingEventFailed) IsEventType() string {
	return SchedulingEventFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e SchedulingEventFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e SchedulingEventFailed) IsErrorEvent() bool {
	return true
}
