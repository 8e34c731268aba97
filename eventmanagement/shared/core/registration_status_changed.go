package core

import (
	"time"

	"github.com/google/uuid"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
)

// RegistrationStatusChangedEventType is the event type identifier.
const RegistrationStatusChangedEventType = "RegistrationStatusChanged"

// RegistrationStatusChanged represents when a registration moved from one status to another.
type RegistrationStatusChanged struct {
	RegistrationID RegistrationIDString
	EventID        EventIDString
	FromStatus     string
	ToStatus       string
	OccurredAt     OccurredAtTS
}

// BuildRegistrationStatusChanged creates a new RegistrationStatusChanged event.
func BuildRegistrationStatusChanged(
	registrationID uuid.UUID,
	eventID domain.EventID,
	from domain.RegistrationStatus,
	to domain.RegistrationStatus,
	occurredAt time.Time,
) RegistrationStatusChanged {

	return RegistrationStatusChanged{
		RegistrationID: registrationID.String(),
		EventID:        eventID.String(),
		FromStatus:     from.String(),
		ToStatus:       to.String(),
		OccurredAt:     ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e RegistrationStatusChanged) IsEventType() string {
	return RegistrationStatusChangedEventType
}

// HasOccurredAt returns when this event occurred.
func (e RegistrationStatusChanged) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e RegistrationStatusChanged) IsErrorEvent() bool {
	return false
}
