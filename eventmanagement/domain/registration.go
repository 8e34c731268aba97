package domain

import (
	"time"

	"github.com/google/uuid"
)

// Registration records that an Attendee registered for the event with EventID.
type Registration struct {
	ID           uuid.UUID
	EventID      EventID
	Attendee     Attendee
	RegisteredAt time.Time
	Status       RegistrationStatus
}

func NewRegistration(
	id uuid.UUID,
	eventID EventID,
	attendee Attendee,
	registeredAt time.Time,
	status RegistrationStatus,
) (Registration, error) {

	switch {
	case id == uuid.Nil:
		return Registration{}, ErrRegistrationIDRequired
	case eventID.IsZero():
		return Registration{}, ErrEventIDRequired
	case attendee.IsZero():
		return Registration{}, ErrMissingAttendee
	case registeredAt.IsZero():
		return Registration{}, ErrMissingRegistrationTime
	}

	if _, err := ParseRegistrationStatus(string(status)); err != nil {
		return Registration{}, err
	}

	return Registration{
		ID:           id,
		EventID:      eventID,
		Attendee:     attendee,
		RegisteredAt: registeredAt,
		Status:       status,
	}, nil
}
