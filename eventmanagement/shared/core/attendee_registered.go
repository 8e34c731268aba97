package core

import (
	"time"

	"github.com/google/uuid"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
)

// AttendeeRegisteredEventType is the event type identifier.
const AttendeeRegisteredEventType = "AttendeeRegistered"

// AttendeeRegistered represents when an attendee registered for an event.
type AttendeeRegistered struct {
	RegistrationID RegistrationIDString
	EventID        EventIDString
	AttendeeID     string
	Name           string
	Email          string
	Phone          string
	Status         string
	OccurredAt     OccurredAtTS
}

// BuildAttendeeRegistered creates a new AttendeeRegistered event, OccurredAt is the registration time.
func BuildAttendeeRegistered(registration domain.Registration) AttendeeRegistered {
	return AttendeeRegistered{
		RegistrationID: registration.ID.String(),
		EventID:        registration.EventID.String(),
		AttendeeID:     registration.Attendee.ID.String(),
		Name:           registration.Attendee.Name,
		Email:          registration.Attendee.Email,
		Phone:          registration.Attendee.Phone,
		Status:         registration.Status.String(),
		OccurredAt:     ToOccurredAt(registration.RegisteredAt),
	}
}

// IsEventType returns the event type identifier.
func (e AttendeeRegistered) IsEventType() string {
	return AttendeeRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e AttendeeRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e AttendeeRegistered) IsErrorEvent() bool {
	return false
}

// RegistrationFrom rebuilds the domain registration described by e.
func RegistrationFrom(e AttendeeRegistered) (domain.Registration, error) {
	registrationID, err := uuid.Parse(e.RegistrationID)
	if err != nil {
		return domain.Registration{}, domain.ErrRegistrationIDRequired
	}

	eventID, err := domain.EventIDFrom(e.EventID)
	if err != nil {
		return domain.Registration{}, err
	}

	attendeeID, err := uuid.Parse(e.AttendeeID)
	if err != nil {
		return domain.Registration{}, domain.ErrAttendeeIDRequired
	}

	attendee, err := domain.NewAttendee(attendeeID, e.Name, e.Email, e.Phone)
	if err != nil {
		return domain.Registration{}, err
	}

	status, err := domain.ParseRegistrationStatus(e.Status)
	if err != nil {
		return domain.Registration{}, err
	}

	return domain.NewRegistration(registrationID, eventID, attendee, e.OccurredAt, status)
}
