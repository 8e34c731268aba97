package operations

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
)

var ErrUnknownEvent = errors.New("registration refers to an unknown event")

// CreateRegistration builds a new Registration with a random ID.
func CreateRegistration(
	event domain.Event,
	attendee domain.Attendee,
	status domain.RegistrationStatus,
	now time.Time,
) (domain.Registration, error) {

	return domain.NewRegistration(uuid.New(), event.ID(), attendee, now, status)
}

// UpdateStatus returns a copy of registration with status, registration itself is untouched.
func UpdateStatus(registration domain.Registration, status domain.RegistrationStatus) domain.Registration {
	registration.Status = status

	return registration
}

// ActiveRegistrationCount counts the registrations for eventID which are not cancelled.
func ActiveRegistrationCount(eventID domain.EventID, registrations []domain.Registration) int {
	count := 0
	for _, registration := range registrations {
		if registration.EventID == eventID && registration.Status.IsActive() {
			count++
		}
	}

	return count
}

// RegisterForEvent creates a CONFIRMED registration if event has capacity left.
// Only the active registrations of existing that belong to event are counted.
// The bool is false when the event is full.
func RegisterForEvent(
	event domain.Event,
	attendee domain.Attendee,
	existing []domain.Registration,
	now time.Time,
) (domain.Registration, bool, error) {

	if !HasAvailableCapacity(event, ActiveRegistrationCount(event.ID(), existing)) {
		return domain.Registration{}, false, nil
	}

	registration, err := CreateRegistration(event, attendee, domain.StatusConfirmed, now)
	if err != nil {
		return domain.Registration{}, false, err
	}

	return registration, true, nil
}

// CalculateTotalRevenue sums the fees of all CONFIRMED and ATTENDED registrations.
// Every registration must refer to an event in eventsByID.
func CalculateTotalRevenue(
	registrations []domain.Registration,
	eventsByID map[domain.EventID]domain.Event,
) (domain.Money, error) {

	fees := make([]domain.Money, 0, len(registrations))
	for _, registration := range registrations {
		if !registration.Status.IsBillable() {
			continue
		}

		event, ok := eventsByID[registration.EventID]
		if !ok {
			return domain.Money{}, ErrUnknownEvent
		}

		fees = append(fees, EventFee(event))
	}

	return SumMoney(fees)
}
