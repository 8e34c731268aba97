package operations

import (
	"time"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
)

// SearchEvents keeps the events matching criteria, in input order.
func SearchEvents(events []domain.Event, criteria func(domain.Event) bool) []domain.Event {
	result := make([]domain.Event, 0, len(events))
	for _, event := range events {
		if criteria(event) {
			result = append(result, event)
		}
	}

	return result
}

// FindEventsByTimeRange keeps the events that lie completely inside [start, end].
func FindEventsByTimeRange(events []domain.Event, start, end time.Time) []domain.Event {
	return SearchEvents(events, func(event domain.Event) bool {
		return !event.StartTime().Before(start) && !event.EndTime().After(end)
	})
}

// Capacity is MaxAttendees, a Workshop is additionally limited by its MaxParticipants.
func Capacity(event domain.Event) int {
	if workshop, ok := event.(domain.Workshop); ok {
		return min(workshop.MaxAttendees(), workshop.MaxParticipants())
	}

	return event.MaxAttendees()
}

func HasAvailableCapacity(event domain.Event, currentAttendees int) bool {
	return currentAttendees < Capacity(event)
}

// EventFee returns the kind specific price of attending event.
func EventFee(event domain.Event) domain.Money {
	switch e := event.(type) {
	case domain.Concert:
		return e.TicketPrice()
	case domain.Conference:
		return e.RegistrationFee()
	case domain.Exhibition:
		return e.EntryFee()
	case domain.Workshop:
		return e.ParticipationFee()
	default:
		return event.Fee()
	}
}
