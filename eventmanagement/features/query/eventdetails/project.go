package eventdetails

import (
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/operations"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/core"
	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
)

// Project implements the query logic to describe one event.
//
// Query Logic:
//
//	GIVEN: An event with EventID
//	WHEN: EventDetails query is executed
//	THEN: EventDetails is returned with the rebuilt domain event
//	COUNTS: Active and cancelled registrations of the event
//	EMPTY: Event is nil if the event was never scheduled
func Project(history core.DomainEvents, query Query, maxSequence uint) (EventDetails, error) {
	result := EventDetails{SequenceNumber: maxSequence}
	eventID := query.EventID.String()
	statuses := make(map[string]domain.RegistrationStatus)
	order := make([]string, 0)

	for _, event := range history {
		switch e := event.(type) {
		case core.EventScheduled:
			if e.EventID != eventID {
				continue
			}

			scheduled, err := core.EventFrom(e)
			if err != nil {
				return EventDetails{}, err
			}

			result.Event = scheduled
			result.Capacity = operations.Capacity(scheduled)

		case core.AttendeeRegistered:
			if e.EventID == eventID {
				statuses[e.RegistrationID] = domain.RegistrationStatus(e.Status)
				order = append(order, e.RegistrationID)
			}

		case core.RegistrationStatusChanged:
			if _, ok := statuses[e.RegistrationID]; ok {
				statuses[e.RegistrationID] = domain.RegistrationStatus(e.ToStatus)
			}
		}
	}

	for _, registrationID := range order {
		if statuses[registrationID].IsActive() {
			result.ActiveRegistrations++
		} else {
			result.CancelledRegistrations++
		}
	}

	return result, nil
}

// BuildEventFilter creates the filter for querying the event and its registrations.
func BuildEventFilter(eventID domain.EventID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.EventScheduledEventType,
			core.AttendeeRegisteredEventType,
			core.RegistrationStatusChangedEventType,
		).
		AndAnyPredicateOf(
			eventstore.P("EventID", eventID.String()),
		).
		Finalize()
}
