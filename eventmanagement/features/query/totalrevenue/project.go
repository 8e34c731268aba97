package totalrevenue

import (
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/operations"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/core"
	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
)

// Project implements the query logic to sum up the revenue.
//
// Query Logic:
//
//	GIVEN: Scheduled events and their registrations
//	WHEN: TotalRevenue query is executed
//	THEN: Revenue is returned, 0.00 in the default currency without billable registrations
//	INCLUDES: Registrations whose current status is CONFIRMED or ATTENDED
//	ERROR: operations.ErrCurrencyMismatch if the billed fees use different currencies
func Project(history core.DomainEvents, query Query, maxSequence uint) (Revenue, error) {
	eventsByID := make(map[domain.EventID]domain.Event)
	registrations := make([]domain.Registration, 0)
	positions := make(map[string]int)

	for _, event := range history {
		switch e := event.(type) {
		case core.EventScheduled:
			scheduled, err := core.EventFrom(e)
			if err != nil {
				return Revenue{}, err
			}

			eventsByID[scheduled.ID()] = scheduled

		case core.AttendeeRegistered:
			registration, err := core.RegistrationFrom(e)
			if err != nil {
				return Revenue{}, err
			}

			positions[e.RegistrationID] = len(registrations)
			registrations = append(registrations, registration)

		case core.RegistrationStatusChanged:
			if i, ok := positions[e.RegistrationID]; ok {
				registrations[i] = operations.UpdateStatus(registrations[i], domain.RegistrationStatus(e.ToStatus))
			}
		}
	}

	if !query.EventID.IsZero() {
		registrations = onlyFor(query.EventID, registrations)
	}

	total, err := operations.CalculateTotalRevenue(registrations, eventsByID)
	if err != nil {
		return Revenue{}, err
	}

	billable := 0
	for _, registration := range registrations {
		if registration.Status.IsBillable() {
			billable++
		}
	}

	return Revenue{
		Total:                 total,
		BillableRegistrations: billable,
		SequenceNumber:        maxSequence,
	}, nil
}

func onlyFor(eventID domain.EventID, registrations []domain.Registration) []domain.Registration {
	result := make([]domain.Registration, 0, len(registrations))
	for _, registration := range registrations {
		if registration.EventID == eventID {
			result = append(result, registration)
		}
	}

	return result
}

// BuildEventFilter selects the registrations of one event, or of all events for a zero eventID.
func BuildEventFilter(eventID domain.EventID) eventstore.Filter {
	types := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.EventScheduledEventType,
			core.AttendeeRegisteredEventType,
			core.RegistrationStatusChangedEventType,
		)

	if eventID.IsZero() {
		return types.Finalize()
	}

	return types.
		AndAnyPredicateOf(
			eventstore.P("EventID", eventID.String()),
		).
		Finalize()
}
