package listevents

import (
	"slices"
	"time"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/operations"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/core"
	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
)

// openEnd stands in for a missing Until.
var openEnd = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

// Project implements the query logic to list the scheduled events.
// It is a pure function, given a base projection it only applies the events that came after it.
//
// Query Logic:
//
//	GIVEN: All EventScheduled, AttendeeRegistered and RegistrationStatusChanged events
//	WHEN: ListEvents query is executed
//	THEN: ScheduledEvents is returned in scheduling order
//	INCLUDES: Events of the queried kind which lie completely inside the queried window
//	COUNTS: Registrations which are not CANCELLED
//	EXCLUDES: Scheduled events whose data can't be rebuilt into a domain event
func Project(history core.DomainEvents, query Query, maxSequence uint, base ...ScheduledEvents) ScheduledEvents {
	summaries := make([]EventSummary, 0)
	if len(base) > 0 {
		summaries = slices.Clone(base[0].Events)
	}

	positions := make(map[string]int, len(summaries))
	for i, summary := range summaries {
		positions[summary.EventID] = i
	}

	for _, event := range selectEvents(history, query) {
		if _, known := positions[event.ID().String()]; known {
			continue
		}

		positions[event.ID().String()] = len(summaries)
		summaries = append(summaries, summaryOf(event))
	}

	for _, event := range history {
		switch e := event.(type) {
		case core.AttendeeRegistered:
			if i, ok := positions[e.EventID]; ok && domain.RegistrationStatus(e.Status).IsActive() {
				summaries[i].ActiveRegistrations++
			}

		case core.RegistrationStatusChanged:
			i, ok := positions[e.EventID]
			if !ok {
				continue
			}

			wasActive := domain.RegistrationStatus(e.FromStatus).IsActive()
			isActive := domain.RegistrationStatus(e.ToStatus).IsActive()

			switch {
			case wasActive && !isActive:
				summaries[i].ActiveRegistrations--
			case !wasActive && isActive:
				summaries[i].ActiveRegistrations++
			}
		}
	}

	return ScheduledEvents{
		Events:         summaries,
		Count:          len(summaries),
		SequenceNumber: maxSequence,
	}
}

// selectEvents rebuilds the scheduled events of history and keeps the ones query asks for.
func selectEvents(history core.DomainEvents, query Query) []domain.Event {
	scheduled := make([]domain.Event, 0)
	for _, event := range history {
		if e, ok := event.(core.EventScheduled); ok {
			if rebuilt, err := core.EventFrom(e); err == nil {
				scheduled = append(scheduled, rebuilt)
			}
		}
	}

	if query.Kind != 0 {
		scheduled = operations.SearchEvents(scheduled, func(event domain.Event) bool {
			return event.Kind() == query.Kind
		})
	}

	if query.From.IsZero() && query.Until.IsZero() {
		return scheduled
	}

	until := query.Until
	if until.IsZero() {
		until = openEnd
	}

	return operations.FindEventsByTimeRange(scheduled, query.From, until)
}

func summaryOf(event domain.Event) EventSummary {
	fee := operations.EventFee(event)

	return EventSummary{
		EventID:      event.ID().String(),
		Kind:         event.Kind().String(),
		Name:         event.Name(),
		StartTime:    event.StartTime(),
		EndTime:      event.EndTime(),
		VenueName:    event.Location().Name,
		VenueAddress: event.Location().Address,
		Capacity:     operations.Capacity(event),
		FeeAmount:    fee.Amount().String(),
		FeeCurrency:  fee.CurrencyCode(),
	}
}

// BuildEventFilter selects everything the list needs, one filter serves all query variants.
func BuildEventFilter() eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.EventScheduledEventType,
			core.AttendeeRegisteredEventType,
			core.RegistrationStatusChangedEventType,
		).
		Finalize()
}

// BuildEventFilterFor matches the FilterBuilderFunc signature of snapshot.Wrapper.
func BuildEventFilterFor(_ Query) eventstore.Filter {
	return BuildEventFilter()
}
