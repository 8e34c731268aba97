package eventattendees

import (
	"slices"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/core"
	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
)

// Project implements the query logic to list the registrations of one event.
//
// Query Logic:
//
//	GIVEN: An event with EventID
//	WHEN: EventAttendees query is executed
//	THEN: EventAttendees is returned in registration order
//	INCLUDES: The current status of every registration
//	EXCLUDES: CANCELLED registrations if ActiveOnly is set
func Project(history core.DomainEvents, query Query, maxSequence uint, base ...EventAttendees) EventAttendees {
	result := EventAttendees{EventID: query.EventID.String()}
	if len(base) > 0 {
		result.EventName = base[0].EventName
		result.Attendees = slices.Clone(base[0].Attendees)
	}

	positions := make(map[string]int, len(result.Attendees))
	for i, attendee := range result.Attendees {
		positions[attendee.RegistrationID] = i
	}

	for _, event := range history {
		switch e := event.(type) {
		case core.EventScheduled:
			if e.EventID == result.EventID {
				result.EventName = e.Name
			}

		case core.AttendeeRegistered:
			if e.EventID != result.EventID {
				continue
			}

			positions[e.RegistrationID] = len(result.Attendees)
			result.Attendees = append(result.Attendees, AttendeeInfo{
				RegistrationID: e.RegistrationID,
				AttendeeID:     e.AttendeeID,
				Name:           e.Name,
				Email:          e.Email,
				Phone:          e.Phone,
				Status:         e.Status,
				RegisteredAt:   e.OccurredAt,
			})

		case core.RegistrationStatusChanged:
			if i, ok := positions[e.RegistrationID]; ok {
				result.Attendees[i].Status = e.ToStatus
			}
		}
	}

	if query.ActiveOnly {
		result.Attendees = slices.DeleteFunc(result.Attendees, func(a AttendeeInfo) bool {
			return !domain.RegistrationStatus(a.Status).IsActive()
		})
	}

	if result.Attendees == nil {
		result.Attendees = []AttendeeInfo{}
	}

	result.Count = len(result.Attendees)
	result.SequenceNumber = maxSequence

	return result
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

// BuildEventFilterFor matches the FilterBuilderFunc signature of snapshot.Wrapper.
func BuildEventFilterFor(query Query) eventstore.Filter {
	return BuildEventFilter(query.EventID)
}
