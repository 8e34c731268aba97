package scheduleevent

import (
	"errors"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/core"
	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
)

const (
	failureReasonAlreadyScheduled = "event already scheduled"
)

type state struct {
	scheduled bool
	existing  core.EventScheduled
}

// Decide implements the business logic for scheduling an event.
//
// Business Rules:
//
//	GIVEN: An event with EventID
//	WHEN: ScheduleEvent command is received
//	THEN: EventScheduled event is generated
//	ERROR: "event already scheduled" if the EventID is taken by an event with different data
//	IDEMPOTENCY: If the same event was scheduled before, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.Event.ID().String())
	scheduled := core.BuildEventScheduled(command.Event, command.OccurredAt)

	if s.scheduled {
		if s.existing.SameSchedule(scheduled) {
			return core.IdempotentDecision()
		}

		event := core.BuildSchedulingEventFailed(scheduled.EventID, scheduled.EventID, failureReasonAlreadyScheduled, command.OccurredAt)
		return core.ErrorDecision(event, errors.New(event.IsEventType()+": "+failureReasonAlreadyScheduled))
	}

	return core.SuccessDecision(scheduled)
}

func project(history core.DomainEvents, eventID string) state {
	s := state{}

	for _, event := range history {
		if e, ok := event.(core.EventScheduled); ok && e.EventID == eventID {
			s.scheduled = true
			s.existing = e
		}
	}

	return s
}

// BuildEventFilter selects the EventScheduled event of eventID.
func BuildEventFilter(eventID domain.EventID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.EventScheduledEventType,
		).
		AndAnyPredicateOf(
			eventstore.P("EventID", eventID.String()),
		).
		Finalize()
}
