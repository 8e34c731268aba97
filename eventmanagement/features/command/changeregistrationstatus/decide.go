package changeregistrationstatus

import (
	"errors"
	"slices"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/operations"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/core"
	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
)

const (
	failureReasonRegistrationNotFound = "registration not found"
	failureReasonRegistrationFinal    = "registration status is final"
	failureReasonTransitionNotAllowed = "status transition not allowed"
	failureReasonNoCapacity           = "no capacity available"
	failureReasonInvalidStatus        = "unknown registration status"
)

var allowedTransitions = map[domain.RegistrationStatus][]domain.RegistrationStatus{
	domain.StatusPending:   {domain.StatusConfirmed, domain.StatusCancelled},
	domain.StatusConfirmed: {domain.StatusAttended, domain.StatusCancelled},
}

type state struct {
	event         domain.Event
	current       domain.RegistrationStatus
	found         bool
	activeOthers  int
	brokenHistory error
}

// Decide implements the business logic for changing the status of a registration.
//
// Business Rules:
//
//	GIVEN: A registration with RegistrationID for the event with EventID
//	WHEN: ChangeRegistrationStatus command is received
//	THEN: RegistrationStatusChanged event is generated
//	ERROR: "registration not found" if no such registration exists for the event
//	ERROR: "registration status is final" if the registration is CANCELLED or ATTENDED
//	ERROR: "status transition not allowed" e.g. PENDING -> ATTENDED
//	ERROR: "no capacity available" for PENDING -> CONFIRMED when the other active registrations fill the event
//	IDEMPOTENCY: If the registration already has the status, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	if _, err := domain.ParseRegistrationStatus(command.NewStatus.String()); err != nil {
		return fail(command, failureReasonInvalidStatus)
	}

	s := project(history, command)

	if s.brokenHistory != nil {
		return fail(command, failureReasonRegistrationNotFound+": "+s.brokenHistory.Error())
	}

	if !s.found || s.event == nil {
		return fail(command, failureReasonRegistrationNotFound)
	}

	if s.current == command.NewStatus {
		return core.IdempotentDecision()
	}

	allowed, isOpen := allowedTransitions[s.current]
	if !isOpen {
		return fail(command, failureReasonRegistrationFinal)
	}

	if !slices.Contains(allowed, command.NewStatus) {
		return fail(command, failureReasonTransitionNotAllowed)
	}

	if s.current == domain.StatusPending && command.NewStatus == domain.StatusConfirmed &&
		!operations.HasAvailableCapacity(s.event, s.activeOthers) {

		return fail(command, failureReasonNoCapacity)
	}

	return core.SuccessDecision(
		core.BuildRegistrationStatusChanged(
			command.RegistrationID,
			command.EventID,
			s.current,
			command.NewStatus,
			command.OccurredAt,
		),
	)
}

func fail(command Command, reason string) core.DecisionResult {
	event := core.BuildChangingRegistrationStatusFailed(
		command.RegistrationID.String(),
		command.EventID.String(),
		reason,
		command.OccurredAt,
	)

	return core.ErrorDecision(event, errors.New(event.IsEventType()+": "+reason))
}

func project(history core.DomainEvents, command Command) state {
	s := state{}
	eventID := command.EventID.String()
	registrationID := command.RegistrationID.String()
	statuses := make(map[string]domain.RegistrationStatus)

	for _, event := range history {
		switch e := event.(type) {
		case core.EventScheduled:
			if e.EventID != eventID {
				continue
			}

			scheduled, err := core.EventFrom(e)
			if err != nil {
				s.brokenHistory = err
				continue
			}

			s.event = scheduled

		case core.AttendeeRegistered:
			if e.EventID == eventID {
				statuses[e.RegistrationID] = domain.RegistrationStatus(e.Status)
			}

		case core.RegistrationStatusChanged:
			if _, ok := statuses[e.RegistrationID]; ok {
				statuses[e.RegistrationID] = domain.RegistrationStatus(e.ToStatus)
			}
		}
	}

	for id, status := range statuses {
		if id == registrationID {
			s.found = true
			s.current = status
			continue
		}

		if status.IsActive() {
			s.activeOthers++
		}
	}

	return s
}

// BuildEventFilter selects the event and all its registrations, the other registrations matter for capacity.
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
