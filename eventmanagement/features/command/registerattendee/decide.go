package registerattendee

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/operations"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/core"
	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
)

const (
	failureReasonEventNotScheduled    = "event is not scheduled"
	failureReasonNoCapacity           = "no capacity available"
	failureReasonInvalidInitialStatus = "initial status must be PENDING or CONFIRMED"
	failureReasonInvalidRegistration  = "invalid registration"
)

// ErrNoCapacity is wrapped by the error of a registration rejected because the event is full.
var ErrNoCapacity = errors.New(failureReasonNoCapacity)

// state represents the event and its registrations projected from the event history.
type state struct {
	event         domain.Event
	registrations []domain.Registration
	knownIDs      map[string]bool
	brokenHistory error
}

// Decide implements the business logic for registering an attendee.
//
// Business Rules:
//
//	GIVEN: A scheduled event with EventID
//	WHEN: RegisterAttendee command is received
//	THEN: AttendeeRegistered event is generated with the requested initial status
//	ERROR: "event is not scheduled" if no EventScheduled exists for EventID
//	ERROR: "initial status must be PENDING or CONFIRMED" for any other status
//	ERROR: "no capacity available" if the active (not cancelled) registrations reached the capacity
//	IDEMPOTENCY: If the RegistrationID is known or the email has an active registration, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.EventID.String())

	if s.brokenHistory != nil {
		return fail(command, failureReasonInvalidRegistration+": "+s.brokenHistory.Error())
	}

	if s.event == nil {
		return fail(command, failureReasonEventNotScheduled)
	}

	if s.knownIDs[command.RegistrationID.String()] {
		return core.IdempotentDecision()
	}

	for _, registration := range s.registrations {
		if registration.Status.IsActive() && domain.SameEmail(registration.Attendee.Email, command.Attendee.Email) {
			return core.IdempotentDecision()
		}
	}

	if command.RegistrationID == uuid.Nil {
		return fail(command, failureReasonInvalidRegistration+": "+domain.ErrRegistrationIDRequired.Error())
	}

	if command.InitialStatus != domain.StatusPending && command.InitialStatus != domain.StatusConfirmed {
		return fail(command, failureReasonInvalidInitialStatus)
	}

	registration, registered, err := operations.RegisterForEvent(s.event, command.Attendee, s.registrations, command.OccurredAt)
	if err != nil {
		return fail(command, failureReasonInvalidRegistration+": "+err.Error())
	}

	if !registered {
		return failWith(command, ErrNoCapacity)
	}

	registration.ID = command.RegistrationID
	registration = operations.UpdateStatus(registration, command.InitialStatus)

	return core.SuccessDecision(core.BuildAttendeeRegistered(registration))
}

func fail(command Command, reason string) core.DecisionResult {
	return failWith(command, errors.New(reason))
}

func failWith(command Command, cause error) core.DecisionResult {
	event := core.BuildRegisteringAttendeeFailed(command.Attendee.Email, command.EventID.String(), cause.Error(), command.OccurredAt)

	return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.IsEventType(), cause))
}

func project(history core.DomainEvents, eventID string) state {
	s := state{knownIDs: make(map[string]bool)}
	positions := make(map[string]int)

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
			if e.EventID != eventID {
				continue
			}

			registration, err := core.RegistrationFrom(e)
			if err != nil {
				s.brokenHistory = err
				continue
			}

			s.knownIDs[e.RegistrationID] = true
			positions[e.RegistrationID] = len(s.registrations)
			s.registrations = append(s.registrations, registration)

		case core.RegistrationStatusChanged:
			i, ok := positions[e.RegistrationID]
			if !ok {
				continue
			}

			status, err := domain.ParseRegistrationStatus(e.ToStatus)
			if err != nil {
				s.brokenHistory = err
				continue
			}

			s.registrations[i] = operations.UpdateStatus(s.registrations[i], status)
		}
	}

	return s
}

// BuildEventFilter selects everything that decides about the capacity of eventID.
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
