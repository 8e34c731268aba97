package registerattendee

import (
	"time"

	"github.com/google/uuid"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/core"
)

const (
	commandType = "RegisterAttendee"
)

// Command represents the intent to register an attendee for an event.
// InitialStatus is PENDING or CONFIRMED.
type Command struct {
	EventID        domain.EventID
	RegistrationID uuid.UUID
	Attendee       domain.Attendee
	InitialStatus  domain.RegistrationStatus
	OccurredAt     core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand registers attendee as CONFIRMED.
func BuildCommand(eventID domain.EventID, registrationID uuid.UUID, attendee domain.Attendee, occurredAt time.Time) Command {
	return BuildCommandWithStatus(eventID, registrationID, attendee, domain.StatusConfirmed, occurredAt)
}

func BuildCommandWithStatus(
	eventID domain.EventID,
	registrationID uuid.UUID,
	attendee domain.Attendee,
	initialStatus domain.RegistrationStatus,
	occurredAt time.Time,
) Command {

	return Command{
		EventID:        eventID,
		RegistrationID: registrationID,
		Attendee:       attendee,
		InitialStatus:  initialStatus,
		OccurredAt:     core.ToOccurredAt(occurredAt),
	}
}
