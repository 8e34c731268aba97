package changeregistrationstatus

import (
	"time"

	"github.com/google/uuid"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/core"
)

const (
	commandType = "ChangeRegistrationStatus"
)

// Command represents the intent to move a registration of the event with EventID to NewStatus.
type Command struct {
	EventID        domain.EventID
	RegistrationID uuid.UUID
	NewStatus      domain.RegistrationStatus
	OccurredAt     core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(
	eventID domain.EventID,
	registrationID uuid.UUID,
	newStatus domain.RegistrationStatus,
	occurredAt time.Time,
) Command {

	return Command{
		EventID:        eventID,
		RegistrationID: registrationID,
		NewStatus:      newStatus,
		OccurredAt:     core.ToOccurredAt(occurredAt),
	}
}
