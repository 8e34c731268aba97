package scheduleevent

import (
	"time"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/core"
)

const (
	commandType = "ScheduleEvent"
)

// Command represents the intent to schedule a validated event.
type Command struct {
	Event      domain.Event
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(event domain.Event, occurredAt time.Time) Command {
	return Command{
		Event:      event,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
