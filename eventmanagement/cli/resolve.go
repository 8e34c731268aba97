package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/query/listevents"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/shell"
)

var ErrEventNotFound = errors.New("event not found")

// ResolveEvent finds an event by its index in the event list or by its ID.
func ResolveEvent(
	ctx context.Context,
	listEvents shell.CoreQueryHandler[listevents.Query, listevents.ScheduledEvents],
	ref string,
) (listevents.EventSummary, error) {

	ref = strings.TrimSpace(ref)

	events, err := listEvents.Handle(ctx, listevents.BuildQuery())
	if err != nil {
		return listevents.EventSummary{}, err
	}

	if index, convErr := strconv.Atoi(ref); convErr == nil {
		if index < 0 || index >= len(events.Events) {
			return listevents.EventSummary{}, errors.Join(ErrEventNotFound, fmt.Errorf("index %d out of range", index))
		}

		return events.Events[index], nil
	}

	eventID, err := domain.EventIDFrom(ref)
	if err != nil {
		return listevents.EventSummary{}, errors.Join(ErrEventNotFound, err)
	}

	for _, summary := range events.Events {
		if summary.EventID == eventID.String() {
			return summary, nil
		}
	}

	return listevents.EventSummary{}, errors.Join(ErrEventNotFound, fmt.Errorf("no event with ID %s", ref))
}
