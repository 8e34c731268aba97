package cli_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/cli"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/command/scheduleevent"
	"github.com/parsaloi/value-driven-domain-pattern/testutil/fixtures"
)

func givenHandlersWithEvents(t *testing.T, events ...domain.Event) cli.Handlers {
	t.Helper()

	handlers, err := cli.NewHandlers(fixtures.MemoryStore(t), cli.Observability{})
	require.NoError(t, err)

	for _, event := range events {
		_, err = handlers.ScheduleEvent.Handle(context.Background(), scheduleevent.BuildCommand(event, time.Now()))
		require.NoError(t, err)
	}

	return handlers
}

func Test_ResolveEvent(t *testing.T) {
	// arrange
	concert := fixtures.Concert(t, "Rock Night", 10, "50")
	workshop := fixtures.Workshop(t, "Go Basics", 10, 5, "20")
	handlers := givenHandlersWithEvents(t, concert, workshop)

	testCases := []struct {
		description string
		ref         string
		expected    string
	}{
		{description: "first index", ref: "0", expected: "Rock Night"},
		{description: "second index", ref: " 1 ", expected: "Go Basics"},
		{description: "event ID", ref: workshop.ID().String(), expected: "Go Basics"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			summary, err := cli.ResolveEvent(context.Background(), handlers.ListEvents, tc.ref)

			// assert
			require.NoError(t, err)
			assert.Equal(t, tc.expected, summary.Name)
		})
	}
}

func Test_ResolveEvent_Error(t *testing.T) {
	// arrange
	handlers := givenHandlersWithEvents(t, fixtures.Concert(t, "Rock Night", 10, "50"))

	for _, ref := range []string{"1", "-1", "rock night", domain.GenerateEventID().String()} {
		t.Run(ref, func(t *testing.T) {
			// act
			_, err := cli.ResolveEvent(context.Background(), handlers.ListEvents, ref)

			// assert
			assert.ErrorIs(t, err, cli.ErrEventNotFound)
		})
	}
}
