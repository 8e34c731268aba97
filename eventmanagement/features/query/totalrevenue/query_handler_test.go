package totalrevenue_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/command/registerattendee"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/command/scheduleevent"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/query/totalrevenue"
	"github.com/parsaloi/value-driven-domain-pattern/testutil/fixtures"
)

func Test_QueryHandler_Handle_SumsConfirmedRegistrations(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := fixtures.MemoryStore(t)
	conference := fixtures.Conference(t, "GopherCon", 10, "450")
	_, err := scheduleevent.NewCommandHandler(store).Handle(ctx, scheduleevent.BuildCommand(conference, time.Now()))
	require.NoError(t, err)

	register := registerattendee.NewCommandHandler(store)
	for _, email := range []string{"alice@example.com", "bob@example.com"} {
		_, err = register.Handle(ctx, registerattendee.BuildCommand(conference.ID(), uuid.New(), fixtures.Attendee(t, "Attendee", email), time.Now()))
		require.NoError(t, err)
	}

	handler := totalrevenue.NewQueryHandler(store)

	// act
	result, err := handler.Handle(ctx, totalrevenue.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Equal(t, "900.00 USD", result.Total.String())
	assert.Equal(t, uint(3), result.SequenceNumber)
}

func Test_QueryHandler_Handle_SumsFeesWithoutRounding(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := fixtures.MemoryStore(t)
	concert := fixtures.Concert(t, "Rock Night", 10, "10.555")
	_, err := scheduleevent.NewCommandHandler(store).Handle(ctx, scheduleevent.BuildCommand(concert, time.Now()))
	require.NoError(t, err)

	register := registerattendee.NewCommandHandler(store)
	for _, email := range []string{"alice@example.com", "bob@example.com", "carol@example.com"} {
		_, err = register.Handle(ctx, registerattendee.BuildCommand(concert.ID(), uuid.New(), fixtures.Attendee(t, "Attendee", email), time.Now()))
		require.NoError(t, err)
	}

	handler := totalrevenue.NewQueryHandler(store)

	// act
	result, err := handler.Handle(ctx, totalrevenue.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Equal(t, "31.665", result.Total.Amount().String())
	assert.Equal(t, "31.67 USD", result.Total.String())
}

func Test_QueryHandler_Handle_Canceled(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	handler := totalrevenue.NewQueryHandler(fixtures.MemoryStore(t))

	// act
	_, err := handler.Handle(ctx, totalrevenue.BuildQuery())

	// assert
	assert.ErrorIs(t, err, context.Canceled)
}
