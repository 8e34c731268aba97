package changeregistrationstatus_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/command/changeregistrationstatus"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/command/registerattendee"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/command/scheduleevent"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/core"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/shell"
	"github.com/parsaloi/value-driven-domain-pattern/eventstore/memengine"
	"github.com/parsaloi/value-driven-domain-pattern/testutil/fixtures"
)

func Test_CommandHandler_Handle_ConfirmThenAttend(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := fixtures.MemoryStore(t)
	concert, registrationID := givenPendingRegistration(ctx, t, store)
	handler := changeregistrationstatus.NewCommandHandler(store)

	// act
	confirmed, confirmErr := handler.Handle(ctx, changeregistrationstatus.BuildCommand(concert.ID(), registrationID, domain.StatusConfirmed, time.Now()))
	attended, attendErr := handler.Handle(ctx, changeregistrationstatus.BuildCommand(concert.ID(), registrationID, domain.StatusAttended, time.Now()))

	// assert
	require.NoError(t, confirmErr)
	require.NoError(t, attendErr)
	assert.False(t, confirmed.Idempotent)
	assert.False(t, attended.Idempotent)

	history := loadHistory(ctx, t, store, concert.ID())
	require.Len(t, history, 4)
	last, ok := history[3].(core.RegistrationStatusChanged)
	require.True(t, ok)
	assert.Equal(t, "ATTENDED", last.ToStatus)
}

func Test_CommandHandler_Handle_Idempotent(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := fixtures.MemoryStore(t)
	concert, registrationID := givenPendingRegistration(ctx, t, store)
	handler := changeregistrationstatus.NewCommandHandler(store)

	// act
	result, err := handler.Handle(ctx, changeregistrationstatus.BuildCommand(concert.ID(), registrationID, domain.StatusPending, time.Now()))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
}

func Test_CommandHandler_Handle_Error_CancelledIsFinal(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := fixtures.MemoryStore(t)
	concert, registrationID := givenPendingRegistration(ctx, t, store)
	handler := changeregistrationstatus.NewCommandHandler(store, changeregistrationstatus.WithRetryOptions(shell.WithMaxAttempts(1)))
	_, err := handler.Handle(ctx, changeregistrationstatus.BuildCommand(concert.ID(), registrationID, domain.StatusCancelled, time.Now()))
	require.NoError(t, err)

	// act
	_, err = handler.Handle(ctx, changeregistrationstatus.BuildCommand(concert.ID(), registrationID, domain.StatusConfirmed, time.Now()))

	// assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registration status is final")
}

func givenPendingRegistration(ctx context.Context, t *testing.T, store *memengine.EventStore) (domain.Concert, uuid.UUID) {
	t.Helper()

	concert := fixtures.Concert(t, "Summer Jam", 10, "25")
	_, err := scheduleevent.NewCommandHandler(store).Handle(ctx, scheduleevent.BuildCommand(concert, time.Now()))
	require.NoError(t, err)

	registrationID := uuid.New()
	_, err = registerattendee.NewCommandHandler(store).Handle(ctx, registerattendee.BuildCommandWithStatus(
		concert.ID(), registrationID, fixtures.Attendee(t, "Alice", "alice@example.com"), domain.StatusPending, time.Now()))
	require.NoError(t, err)

	return concert, registrationID
}

func loadHistory(ctx context.Context, t *testing.T, store *memengine.EventStore, eventID domain.EventID) core.DomainEvents {
	t.Helper()

	storableEvents, _, err := store.Query(ctx, changeregistrationstatus.BuildEventFilter(eventID))
	require.NoError(t, err)

	history, err := shell.DomainEventsFrom(storableEvents)
	require.NoError(t, err)

	return history
}
