package shell_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/core"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/shell"
	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
)

func scheduledConference(t *testing.T) core.EventScheduled {
	t.Helper()

	fee, err := domain.ParseMoney("99.90", "EUR")
	require.NoError(t, err)

	start := time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)
	conference, err := domain.NewConference(domain.EventDetails{
		ID:           domain.GenerateEventID(),
		Name:         "GopherCon",
		StartTime:    start,
		EndTime:      start.Add(48 * time.Hour),
		Location:     domain.Location{Name: "Center", Address: "Somewhere 1"},
		MaxAttendees: 500,
	}, []string{"Rob", "Ken"}, []string{"Generics"}, fee)
	require.NoError(t, err)

	return core.BuildEventScheduled(conference, time.Now())
}

func Test_StorableEventFrom_RoundTripsThroughDomainEventFrom(t *testing.T) {
	registration := core.BuildRegistrationStatusChanged(
		uuid.New(), domain.GenerateEventID(), domain.StatusPending, domain.StatusConfirmed, time.Now(),
	)

	testCases := []core.DomainEvent{
		scheduledConference(t),
		registration,
		core.BuildAttendeeRegistered(domain.Registration{
			ID:           uuid.New(),
			EventID:      domain.GenerateEventID(),
			Attendee:     domain.Attendee{ID: uuid.New(), Name: "Jane", Email: "jane@example.com", Phone: "1"},
			RegisteredAt: time.Now(),
			Status:       domain.StatusConfirmed,
		}),
		core.BuildSchedulingEventFailed("e", "e", "event already scheduled", time.Now()),
		core.BuildRegisteringAttendeeFailed("a@b", "e", "no capacity available", time.Now()),
		core.BuildChangingRegistrationStatusFailed("r", "e", "registration is cancelled", time.Now()),
	}

	for _, original := range testCases {
		t.Run(original.IsEventType(), func(t *testing.T) {
			// arrange
			metadata := shell.NewCommandMetadata()

			// act
			storable, err := shell.StorableEventFrom(original, metadata)
			require.NoError(t, err)
			envelope, err := shell.EventEnvelopeFrom(storable)

			// assert
			require.NoError(t, err)
			assert.Equal(t, original.IsEventType(), storable.EventType)
			assert.Equal(t, original, envelope.DomainEvent)
			assert.Equal(t, metadata, envelope.EventMetadata)
			assert.Equal(t, metadata.MessageID, metadata.CorrelationID)
		})
	}
}

func Test_DomainEventFrom_UnknownEventType(t *testing.T) {
	// arrange
	storable, err := eventstore.BuildStorableEventWithEmptyMetadata("BookLent", time.Now(), []byte(`{}`))
	require.NoError(t, err)

	// act
	_, err = shell.DomainEventsFrom(eventstore.StorableEvents{storable})

	// assert
	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventFailed)
	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventUnknownEventType)
}

func Test_DomainEventFrom_BrokenPayload(t *testing.T) {
	// arrange
	storable, err := eventstore.BuildStorableEventWithEmptyMetadata(
		core.EventScheduledEventType, time.Now(), []byte(`{"MaxAttendees": "many"}`),
	)
	require.NoError(t, err)

	// act
	_, err = shell.DomainEventFrom(storable)

	// assert
	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventFailed)
}

func Test_EventEnvelopesFrom(t *testing.T) {
	// arrange
	first, err := shell.StorableEventFrom(scheduledConference(t), shell.NewCommandMetadata())
	require.NoError(t, err)
	second, err := shell.StorableEventFrom(scheduledConference(t), shell.NewCommandMetadata())
	require.NoError(t, err)

	// act
	envelopes, err := shell.EventEnvelopesFrom(eventstore.StorableEvents{first, second})

	// assert
	require.NoError(t, err)
	assert.Len(t, envelopes, 2)
	assert.NotEqual(t, envelopes[0].EventMetadata.MessageID, envelopes[1].EventMetadata.MessageID)
}
