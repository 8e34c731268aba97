package core_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/core"
)

func fee(t *testing.T) domain.Money {
	t.Helper()

	m, err := domain.ParseMoney("15", "EUR")
	require.NoError(t, err)

	return m
}

func details() domain.EventDetails {
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.FixedZone("CEST", 2*60*60))

	return domain.EventDetails{
		ID:           domain.GenerateEventID(),
		Name:         "Go Days",
		StartTime:    start,
		EndTime:      start.Add(8 * time.Hour),
		Location:     domain.Location{Name: "Expo", Address: "Fair Street 5"},
		MaxAttendees: 300,
	}
}

func Test_EventFrom_RebuildsEveryKind(t *testing.T) {
	concert, err := domain.NewConcert(details(), "Band", "Pop", fee(t))
	require.NoError(t, err)
	conference, err := domain.NewConference(details(), []string{"Ada"}, []string{"Go", "SQL"}, fee(t))
	require.NoError(t, err)
	exhibition, err := domain.NewExhibition(details(), "Light", []string{"Studio 1"}, fee(t))
	require.NoError(t, err)
	workshop, err := domain.NewWorkshop(details(), "Bob", "Advanced", fee(t), 12)
	require.NoError(t, err)

	for _, original := range []domain.Event{concert, conference, exhibition, workshop} {
		t.Run(original.Kind().String(), func(t *testing.T) {
			// arrange
			scheduled := core.BuildEventScheduled(original, time.Now())

			// act
			rebuilt, err := core.EventFrom(scheduled)

			// assert
			require.NoError(t, err)
			assert.Equal(t, original.Kind(), rebuilt.Kind())
			assert.Equal(t, original.ID(), rebuilt.ID())
			assert.True(t, original.StartTime().Equal(rebuilt.StartTime()))
			assert.True(t, original.Fee().Equal(rebuilt.Fee()))
			assert.True(t, scheduled.SameSchedule(core.BuildEventScheduled(rebuilt, time.Now().Add(time.Hour))))
		})
	}
}

func Test_BuildEventScheduled_NormalizesTimes(t *testing.T) {
	// arrange
	concert, err := domain.NewConcert(details(), "Band", "Pop", fee(t))
	require.NoError(t, err)

	// act
	scheduled := core.BuildEventScheduled(concert, time.Date(2025, 1, 1, 0, 0, 0, 1500, time.UTC))

	// assert
	assert.Equal(t, time.UTC, scheduled.StartTime.Location())
	assert.Equal(t, 1000, scheduled.OccurredAt.Nanosecond())
	assert.Equal(t, "15", scheduled.FeeAmount)
	assert.Equal(t, "EUR", scheduled.FeeCurrency)
}

func Test_SameSchedule_DetectsDifferentData(t *testing.T) {
	// arrange
	concert, err := domain.NewConcert(details(), "Band", "Pop", fee(t))
	require.NoError(t, err)
	scheduled := core.BuildEventScheduled(concert, time.Now())
	changed := scheduled
	changed.MaxAttendees++

	// act / assert
	assert.False(t, scheduled.SameSchedule(changed))
}

func Test_EventFrom_InvalidData(t *testing.T) {
	_, err := core.EventFrom(core.EventScheduled{EventID: "nope"})
	assert.ErrorIs(t, err, domain.ErrEventIDRequired)

	_, err = core.EventFrom(core.EventScheduled{EventID: uuid.NewString(), Kind: "Party"})
	assert.ErrorIs(t, err, domain.ErrUnknownEventKind)
}

func Test_RegistrationFrom(t *testing.T) {
	// arrange
	attendee, err := domain.NewAttendee(uuid.New(), "Jane", "jane@example.com", "555")
	require.NoError(t, err)
	registration, err := domain.NewRegistration(
		uuid.New(), domain.GenerateEventID(), attendee, core.ToOccurredAt(time.Now()), domain.StatusPending,
	)
	require.NoError(t, err)

	// act
	rebuilt, err := core.RegistrationFrom(core.BuildAttendeeRegistered(registration))

	// assert
	require.NoError(t, err)
	assert.Equal(t, registration, rebuilt)
}

func Test_DecisionResult(t *testing.T) {
	idempotent := core.IdempotentDecision()
	assert.False(t, idempotent.HasEventToAppend())
	assert.NoError(t, idempotent.HasError())

	failed := core.BuildSchedulingEventFailed("id", "id", "boom", time.Now())
	assert.True(t, failed.IsErrorEvent())

	errorDecision := core.ErrorDecision(failed, errors.New("boom"))
	assert.True(t, errorDecision.HasEventToAppend())
	assert.EqualError(t, errorDecision.HasError(), "boom")

	success := core.SuccessDecision(core.RegistrationStatusChanged{})
	assert.True(t, success.HasEventToAppend())
	assert.NoError(t, success.HasError())

	assert.Equal(t, "idempotent", idempotent.Outcome.String())
	assert.Equal(t, "error", errorDecision.Outcome.String())
	assert.Equal(t, "success", success.Outcome.String())
	assert.Equal(t, "unknown", core.DecisionResult{}.Outcome.String())
	assert.False(t, core.DecisionResult{}.HasEventToAppend())
}

func Test_BuildEventScheduled_KeepsTheExactFee(t *testing.T) {
	// arrange
	price, err := domain.ParseMoney("10.555", "USD")
	require.NoError(t, err)
	concert, err := domain.NewConcert(details(), "Band", "Pop", price)
	require.NoError(t, err)

	// act
	scheduled := core.BuildEventScheduled(concert, time.Now())
	rebuilt, err := core.EventFrom(scheduled)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "10.555", scheduled.FeeAmount)
	assert.True(t, price.Equal(rebuilt.Fee()))
	assert.Equal(t, "10.56 USD", rebuilt.Fee().String())
}

func Test_EventScheduled_SameSchedule_ComparesFeesByValue(t *testing.T) {
	// arrange
	concert, err := domain.NewConcert(details(), "Band", "Pop", fee(t))
	require.NoError(t, err)
	scheduled := core.BuildEventScheduled(concert, time.Now())
	padded := scheduled
	padded.FeeAmount = "15.00"
	different := scheduled
	different.FeeAmount = "15.01"

	// act & assert
	assert.True(t, scheduled.SameSchedule(padded))
	assert.False(t, scheduled.SameSchedule(different))
}
