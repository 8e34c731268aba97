package totalrevenue_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/query/totalrevenue"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/operations"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/core"
	"github.com/parsaloi/value-driven-domain-pattern/testutil/fixtures"
)

func Test_Project_ZeroWithoutRegistrations(t *testing.T) {
	// act
	result, err := totalrevenue.Project(core.DomainEvents{}, totalrevenue.BuildQuery(), 0)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "0.00 USD", result.Total.String())
	assert.Equal(t, 0, result.BillableRegistrations)
}

func Test_Project_SumsBillableRegistrations(t *testing.T) {
	// arrange
	concert := fixtures.Concert(t, "Summer Jam", 10, "25.50")
	workshop := fixtures.Workshop(t, "Go Generics", 10, 10, "120")
	confirmed := registration(t, concert, "alice@example.com", domain.StatusConfirmed)
	pending := registration(t, concert, "bob@example.com", domain.StatusPending)
	attended := registration(t, workshop, "carol@example.com", domain.StatusConfirmed)
	cancelled := registration(t, workshop, "dave@example.com", domain.StatusConfirmed)
	history := core.DomainEvents{
		core.BuildEventScheduled(concert, fixtures.BaseTime),
		core.BuildEventScheduled(workshop, fixtures.BaseTime),
		core.BuildAttendeeRegistered(confirmed),
		core.BuildAttendeeRegistered(pending),
		core.BuildAttendeeRegistered(attended),
		core.BuildAttendeeRegistered(cancelled),
		core.BuildRegistrationStatusChanged(attended.ID, workshop.ID(), domain.StatusConfirmed, domain.StatusAttended, fixtures.BaseTime),
		core.BuildRegistrationStatusChanged(cancelled.ID, workshop.ID(), domain.StatusConfirmed, domain.StatusCancelled, fixtures.BaseTime),
	}

	testCases := []struct {
		name             string
		query            totalrevenue.Query
		expectedTotal    string
		expectedBillable int
	}{
		{name: "all events", query: totalrevenue.BuildQuery(), expectedTotal: "145.50 USD", expectedBillable: 2},
		{name: "one event", query: totalrevenue.BuildQueryForEvent(concert.ID()), expectedTotal: "25.50 USD", expectedBillable: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result, err := totalrevenue.Project(history, tc.query, 8)

			// assert
			require.NoError(t, err)
			assert.Equal(t, tc.expectedTotal, result.Total.String())
			assert.Equal(t, tc.expectedBillable, result.BillableRegistrations)
		})
	}
}

func Test_Project_Error_MixedCurrencies(t *testing.T) {
	// arrange
	concert := fixtures.Concert(t, "Summer Jam", 10, "25")
	euroConcert, err := domain.NewConcert(
		fixtures.Details("Nachtmusik", fixtures.BaseTime, 10), "Die Gophers", "Jazz", fixtures.Money(t, "30", "EUR"))
	require.NoError(t, err)

	history := core.DomainEvents{
		core.BuildEventScheduled(concert, fixtures.BaseTime),
		core.BuildEventScheduled(euroConcert, fixtures.BaseTime),
		core.BuildAttendeeRegistered(registration(t, concert, "alice@example.com", domain.StatusConfirmed)),
		core.BuildAttendeeRegistered(registration(t, euroConcert, "bob@example.com", domain.StatusConfirmed)),
	}

	// act
	_, err = totalrevenue.Project(history, totalrevenue.BuildQuery(), 4)

	// assert
	assert.ErrorIs(t, err, operations.ErrCurrencyMismatch)
}

func registration(t *testing.T, event domain.Event, email string, status domain.RegistrationStatus) domain.Registration {
	t.Helper()

	r, err := domain.NewRegistration(uuid.New(), event.ID(), fixtures.Attendee(t, "Attendee", email), fixtures.BaseTime, status)
	require.NoError(t, err)

	return r
}
