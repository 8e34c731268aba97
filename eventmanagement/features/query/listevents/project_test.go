package listevents_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/query/listevents"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/core"
	"github.com/parsaloi/value-driven-domain-pattern/testutil/fixtures"
)

func Test_Project_ListsEventsInSchedulingOrder(t *testing.T) {
	// arrange
	workshop := fixtures.Workshop(t, "Go Generics", 20, 8, "120")
	concert := fixtures.Concert(t, "Summer Jam", 100, "25")
	history := core.DomainEvents{
		core.BuildEventScheduled(workshop, fixtures.BaseTime),
		core.BuildEventScheduled(concert, fixtures.BaseTime),
	}

	// act
	result := listevents.Project(history, listevents.BuildQuery(), 2)

	// assert
	require.Equal(t, 2, result.Count)
	assert.Equal(t, "Go Generics", result.Events[0].Name)
	assert.Equal(t, "Workshop", result.Events[0].Kind)
	assert.Equal(t, 8, result.Events[0].Capacity)
	assert.Equal(t, "120", result.Events[0].FeeAmount)
	assert.Equal(t, "Summer Jam", result.Events[1].Name)
	assert.Equal(t, "USD", result.Events[1].FeeCurrency)
	assert.Equal(t, uint(2), result.SequenceNumber)
}

func Test_Project_CountsActiveRegistrations(t *testing.T) {
	// arrange
	concert := fixtures.Concert(t, "Summer Jam", 3, "25")
	alice := registration(t, concert, "alice@example.com", domain.StatusConfirmed)
	bob := registration(t, concert, "bob@example.com", domain.StatusPending)
	history := core.DomainEvents{
		core.BuildEventScheduled(concert, fixtures.BaseTime),
		core.BuildAttendeeRegistered(alice),
		core.BuildAttendeeRegistered(bob),
		core.BuildRegistrationStatusChanged(bob.ID, concert.ID(), domain.StatusPending, domain.StatusCancelled, fixtures.BaseTime),
	}

	// act
	result := listevents.Project(history, listevents.BuildQuery(), 4)

	// assert
	require.Equal(t, 1, result.Count)
	assert.Equal(t, 1, result.Events[0].ActiveRegistrations)
	assert.Equal(t, 2, result.Events[0].AvailableSpots())
}

func Test_Project_FiltersByKindAndWindow(t *testing.T) {
	// arrange
	concert := fixtures.Concert(t, "Summer Jam", 100, "25")
	conference := fixtures.Conference(t, "GopherCon", 300, "450")
	exhibition := fixtures.Exhibition(t, "Retro Computing", 50, "10")
	history := core.DomainEvents{
		core.BuildEventScheduled(concert, fixtures.BaseTime),
		core.BuildEventScheduled(conference, fixtures.BaseTime),
		core.BuildEventScheduled(exhibition, fixtures.BaseTime),
	}

	testCases := []struct {
		name     string
		query    listevents.Query
		expected []string
	}{
		{name: "by kind", query: listevents.BuildFilteredQuery(domain.KindConference, time.Time{}, time.Time{}), expected: []string{"GopherCon"}},
		{name: "open until", query: listevents.BuildFilteredQuery(0, fixtures.BaseTime.Add(time.Hour), time.Time{}), expected: []string{"GopherCon", "Retro Computing"}},
		{name: "closed window", query: listevents.BuildFilteredQuery(0, fixtures.BaseTime, fixtures.BaseTime.Add(30*time.Hour)), expected: []string{"Summer Jam", "GopherCon"}},
		{name: "kind outside window", query: listevents.BuildFilteredQuery(domain.KindExhibition, fixtures.BaseTime, fixtures.BaseTime.Add(30*time.Hour)), expected: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := listevents.Project(history, tc.query, 3)

			// assert
			names := make([]string, 0, result.Count)
			for _, event := range result.Events {
				names = append(names, event.Name)
			}
			assert.Equal(t, tc.expected, names)
		})
	}
}

func Test_Project_ContinuesFromBase(t *testing.T) {
	// arrange
	concert := fixtures.Concert(t, "Summer Jam", 3, "25")
	alice := registration(t, concert, "alice@example.com", domain.StatusConfirmed)
	full := core.DomainEvents{
		core.BuildEventScheduled(concert, fixtures.BaseTime),
		core.BuildAttendeeRegistered(alice),
		core.BuildRegistrationStatusChanged(alice.ID, concert.ID(), domain.StatusConfirmed, domain.StatusCancelled, fixtures.BaseTime),
	}
	base := listevents.Project(full[:2], listevents.BuildQuery(), 2)

	// act
	continued := listevents.Project(full[2:], listevents.BuildQuery(), 3, base)
	replayed := listevents.Project(full, listevents.BuildQuery(), 3)

	// assert
	assert.Equal(t, replayed, continued)
	assert.Equal(t, 1, base.Events[0].ActiveRegistrations, "base must stay untouched")
}

func Test_Query_SnapshotType_DiffersPerFilter(t *testing.T) {
	// arrange
	all := listevents.BuildQuery()
	concerts := listevents.BuildFilteredQuery(domain.KindConcert, time.Time{}, time.Time{})

	// act & assert
	assert.NotEqual(t, all.SnapshotType(), concerts.SnapshotType())
	assert.Equal(t, "ListEvents", all.QueryType())
}

func Test_Query_SnapshotEligible_OnlyWithoutTimeWindow(t *testing.T) {
	testCases := []struct {
		description string
		query       listevents.Query
		expected    bool
	}{
		{"all events", listevents.BuildQuery(), true},
		{"one kind", listevents.BuildFilteredQuery(domain.KindConcert, time.Time{}, time.Time{}), true},
		{"from", listevents.BuildFilteredQuery(0, fixtures.BaseTime, time.Time{}), false},
		{"until", listevents.BuildFilteredQuery(0, time.Time{}, fixtures.BaseTime), false},
		{"window", listevents.BuildFilteredQuery(0, fixtures.BaseTime, fixtures.BaseTime.Add(24*time.Hour)), false},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.query.SnapshotEligible())
		})
	}
}

func registration(t *testing.T, event domain.Event, email string, status domain.RegistrationStatus) domain.Registration {
	t.Helper()

	r, err := domain.NewRegistration(uuid.New(), event.ID(), fixtures.Attendee(t, "Attendee", email), fixtures.BaseTime, status)
	require.NoError(t, err)

	return r
}
