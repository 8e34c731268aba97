package operations_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
)

var baseTime = time.Date(2025, 4, 15, 14, 30, 0, 0, time.UTC)

func money(t *testing.T, amount, code string) domain.Money {
	t.Helper()

	m, err := domain.ParseMoney(amount, code)
	require.NoError(t, err)

	return m
}

func details(name string, start time.Time, hours int, maxAttendees int) domain.EventDetails {
	return domain.EventDetails{
		ID:           domain.GenerateEventID(),
		Name:         name,
		StartTime:    start,
		EndTime:      start.Add(time.Duration(hours) * time.Hour),
		Location:     domain.Location{Name: "Hall", Address: "Main Street 1"},
		MaxAttendees: maxAttendees,
	}
}

func concert(t *testing.T, start time.Time, maxAttendees int, price string) domain.Concert {
	t.Helper()

	c, err := domain.NewConcert(details("Concert", start, 2, maxAttendees), "Artist", "Jazz", money(t, price, "USD"))
	require.NoError(t, err)

	return c
}

func workshop(t *testing.T, maxAttendees, maxParticipants int) domain.Workshop {
	t.Helper()

	w, err := domain.NewWorkshop(
		details("Workshop", baseTime, 4, maxAttendees),
		"Alice",
		"Beginner",
		money(t, "20", "USD"),
		maxParticipants,
	)
	require.NoError(t, err)

	return w
}

func attendee(t *testing.T, email string) domain.Attendee {
	t.Helper()

	a, err := domain.NewAttendee(uuid.New(), "Someone", email, "555-0100")
	require.NoError(t, err)

	return a
}

func registration(
	t *testing.T,
	event domain.Event,
	status domain.RegistrationStatus,
) domain.Registration {

	t.Helper()

	r, err := domain.NewRegistration(uuid.New(), event.ID(), attendee(t, uuid.NewString()+"@example.com"), baseTime, status)
	require.NoError(t, err)

	return r
}
