package fixtures

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
)

// BaseTime is the start time of fixture events unless overridden.
var BaseTime = time.Date(2025, 4, 15, 14, 30, 0, 0, time.UTC)

// Money parses amount in currency code.
func Money(t testing.TB, amount, code string) domain.Money {
	t.Helper()

	m, err := domain.ParseMoney(amount, code)
	require.NoError(t, err)

	return m
}

// Details are valid event details starting at start, lasting three hours.
func Details(name string, start time.Time, maxAttendees int) domain.EventDetails {
	return domain.EventDetails{
		ID:           domain.GenerateEventID(),
		Name:         name,
		StartTime:    start,
		EndTime:      start.Add(3 * time.Hour),
		Location:     domain.Location{Name: "Riverside Hall", Address: "12 Quay Road"},
		MaxAttendees: maxAttendees,
	}
}

func Concert(t testing.TB, name string, maxAttendees int, ticketPrice string) domain.Concert {
	t.Helper()

	concert, err := domain.NewConcert(Details(name, BaseTime, maxAttendees), "The Gophers", "Rock", Money(t, ticketPrice, "USD"))
	require.NoError(t, err)

	return concert
}

func Conference(t testing.TB, name string, maxAttendees int, fee string) domain.Conference {
	t.Helper()

	conference, err := domain.NewConference(
		Details(name, BaseTime.Add(24*time.Hour), maxAttendees),
		[]string{"Ada Lovelace", "Grace Hopper"},
		[]string{"Compilers", "Concurrency"},
		Money(t, fee, "USD"),
	)
	require.NoError(t, err)

	return conference
}

func Exhibition(t testing.TB, name string, maxAttendees int, fee string) domain.Exhibition {
	t.Helper()

	exhibition, err := domain.NewExhibition(
		Details(name, BaseTime.Add(48*time.Hour), maxAttendees),
		"Modern Light",
		[]string{"Studio North", "Atelier 9"},
		Money(t, fee, "USD"),
	)
	require.NoError(t, err)

	return exhibition
}

func Workshop(t testing.TB, name string, maxAttendees, maxParticipants int, fee string) domain.Workshop {
	t.Helper()

	workshop, err := domain.NewWorkshop(
		Details(name, BaseTime.Add(72*time.Hour), maxAttendees),
		"Rob Pike",
		"Intermediate",
		Money(t, fee, "USD"),
		maxParticipants,
	)
	require.NoError(t, err)

	return workshop
}

func Attendee(t testing.TB, name, email string) domain.Attendee {
	t.Helper()

	attendee, err := domain.NewAttendee(uuid.New(), name, email, "555-0100")
	require.NoError(t, err)

	return attendee
}
