package catalog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/catalog"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
)

func Test_Load_DecodesAllKinds(t *testing.T) {
	// act
	c, err := catalog.Load("testdata/festival.hcl")

	// assert
	require.NoError(t, err)
	require.Len(t, c.Entries, 4)

	concert, ok := c.Entries[0].Event.(domain.Concert)
	require.True(t, ok)
	assert.Equal(t, "concert/summer-jam", c.Entries[0].Key)
	assert.Equal(t, "Riverside Hall", concert.Location().Name)
	assert.Equal(t, "25.50 USD", concert.TicketPrice().String())
	assert.Equal(t, time.Date(2025, time.July, 1, 19, 0, 0, 0, time.UTC), concert.StartTime())

	conference, ok := c.Entries[1].Event.(domain.Conference)
	require.True(t, ok)
	assert.Equal(t, []string{"Rob Pike", "Russ Cox"}, conference.Speakers())

	exhibition, ok := c.Entries[2].Event.(domain.Exhibition)
	require.True(t, ok)
	assert.Equal(t, "Old Mill", exhibition.Location().Name)
	assert.Equal(t, "10.00 EUR", exhibition.EntryFee().String())

	workshop, ok := c.Entries[3].Event.(domain.Workshop)
	require.True(t, ok)
	assert.Equal(t, 12, workshop.MaxParticipants())
}

func Test_Load_DerivesStableEventIDs(t *testing.T) {
	// act
	first, firstErr := catalog.Load("testdata/festival.hcl")
	second, secondErr := catalog.Load("testdata/festival.hcl")

	// assert
	require.NoError(t, firstErr)
	require.NoError(t, secondErr)
	assert.Equal(t, first.Entries[0].Event.ID(), second.Entries[0].Event.ID())
	assert.NotEqual(t, first.Entries[0].Event.ID(), first.Entries[1].Event.ID())
}

func Test_Parse_AppliesTimezone(t *testing.T) {
	// arrange
	src := []byte(`
timezone = "Europe/Berlin"

event "concert" "night" {
  name          = "Night Session"
  start         = "2025-07-01 22:00"
  end           = "2025-07-01 23:30"
  venue         = { name = "Club", address = "Main Street 1" }
  max_attendees = 50
  fee           = 15
  artist        = "Trio"
  genre         = "Jazz"
}
`)

	// act
	c, err := catalog.Parse(src, "night.hcl")

	// assert
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.July, 1, 20, 0, 0, 0, time.UTC), c.Entries[0].Event.StartTime().UTC())
}

func Test_Parse_Error(t *testing.T) {
	testCases := []struct {
		name     string
		src      string
		contains string
	}{
		{
			name:     "syntax",
			src:      `event "concert" {`,
			contains: "failed to parse",
		},
		{
			name: "unknown venue",
			src: `
event "concert" "a" {
  name = "A"
  start = "2025-07-01 19:00"
  end = "2025-07-01 20:00"
  venue = venue.nowhere
  max_attendees = 1
  fee = 1
  artist = "x"
  genre = "y"
}`,
			contains: "failed to decode events",
		},
		{
			name: "venue without address",
			src: `
event "concert" "a" {
  name = "A"
  start = "2025-07-01 19:00"
  end = "2025-07-01 20:00"
  venue = { name = "Club" }
  max_attendees = 1
  fee = 1
  artist = "x"
  genre = "y"
}`,
			contains: catalog.ErrInvalidVenue.Error(),
		},
		{
			name: "unknown kind",
			src: `
event "circus" "a" {
  name = "A"
  start = "2025-07-01 19:00"
  end = "2025-07-01 20:00"
  venue = { name = "Tent", address = "Field" }
  max_attendees = 1
  fee = 1
}`,
			contains: domain.ErrUnknownEventKind.Error(),
		},
		{
			name: "bad date",
			src: `
event "concert" "a" {
  name = "A"
  start = "01.07.2025"
  end = "2025-07-01 20:00"
  venue = { name = "Club", address = "Main Street 1" }
  max_attendees = 1
  fee = 1
  artist = "x"
  genre = "y"
}`,
			contains: "start",
		},
		{
			name: "domain rule",
			src: `
event "concert" "a" {
  name = "A"
  start = "2025-07-01 19:00"
  end = "2025-07-01 20:00"
  venue = { name = "Club", address = "Main Street 1" }
  max_attendees = 0
  fee = 1
  artist = "x"
  genre = "y"
}`,
			contains: domain.ErrNonPositiveMaxAttendees.Error(),
		},
		{
			name: "duplicate key",
			src: `
event "concert" "a" {
  name = "A"
  start = "2025-07-01 19:00"
  end = "2025-07-01 20:00"
  venue = { name = "Club", address = "Main Street 1" }
  max_attendees = 1
  fee = 1
  artist = "x"
  genre = "y"
}
event "concert" "a" {
  name = "A"
  start = "2025-07-01 19:00"
  end = "2025-07-01 20:00"
  venue = { name = "Club", address = "Main Street 1" }
  max_attendees = 1
  fee = 1
  artist = "x"
  genre = "y"
}`,
			contains: catalog.ErrDuplicateEntry.Error(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, err := catalog.Parse([]byte(tc.src), "broken.hcl")

			// assert
			require.Error(t, err)
			assert.ErrorIs(t, err, catalog.ErrInvalidCatalog)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}
