package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
)

func Test_ValidateEvent(t *testing.T) {
	testCases := []struct {
		description string
		mutate      func(d *domain.EventDetails)
		expectedErr error
	}{
		{"valid", func(*domain.EventDetails) {}, nil},
		{"missing id", func(d *domain.EventDetails) { d.ID = domain.EventID{} }, domain.ErrEventIDRequired},
		{"blank name", func(d *domain.EventDetails) { d.Name = "  " }, domain.ErrBlankEventName},
		{"missing start", func(d *domain.EventDetails) { d.StartTime = time.Time{} }, domain.ErrMissingStartTime},
		{"missing end", func(d *domain.EventDetails) { d.EndTime = time.Time{} }, domain.ErrMissingEndTime},
		{"end before start", func(d *domain.EventDetails) { d.EndTime = d.StartTime.Add(-time.Minute) }, domain.ErrEndBeforeStart},
		{"end equals start", func(d *domain.EventDetails) { d.EndTime = d.StartTime }, nil},
		{"missing location", func(d *domain.EventDetails) { d.Location = domain.Location{} }, domain.ErrMissingLocation},
		{"blank address", func(d *domain.EventDetails) { d.Location.Address = " " }, domain.ErrBlankAddress},
		{"zero max attendees", func(d *domain.EventDetails) { d.MaxAttendees = 0 }, domain.ErrNonPositiveMaxAttendees},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// arrange
			d := validDetails()
			tc.mutate(&d)

			// act
			err := domain.ValidateEvent(d)

			// assert
			if tc.expectedErr == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func Test_NewConcert(t *testing.T) {
	// act
	concert, err := domain.NewConcert(validDetails(), "The Band", "Rock", usd(t, "49.99"))

	// assert
	require.NoError(t, err)
	assert.Equal(t, domain.KindConcert, concert.Kind())
	assert.Equal(t, "The Band", concert.Artist())
	assert.Equal(t, "49.99 USD", concert.Fee().String())
	assert.Equal(t, "Summer Jam", concert.Name())

	_, err = domain.NewConcert(validDetails(), " ", "Rock", usd(t, "49.99"))
	assert.ErrorIs(t, err, domain.ErrBlankArtist)

	_, err = domain.NewConcert(validDetails(), "The Band", "Rock", domain.Money{})
	assert.ErrorIs(t, err, domain.ErrMissingFee)
}

func Test_NewConference_CopiesAndValidatesLists(t *testing.T) {
	// arrange
	speakers := []string{"Ada", " ", "Grace"}

	// act
	conference, err := domain.NewConference(validDetails(), speakers, []string{"Go"}, usd(t, "100"))
	require.NoError(t, err)
	speakers[0] = "changed"
	returned := conference.Speakers()
	returned[0] = "changed again"

	// assert
	assert.Equal(t, []string{"Ada", "Grace"}, conference.Speakers())

	_, err = domain.NewConference(validDetails(), nil, []string{"Go"}, usd(t, "100"))
	assert.ErrorIs(t, err, domain.ErrNoSpeakers)

	_, err = domain.NewConference(validDetails(), []string{"Ada"}, []string{""}, usd(t, "100"))
	assert.ErrorIs(t, err, domain.ErrNoTopics)
}

func Test_NewExhibition(t *testing.T) {
	exhibition, err := domain.NewExhibition(validDetails(), "Modern Art", []string{"Gallery A"}, usd(t, "5"))
	require.NoError(t, err)
	assert.Equal(t, domain.KindExhibition, exhibition.Kind())
	assert.Equal(t, "5.00 USD", exhibition.EntryFee().String())

	_, err = domain.NewExhibition(validDetails(), "", []string{"Gallery A"}, usd(t, "5"))
	assert.ErrorIs(t, err, domain.ErrBlankTheme)

	_, err = domain.NewExhibition(validDetails(), "Modern Art", []string{}, usd(t, "5"))
	assert.ErrorIs(t, err, domain.ErrNoExhibitors)
}

func Test_NewWorkshop(t *testing.T) {
	workshop, err := domain.NewWorkshop(validDetails(), "Alice", "Beginner", usd(t, "20"), 10)
	require.NoError(t, err)
	assert.Equal(t, 10, workshop.MaxParticipants())
	assert.Equal(t, domain.KindWorkshop, workshop.Kind())

	_, err = domain.NewWorkshop(validDetails(), "", "Beginner", usd(t, "20"), 10)
	assert.ErrorIs(t, err, domain.ErrBlankInstructor)

	_, err = domain.NewWorkshop(validDetails(), "Alice", " ", usd(t, "20"), 10)
	assert.ErrorIs(t, err, domain.ErrBlankSkillLevel)

	_, err = domain.NewWorkshop(validDetails(), "Alice", "Beginner", usd(t, "20"), 0)
	assert.ErrorIs(t, err, domain.ErrNonPositiveMaxParticipants)
}

func Test_ParseEventKind(t *testing.T) {
	kind, err := domain.ParseEventKind("workshop")
	require.NoError(t, err)
	assert.Equal(t, domain.KindWorkshop, kind)
	assert.Equal(t, "Workshop", kind.String())

	_, err = domain.ParseEventKind("party")
	assert.ErrorIs(t, err, domain.ErrUnknownEventKind)
}
