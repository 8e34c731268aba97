package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
)

func Test_NewAttendee(t *testing.T) {
	attendee, err := domain.NewAttendee(uuid.New(), "Jane", " jane@example.com ", "555-0100")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", attendee.Email)

	_, err = domain.NewAttendee(uuid.New(), " ", "jane@example.com", "")
	assert.ErrorIs(t, err, domain.ErrBlankAttendeeName)

	_, err = domain.NewAttendee(uuid.New(), "Jane", "jane.example.com", "")
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = domain.NewAttendee(uuid.Nil, "Jane", "jane@example.com", "")
	assert.ErrorIs(t, err, domain.ErrAttendeeIDRequired)
}

func Test_SameEmail_IgnoresCase(t *testing.T) {
	assert.True(t, domain.SameEmail("Jane@Example.com", "jane@example.com "))
	assert.False(t, domain.SameEmail("jane@example.com", "john@example.com"))
}

func Test_NewLocation(t *testing.T) {
	_, err := domain.NewLocation("", "Main Street 1")
	assert.ErrorIs(t, err, domain.ErrBlankLocationName)

	_, err = domain.NewLocation("Arena", "")
	assert.ErrorIs(t, err, domain.ErrBlankAddress)
}

func Test_EventIDFrom(t *testing.T) {
	id := domain.GenerateEventID()

	parsed, err := domain.EventIDFrom(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = domain.EventIDFrom("not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrEventIDRequired)

	_, err = domain.EventIDFrom(uuid.Nil.String())
	assert.ErrorIs(t, err, domain.ErrEventIDRequired)
}

func Test_ParseRegistrationStatus(t *testing.T) {
	status, err := domain.ParseRegistrationStatus("attended")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAttended, status)
	assert.True(t, status.IsBillable())
	assert.False(t, domain.StatusCancelled.IsActive())

	_, err = domain.ParseRegistrationStatus("WAITING")
	assert.ErrorIs(t, err, domain.ErrUnknownRegistrationStatus)
}

func Test_NewRegistration_RequiresAllFields(t *testing.T) {
	attendee, err := domain.NewAttendee(uuid.New(), "Jane", "jane@example.com", "")
	require.NoError(t, err)
	eventID := domain.GenerateEventID()
	now := time.Now()

	_, err = domain.NewRegistration(uuid.New(), eventID, attendee, now, domain.StatusConfirmed)
	assert.NoError(t, err)

	_, err = domain.NewRegistration(uuid.Nil, eventID, attendee, now, domain.StatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrRegistrationIDRequired)

	_, err = domain.NewRegistration(uuid.New(), domain.EventID{}, attendee, now, domain.StatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrEventIDRequired)

	_, err = domain.NewRegistration(uuid.New(), eventID, domain.Attendee{}, now, domain.StatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrMissingAttendee)

	_, err = domain.NewRegistration(uuid.New(), eventID, attendee, time.Time{}, domain.StatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrMissingRegistrationTime)

	_, err = domain.NewRegistration(uuid.New(), eventID, attendee, now, "LOST")
	assert.ErrorIs(t, err, domain.ErrUnknownRegistrationStatus)
}
