package operations_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/operations"
)

func Test_UpdateStatus_ReturnsCopy(t *testing.T) {
	// arrange
	original := registration(t, concert(t, baseTime, 2, "10"), domain.StatusPending)

	// act
	updated := operations.UpdateStatus(original, domain.StatusConfirmed)

	// assert
	assert.Equal(t, domain.StatusPending, original.Status)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)
	assert.Equal(t, original.ID, updated.ID)
}

func Test_RegisterForEvent_CountsOnlyActiveRegistrationsOfThatEvent(t *testing.T) {
	// arrange
	event := concert(t, baseTime, 2, "10")
	other := concert(t, baseTime, 2, "10")
	existing := []domain.Registration{
		registration(t, event, domain.StatusConfirmed),
		registration(t, event, domain.StatusCancelled),
		registration(t, other, domain.StatusConfirmed),
		registration(t, other, domain.StatusConfirmed),
	}

	// act
	reg, ok, err := operations.RegisterForEvent(event, attendee(t, "jane@example.com"), existing, baseTime)

	// assert
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.StatusConfirmed, reg.Status)
	assert.Equal(t, event.ID(), reg.EventID)
}

func Test_RegisterForEvent_FullEvent(t *testing.T) {
	// arrange
	event := workshop(t, 10, 1)
	existing := []domain.Registration{registration(t, event, domain.StatusPending)}

	// act
	_, ok, err := operations.RegisterForEvent(event, attendee(t, "jane@example.com"), existing, baseTime)

	// assert
	require.NoError(t, err)
	assert.False(t, ok)
}

func Test_CalculateTotalRevenue_SumsConfirmedAndAttended(t *testing.T) {
	// arrange
	cheap := concert(t, baseTime, 10, "10")
	pricey := concert(t, baseTime, 10, "25.50")
	eventsByID := map[domain.EventID]domain.Event{cheap.ID(): cheap, pricey.ID(): pricey}
	registrations := []domain.Registration{
		registration(t, cheap, domain.StatusConfirmed),
		registration(t, cheap, domain.StatusPending),
		registration(t, pricey, domain.StatusAttended),
		registration(t, pricey, domain.StatusCancelled),
	}

	// act
	total, err := operations.CalculateTotalRevenue(registrations, eventsByID)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "35.50 USD", total.String())
}

func Test_CalculateTotalRevenue_EmptyAndUnknownEvent(t *testing.T) {
	total, err := operations.CalculateTotalRevenue(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "0.00 USD", total.String())

	orphan := registration(t, concert(t, baseTime, 10, "10"), domain.StatusConfirmed)
	_, err = operations.CalculateTotalRevenue([]domain.Registration{orphan}, map[domain.EventID]domain.Event{})
	assert.ErrorIs(t, err, operations.ErrUnknownEvent)
}
