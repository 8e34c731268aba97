package operations_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/operations"
)

func Test_FindEventsByTimeRange_KeepsOnlyFullyContainedEvents(t *testing.T) {
	// arrange
	inside := concert(t, baseTime.Add(time.Hour), 10, "10")
	startsBefore := concert(t, baseTime.Add(-time.Hour), 10, "10")
	endsAfter := concert(t, baseTime.Add(23*time.Hour), 10, "10")
	onBoundary := concert(t, baseTime, 10, "10")
	events := []domain.Event{inside, startsBefore, endsAfter, onBoundary}

	// act
	found := operations.FindEventsByTimeRange(events, baseTime, baseTime.Add(24*time.Hour))

	// assert
	assert.Equal(t, []domain.Event{inside, onBoundary}, found)
}

func Test_SearchEvents(t *testing.T) {
	// arrange
	c := concert(t, baseTime, 10, "10")
	w := workshop(t, 10, 5)

	// act
	found := operations.SearchEvents([]domain.Event{c, w}, func(e domain.Event) bool {
		return e.Kind() == domain.KindWorkshop
	})

	// assert
	assert.Equal(t, []domain.Event{w}, found)
}

func Test_Capacity(t *testing.T) {
	assert.Equal(t, 10, operations.Capacity(concert(t, baseTime, 10, "10")))
	assert.Equal(t, 5, operations.Capacity(workshop(t, 10, 5)))
	assert.Equal(t, 3, operations.Capacity(workshop(t, 3, 5)))
}

func Test_HasAvailableCapacity(t *testing.T) {
	event := concert(t, baseTime, 2, "10")

	assert.True(t, operations.HasAvailableCapacity(event, 1))
	assert.False(t, operations.HasAvailableCapacity(event, 2))
}

func Test_EventFee_IsKindSpecific(t *testing.T) {
	assert.Equal(t, "12.00 USD", operations.EventFee(concert(t, baseTime, 2, "12")).String())
	assert.Equal(t, "20.00 USD", operations.EventFee(workshop(t, 2, 2)).String())
}
