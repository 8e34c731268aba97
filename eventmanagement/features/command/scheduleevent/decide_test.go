package scheduleevent_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/command/scheduleevent"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/core"
	"github.com/parsaloi/value-driven-domain-pattern/testutil/fixtures"
)

func Test_Decide_Success_WhenEventIDIsFree(t *testing.T) {
	// arrange
	concert := fixtures.Concert(t, "Summer Jam", 100, "25")
	command := scheduleevent.BuildCommand(concert, time.Now())

	// act
	result := scheduleevent.Decide(core.DomainEvents{}, command)

	// assert
	require.NoError(t, result.HasError())
	require.True(t, result.HasEventToAppend())
	scheduled, ok := result.Event.(core.EventScheduled)
	require.True(t, ok)
	assert.Equal(t, concert.ID().String(), scheduled.EventID)
	assert.Equal(t, "Concert", scheduled.Kind)
	assert.Equal(t, "The Gophers", scheduled.Artist)
	assert.Equal(t, "25", scheduled.FeeAmount)
}

func Test_Decide_Idempotent_WhenSameEventAlreadyScheduled(t *testing.T) {
	// arrange
	workshop := fixtures.Workshop(t, "Go Generics", 30, 12, "80")
	history := core.DomainEvents{core.BuildEventScheduled(workshop, time.Now().Add(-time.Hour))}
	command := scheduleevent.BuildCommand(workshop, time.Now())

	// act
	result := scheduleevent.Decide(history, command)

	// assert
	assert.False(t, result.HasEventToAppend())
	assert.NoError(t, result.HasError())
}

func Test_Decide_Error_WhenEventIDTakenByDifferentEvent(t *testing.T) {
	// arrange
	original := fixtures.Concert(t, "Summer Jam", 100, "25")
	details := original.Details()
	details.Name = "Winter Jam"
	changed, err := domain.NewConcert(details, original.Artist(), original.Genre(), original.TicketPrice())
	require.NoError(t, err)

	history := core.DomainEvents{core.BuildEventScheduled(original, time.Now().Add(-time.Hour))}
	command := scheduleevent.BuildCommand(changed, time.Now())

	// act
	result := scheduleevent.Decide(history, command)

	// assert
	require.True(t, result.HasEventToAppend())
	require.Error(t, result.HasError())
	assert.Contains(t, result.HasError().Error(), "event already scheduled")
	failed, ok := result.Event.(core.SchedulingEventFailed)
	require.True(t, ok)
	assert.Equal(t, original.ID().String(), failed.EventID)
	assert.True(t, failed.IsErrorEvent())
}
