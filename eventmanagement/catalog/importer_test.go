package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/catalog"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/command/scheduleevent"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/query/listevents"
	"github.com/parsaloi/value-driven-domain-pattern/testutil/fixtures"
)

func Test_Import_SchedulesOnceAndIsRepeatable(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := fixtures.MemoryStore(t)
	scheduler := scheduleevent.NewCommandHandler(store)
	c, err := catalog.Load("testdata/festival.hcl")
	require.NoError(t, err)

	// act
	first, firstErr := catalog.Import(ctx, scheduler, c, time.Now())
	second, secondErr := catalog.Import(ctx, scheduler, c, time.Now())

	// assert
	require.NoError(t, firstErr)
	require.NoError(t, secondErr)
	assert.Len(t, first.Scheduled, 4)
	assert.NoError(t, first.Err())
	assert.Empty(t, second.Scheduled)
	assert.Len(t, second.Unchanged, 4)

	listed, err := listevents.NewQueryHandler(store).Handle(ctx, listevents.BuildQuery())
	require.NoError(t, err)
	assert.Equal(t, 4, listed.Count)
}

func Test_Import_ReportsChangedEntries(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := fixtures.MemoryStore(t)
	scheduler := scheduleevent.NewCommandHandler(store)
	original, err := catalog.Load("testdata/festival.hcl")
	require.NoError(t, err)
	_, err = catalog.Import(ctx, scheduler, original, time.Now())
	require.NoError(t, err)

	changed, err := catalog.Parse([]byte(`
venue "riverside" {
  name    = "Riverside Hall"
  address = "12 Quay Road"
}

event "concert" "summer-jam" {
  name          = "Summer Jam"
  start         = "2025-07-01 19:00"
  end           = "2025-07-01 23:00"
  venue         = venue.riverside
  max_attendees = 600
  fee           = 25.50
  artist        = "The Gophers"
  genre         = "Rock"
}
`), "changed.hcl")
	require.NoError(t, err)

	// act
	report, err := catalog.Import(ctx, scheduler, changed, time.Now())

	// assert
	require.NoError(t, err)
	require.Contains(t, report.Failed, "concert/summer-jam")
	assert.ErrorContains(t, report.Err(), "event already scheduled")
}

func Test_Import_StopsOnCanceledContext(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c, err := catalog.Load("testdata/festival.hcl")
	require.NoError(t, err)

	// act
	report, err := catalog.Import(ctx, scheduleevent.NewCommandHandler(fixtures.MemoryStore(t)), c, time.Now())

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Scheduled)
}
