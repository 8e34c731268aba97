package memengine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
	"github.com/parsaloi/value-driven-domain-pattern/eventstore/internal/enginetest"
	"github.com/parsaloi/value-driven-domain-pattern/eventstore/memengine"
	"github.com/parsaloi/value-driven-domain-pattern/testutil/observability/testdoubles"
)

func Test_MemoryEngine_Contract(t *testing.T) {
	enginetest.Run(t, func(t *testing.T) enginetest.Engine {
		es, err := memengine.NewEventStore()
		require.NoError(t, err)

		return es
	})
}

func Test_MemoryEngine_RejectsNonObjectPayload(t *testing.T) {
	// arrange
	es, err := memengine.NewEventStore()
	require.NoError(t, err)
	event := enginetest.Event(t, "EventScheduled", `["not", "an", "object"]`, 0)

	// act
	err = es.Append(context.Background(), eventstore.BuildEventFilter().MatchingAnyEvent(), 0, event)

	// assert
	assert.ErrorIs(t, err, eventstore.ErrAppendingEventFailed)
	assert.Equal(t, 0, es.Len())
}

func Test_MemoryEngine_Closed(t *testing.T) {
	es, err := memengine.NewEventStore()
	require.NoError(t, err)
	require.NoError(t, es.Close())

	_, _, err = es.Query(context.Background(), eventstore.BuildEventFilter().MatchingAnyEvent())
	assert.ErrorIs(t, err, memengine.ErrEventStoreClosed)
}

func Test_MemoryEngine_Observability(t *testing.T) {
	// arrange
	metrics := testdoubles.NewMetricsCollectorSpy(true)
	tracing := testdoubles.NewTracingCollectorSpy(true)
	logger := testdoubles.NewLogHandlerSpy(true)

	es, err := memengine.NewEventStore(
		memengine.WithMetrics(metrics),
		memengine.WithTracing(tracing),
		memengine.WithLogger(logger.Logger()),
	)
	require.NoError(t, err)

	ctx := context.Background()
	filter := eventstore.BuildEventFilter().Matching().AnyEventTypeOf("EventScheduled").Finalize()

	// act
	require.NoError(t, es.Append(ctx, filter, 0, enginetest.Event(t, "EventScheduled", `{"EventID": "e-1"}`, 0)))
	_ = es.Append(ctx, filter, 0, enginetest.Event(t, "EventScheduled", `{"EventID": "e-2"}`, 1))
	_, _, err = es.Query(ctx, filter)
	require.NoError(t, err)

	// assert
	assert.True(t, metrics.HasDurationRecord("eventstore_append_duration_seconds"))
	assert.True(t, metrics.HasDurationRecord("eventstore_query_duration_seconds"))
	assert.True(t, metrics.HasCounterRecord("eventstore_concurrency_conflicts_total"))
	assert.True(t, tracing.HasSpan("eventstore.append"))
	assert.True(t, tracing.HasSpan("eventstore.query"))
	assert.True(t, logger.HasMessage("concurrency conflict detected"))
}
