package observable_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/shell"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/shell/observable"
	"github.com/parsaloi/value-driven-domain-pattern/testutil/observability/testdoubles"
)

func Test_QueryWrapper_Handle_Success(t *testing.T) {
	// arrange
	expected := mockResult{Items: []string{"a"}, SequenceNumber: 7}
	metrics := testdoubles.NewMetricsCollectorSpy(true)
	tracing := testdoubles.NewTracingCollectorSpy(true)
	logger := testdoubles.NewContextualLoggerSpy(true)

	wrapper, err := observable.NewQueryWrapper[mockQuery, mockResult](
		mockQueryHandler{result: expected},
		observable.WithQueryMetrics[mockQuery, mockResult](metrics),
		observable.WithQueryTracing[mockQuery, mockResult](tracing),
		observable.WithQueryContextualLogging[mockQuery, mockResult](logger),
	)
	require.NoError(t, err)

	// act
	result, err := wrapper.Handle(context.Background(), mockQuery{})

	// assert
	require.NoError(t, err)
	assert.Equal(t, expected, result)
	assert.True(t, metrics.HasRecordWithLabel(shell.QueryHandlerCallsMetric, shell.LogAttrQueryType, "TestQuery"))
	assert.True(t, tracing.HasFinishedSpanWithStatus(shell.SpanNameQueryHandle, shell.StatusSuccess))
	assert.True(t, logger.HasLog("info", shell.LogMsgQueryCompleted))
	assert.Equal(t, metrics, wrapper.ExposeMetricsCollector())
	assert.Equal(t, logger, wrapper.ExposeContextualLogger())
}

func Test_QueryWrapper_Handle_Canceled(t *testing.T) {
	// arrange
	metrics := testdoubles.NewMetricsCollectorSpy(true)
	logs := testdoubles.NewLogHandlerSpy(true)
	wrapper, err := observable.NewQueryWrapper[mockQuery, mockResult](
		mockQueryHandler{err: errors.Join(errors.New("query"), context.Canceled)},
		observable.WithQueryMetrics[mockQuery, mockResult](metrics),
		observable.WithQueryLogging[mockQuery, mockResult](logs.Logger()),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(context.Background(), mockQuery{})

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, metrics.HasCounterRecord(shell.QueryHandlerCanceledMetric))
	assert.True(t, logs.HasMessage(shell.LogMsgQueryFailed))
}
