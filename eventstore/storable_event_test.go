package eventstore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
)

func Test_BuildStorableEvent_ErrorCases(t *testing.T) {
	now := time.Now()
	validPayload := []byte(`{"EventID": "e-1"}`)
	validMetadata := []byte(`{"MessageID": "m-1"}`)

	tests := []struct {
		name         string
		eventType    string
		payloadJSON  []byte
		metadataJSON []byte
		expectedErr  error
	}{
		{name: "empty event type", eventType: "", payloadJSON: validPayload, metadataJSON: validMetadata, expectedErr: eventstore.ErrEmptyEventType},
		{name: "invalid payload", eventType: "EventScheduled", payloadJSON: []byte(`{"x": nope}`), metadataJSON: validMetadata, expectedErr: eventstore.ErrInvalidPayloadJSON},
		{name: "nil payload", eventType: "EventScheduled", payloadJSON: nil, metadataJSON: validMetadata, expectedErr: eventstore.ErrInvalidPayloadJSON},
		{name: "invalid metadata", eventType: "EventScheduled", payloadJSON: validPayload, metadataJSON: []byte(`{`), expectedErr: eventstore.ErrInvalidMetadataJSON},
		{name: "empty metadata", eventType: "EventScheduled", payloadJSON: validPayload, metadataJSON: []byte(``), expectedErr: eventstore.ErrInvalidMetadataJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := eventstore.BuildStorableEvent(tt.eventType, now, tt.payloadJSON, tt.metadataJSON)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func Test_BuildStorableEvent_Success(t *testing.T) {
	// arrange
	occurredAt := time.Now()
	payload := []byte(`{"EventID": "e-1", "Name": "Rock Night"}`)
	metadata := []byte(`{"CorrelationID": "c-1"}`)

	// act
	event, err := eventstore.BuildStorableEvent("EventScheduled", occurredAt, payload, metadata)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "EventScheduled", event.EventType)
	assert.Equal(t, occurredAt, event.OccurredAt)
	assert.Equal(t, payload, event.PayloadJSON)
	assert.Equal(t, metadata, event.MetadataJSON)
}

func Test_BuildStorableEventWithEmptyMetadata(t *testing.T) {
	event, err := eventstore.BuildStorableEventWithEmptyMetadata("AttendeeRegistered", time.Now(), []byte(`{}`))

	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), event.MetadataJSON)

	_, err = eventstore.BuildStorableEventWithEmptyMetadata("AttendeeRegistered", time.Now(), []byte(`[`))
	assert.ErrorIs(t, err, eventstore.ErrInvalidPayloadJSON)
}
