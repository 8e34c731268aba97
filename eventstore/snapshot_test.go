package eventstore_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
)

func Test_BuildSnapshot(t *testing.T) {
	tests := []struct {
		name           string
		projectionType string
		filterHash     string
		data           json.RawMessage
		expectedErr    error
	}{
		{name: "valid", projectionType: "ListEvents", filterHash: "abc", data: json.RawMessage(`{"Events":[]}`)},
		{name: "empty projection type", projectionType: "", filterHash: "abc", data: json.RawMessage(`{}`), expectedErr: eventstore.ErrEmptyProjectionType},
		{name: "empty filter hash", projectionType: "ListEvents", filterHash: "", data: json.RawMessage(`{}`), expectedErr: eventstore.ErrEmptyFilterHash},
		{name: "invalid json", projectionType: "ListEvents", filterHash: "abc", data: json.RawMessage(`{"Events":`), expectedErr: eventstore.ErrInvalidSnapshotJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot, err := eventstore.BuildSnapshot(tt.projectionType, tt.filterHash, 42, tt.data)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, uint(42), snapshot.SequenceNumber)
			assert.False(t, snapshot.CreatedAt.IsZero())
		})
	}
}
