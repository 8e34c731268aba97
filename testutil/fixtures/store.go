package fixtures

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/parsaloi/value-driven-domain-pattern/eventstore/memengine"
)

// MemoryStore returns an empty in-memory event store closed at the end of the test.
func MemoryStore(t testing.TB) *memengine.EventStore {
	t.Helper()

	store, err := memengine.NewEventStore()
	require.NoError(t, err)

	t.Cleanup(func() { _ = store.Close() })

	return store
}
