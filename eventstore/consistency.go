package eventstore

import "context"

// ConsistencyLevel tells an engine whether a read must see the latest writes.
type ConsistencyLevel int

const (
	// StrongConsistency is the default. Command handlers doing read-check-write need it.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency allows an engine to serve reads from a replica.
	// Pure query handlers can tolerate slightly stale data.
	EventualConsistency
)

type contextKey string

// ConsistencyLevelKey is the context key carrying the ConsistencyLevel.
const ConsistencyLevelKey contextKey = "eventstore.consistency_level"

// WithStrongConsistency returns a context requesting read-after-write consistency.
//
//	ctx = eventstore.WithStrongConsistency(ctx)
//	events, maxSeq, err := store.Query(ctx, filter)
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, StrongConsistency)
}

// WithEventualConsistency returns a context allowing reads from a replica.
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, EventualConsistency)
}

// GetConsistencyLevel extracts the ConsistencyLevel from ctx, StrongConsistency if none is set.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(ConsistencyLevelKey).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}
