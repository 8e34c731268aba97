package eventstore

import (
	"errors"
)

var (
	ErrEmptyTableNameSupplied = errors.New("empty table name supplied")
	ErrConcurrencyConflict    = errors.New("concurrency error, no rows were affected")
	ErrNilDatabaseConnection  = errors.New("database connection must not be nil")
	ErrQueryingEventsFailed   = errors.New("querying events failed")
	ErrAppendingEventFailed   = errors.New("appending event failed")
	ErrBuildingQueryFailed    = errors.New("building query failed")
)

// MaxSequenceNumberUint is the highest sequence number of a "dynamic event stream", 0 for an empty one.
type MaxSequenceNumberUint = uint
