package adapters

import (
	"context"
)

// DBAdapter is what the engine needs from a connection: run a fully rendered statement.
// Exec always hits the primary. Query may be served by a replica when ctx asks for eventual consistency.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
}

type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DBResult interface {
	RowsAffected() (int64, error)
}
