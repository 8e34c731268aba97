package adapters

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
)

// PGXAdapter runs statements on a pgxpool.Pool.
// Queries under eventstore.EventualConsistency go to the replica pool if there is one,
// command handlers read with the default strong consistency and always see the primary.
type PGXAdapter struct {
	primary *pgxpool.Pool
	replica *pgxpool.Pool
}

func NewPGXAdapter(pool *pgxpool.Pool) *PGXAdapter {
	return &PGXAdapter{primary: pool}
}

func NewPGXAdapterWithReplica(primary *pgxpool.Pool, replica *pgxpool.Pool) *PGXAdapter {
	return &PGXAdapter{primary: primary, replica: replica}
}

func (p *PGXAdapter) readPool(ctx context.Context) *pgxpool.Pool {
	if p.replica != nil && eventstore.GetConsistencyLevel(ctx) == eventstore.EventualConsistency {
		return p.replica
	}

	return p.primary
}

func (p *PGXAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	rows, err := p.readPool(ctx).Query(ctx, query)
	if err != nil {
		return nil, err
	}

	return pgxRows{rows: rows}, nil
}

func (p *PGXAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	tag, err := p.primary.Exec(ctx, query)
	if err != nil {
		return nil, err
	}

	return pgxResult{tag: tag}, nil
}

type pgxRows struct {
	rows pgx.Rows
}

func (p pgxRows) Next() bool             { return p.rows.Next() }
func (p pgxRows) Scan(dest ...any) error { return p.rows.Scan(dest...) }
func (p pgxRows) Err() error             { return p.rows.Err() }

func (p pgxRows) Close() error {
	p.rows.Close()
	return nil
}

type pgxResult struct {
	tag pgconn.CommandTag
}

func (p pgxResult) RowsAffected() (int64, error) {
	return p.tag.RowsAffected(), nil
}
