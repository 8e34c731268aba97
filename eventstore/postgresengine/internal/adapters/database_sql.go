package adapters

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// sqlConn is the part of *sql.DB and *sqlx.DB the engine uses.
type sqlConn interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// StdAdapter runs statements through database/sql, either directly (lib/pq) or via sqlx.
// It has no replica, every read is strongly consistent.
type StdAdapter struct {
	conn sqlConn
}

func NewSQLAdapter(db *sql.DB) *StdAdapter {
	return &StdAdapter{conn: db}
}

func NewSQLXAdapter(db *sqlx.DB) *StdAdapter {
	return &StdAdapter{conn: db}
}

func (s *StdAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	rows, err := s.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return &stdRows{rows: rows}, nil
}

func (s *StdAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	result, err := s.conn.ExecContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return stdResult{result: result}, nil
}

type stdRows struct {
	rows *sql.Rows
}

func (s *stdRows) Next() bool             { return s.rows.Next() }
func (s *stdRows) Scan(dest ...any) error { return s.rows.Scan(dest...) }
func (s *stdRows) Err() error             { return s.rows.Err() }
func (s *stdRows) Close() error           { return s.rows.Close() }

type stdResult struct {
	result sql.Result
}

func (s stdResult) RowsAffected() (int64, error) {
	return s.result.RowsAffected()
}
