package config

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

// ErrDatabaseUnavailable wraps connection failures.
var ErrDatabaseUnavailable = errors.New("database unavailable")

// PGXPoolConfig applies the pool settings to the parsed dsn.
func PGXPoolConfig(cfg PostgresConfig, dsn string) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Join(ErrInvalidPostgresConfig, err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolConfig.HealthCheckPeriod = cfg.HealthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	return poolConfig, nil
}

// NewPGXPool connects to the primary and pings it.
func NewPGXPool(ctx context.Context, cfg PostgresConfig) (*pgxpool.Pool, error) {
	return newPGXPool(ctx, cfg, cfg.DSN)
}

// NewPGXReplicaPool connects to the replica, callers check HasReplica first.
func NewPGXReplicaPool(ctx context.Context, cfg PostgresConfig) (*pgxpool.Pool, error) {
	return newPGXPool(ctx, cfg, cfg.ReplicaDSN)
}

func newPGXPool(ctx context.Context, cfg PostgresConfig, dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := PGXPoolConfig(cfg, dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, errors.Join(ErrDatabaseUnavailable, err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Join(ErrDatabaseUnavailable, err)
	}

	return pool, nil
}

// OpenSQLDB opens the primary through lib/pq and pings it.
func OpenSQLDB(ctx context.Context, cfg PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, errors.Join(ErrInvalidPostgresConfig, err)
	}

	configureSQLPool(db, cfg)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrDatabaseUnavailable, err)
	}

	return db, nil
}

// OpenSQLX opens the primary as *sqlx.DB and pings it.
func OpenSQLX(ctx context.Context, cfg PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, errors.Join(ErrInvalidPostgresConfig, err)
	}

	configureSQLPool(db.DB, cfg)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrDatabaseUnavailable, err)
	}

	return db, nil
}

func configureSQLPool(db *sql.DB, cfg PostgresConfig) {
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MaxConnLifetime)
	db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)
}
