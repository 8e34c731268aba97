package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/cli"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/shell"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/shell/config"
	"github.com/parsaloi/value-driven-domain-pattern/eventstore/memengine"
	"github.com/parsaloi/value-driven-domain-pattern/eventstore/postgresengine"
	"github.com/parsaloi/value-driven-domain-pattern/eventstore/sqliteengine"
)

// storeHandle is the opened event store. sqlite is set for the sqlite store only, it allows atomic imports.
type storeHandle struct {
	eventStore shell.EventStore
	sqlite     *sqliteengine.EventStore
	close      func() error
}

func openStore(ctx context.Context, cfg *Application, obs cli.Observability) (storeHandle, error) {
	switch cfg.Store {
	case storeMemory:
		es, err := memengine.NewEventStore(
			memengine.WithLogger(obs.Logger),
			memengine.WithContextualLogger(obs.ContextualLogger),
			memengine.WithMetrics(obs.Metrics),
			memengine.WithTracing(obs.Tracing),
		)
		if err != nil {
			return storeHandle{}, err
		}

		return storeHandle{eventStore: es, close: es.Close}, nil

	case storeSQLite:
		dbPath, err := cfg.sqlitePath()
		if err != nil {
			return storeHandle{}, fmt.Errorf("sqlite path: %w", err)
		}

		es, err := sqliteengine.Open(ctx, dbPath,
			sqliteengine.WithLogger(obs.Logger),
			sqliteengine.WithContextualLogger(obs.ContextualLogger),
			sqliteengine.WithMetrics(obs.Metrics),
			sqliteengine.WithTracing(obs.Tracing),
		)
		if err != nil {
			return storeHandle{}, err
		}

		return storeHandle{eventStore: es, sqlite: es, close: es.Close}, nil

	case storePostgres:
		return openPostgresStore(ctx, cfg, obs)
	}

	return storeHandle{}, fmt.Errorf("unknown store %q", cfg.Store)
}

func openPostgresStore(ctx context.Context, cfg *Application, obs cli.Observability) (storeHandle, error) {
	pgConfig, err := config.LoadPostgresConfig()
	if err != nil {
		return storeHandle{}, err
	}

	options := []postgresengine.Option{
		postgresengine.WithLogger(obs.Logger),
		postgresengine.WithContextualLogger(obs.ContextualLogger),
		postgresengine.WithMetrics(obs.Metrics),
		postgresengine.WithTracing(obs.Tracing),
	}

	var (
		es      *postgresengine.EventStore
		closeFn func() error
	)

	switch cfg.Postgres.Adapter {
	case adapterPGX:
		es, closeFn, err = openPGXStore(ctx, pgConfig, options)
	case adapterSQL:
		db, openErr := config.OpenSQLDB(ctx, pgConfig)
		if openErr != nil {
			return storeHandle{}, openErr
		}

		closeFn = db.Close
		es, err = postgresengine.NewEventStoreFromSQLDB(db, options...)
	case adapterSQLX:
		db, openErr := config.OpenSQLX(ctx, pgConfig)
		if openErr != nil {
			return storeHandle{}, openErr
		}

		closeFn = db.Close
		es, err = postgresengine.NewEventStoreFromSQLX(db, options...)
	default:
		return storeHandle{}, fmt.Errorf("unknown postgres adapter %q", cfg.Postgres.Adapter)
	}

	if err != nil {
		if closeFn != nil {
			err = errors.Join(err, closeFn())
		}

		return storeHandle{}, err
	}

	if cfg.Postgres.CreateSchema {
		if err = es.CreateSchema(ctx); err != nil {
			return storeHandle{}, errors.Join(err, closeFn())
		}
	}

	return storeHandle{eventStore: es, close: closeFn}, nil
}

// openPGXStore reads from the replica pool when EVENTMANAGEMENT_PG_REPLICA_DSN is set.
func openPGXStore(
	ctx context.Context,
	pgConfig config.PostgresConfig,
	options []postgresengine.Option,
) (*postgresengine.EventStore, func() error, error) {

	primary, err := config.NewPGXPool(ctx, pgConfig)
	if err != nil {
		return nil, nil, err
	}

	if !pgConfig.HasReplica() {
		es, err := postgresengine.NewEventStoreFromPGXPool(primary, options...)
		return es, func() error { primary.Close(); return nil }, err
	}

	replica, err := config.NewPGXReplicaPool(ctx, pgConfig)
	if err != nil {
		primary.Close()
		return nil, nil, err
	}

	closeFn := func() error {
		replica.Close()
		primary.Close()

		return nil
	}

	es, err := postgresengine.NewEventStoreFromPGXPoolAndReplica(primary, replica, options...)

	return es, closeFn, err
}
