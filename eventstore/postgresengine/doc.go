// Package postgresengine is the PostgreSQL event store engine.
//
// Statements are rendered with goqu and run through one of three adapters (pgxpool, database/sql, sqlx),
// so the engine works with whatever connection the application already has.
//
// Append is a single INSERT ... SELECT guarded by a CTE that computes the max sequence number of the
// stream selected by the filter. If another writer appended to that stream in the meantime the
// INSERT affects no rows and eventstore.ErrConcurrencyConflict is returned.
//
// Payload predicates are containment checks on a top-level JSON string (payload @> {"Key": "Val"}),
// so they use the GIN index and P("MaxAttendees", "100") does not match {"MaxAttendees": 100}.
//
//	pool, _ := pgxpool.New(ctx, dsn)
//	store, _ := postgresengine.NewEventStoreFromPGXPool(pool, postgresengine.WithLogger(logger))
//	_ = store.CreateSchema(ctx)
//
//	events, maxSeq, _ := store.Query(ctx, filter)
//	err := store.Append(ctx, filter, maxSeq, newEvent)
package postgresengine
