// Package sqliteengine is an event store engine on a single SQLite database file.
//
// It uses the pure Go driver modernc.org/sqlite, so no cgo is needed. Payload predicates are evaluated with
// json_extract, occurred_at is stored as unix microseconds. All access goes through one connection, which
// serializes appends and makes the optimistic concurrency check race free.
package sqliteengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
	"github.com/parsaloi/value-driven-domain-pattern/eventstore/internal/observer"
	"github.com/parsaloi/value-driven-domain-pattern/eventstore/sqliteengine/migrations"
)

const (
	driverName = "sqlite"
	dsnParams  = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"

	logActionQuery  = "query"
	logActionAppend = "append"
)

var (
	ErrEmptyDatabasePath = errors.New("sqlite database path must not be empty")
	ErrMigrationFailed   = errors.New("applying sqlite migrations failed")
)

// EventStore persists events in the "events" table and snapshots in the "snapshots" table.
type EventStore struct {
	db       *sql.DB
	tx       *sql.Tx
	ownsDB   bool
	observer observer.Observer
}

// sqlConn is satisfied by *sql.DB and *sql.Tx.
type sqlConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Option configures an EventStore.
type Option func(*EventStore) error

func WithLogger(logger eventstore.Logger) Option {
	return func(es *EventStore) error {
		es.observer.Logger = logger
		return nil
	}
}

func WithContextualLogger(logger eventstore.ContextualLogger) Option {
	return func(es *EventStore) error {
		es.observer.ContextualLogger = logger
		return nil
	}
}

func WithMetrics(collector eventstore.MetricsCollector) Option {
	return func(es *EventStore) error {
		es.observer.Metrics = collector
		return nil
	}
}

func WithTracing(collector eventstore.TracingCollector) Option {
	return func(es *EventStore) error {
		es.observer.Tracing = collector
		return nil
	}
}

// Open opens (or creates) the database file at path and applies the embedded migrations.
// The returned EventStore owns the connection, Close releases it.
func Open(ctx context.Context, path string, options ...Option) (*EventStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrEmptyDatabasePath
	}

	db, err := sql.Open(driverName, filepath.Clean(path)+dsnParams)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	es, err := NewEventStoreFromSQLDB(ctx, db, options...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	es.ownsDB = true

	return es, nil
}

// NewEventStoreFromSQLDB uses an already opened SQLite *sql.DB and applies the embedded migrations.
func NewEventStoreFromSQLDB(ctx context.Context, db *sql.DB, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		return nil, errors.Join(ErrMigrationFailed, err)
	}

	es := &EventStore{
		db:       db,
		observer: observer.Observer{Engine: "sqlite"},
	}

	for _, option := range options {
		if err := option(es); err != nil {
			return nil, err
		}
	}

	return es, nil
}

// DB exposes the underlying connection, e.g. for transaction management.
func (es *EventStore) DB() *sql.DB {
	return es.db
}

// WithTx returns a view of the EventStore that runs every statement inside tx.
// Appends through the view do not commit, the owner of tx decides about commit or rollback.
// The view shares the single connection with tx, so the base EventStore must not be used until tx ends.
func (es *EventStore) WithTx(tx *sql.Tx) *EventStore {
	return &EventStore{
		db:       es.db,
		tx:       tx,
		observer: es.observer,
	}
}

func (es *EventStore) conn() sqlConn {
	if es.tx != nil {
		return es.tx
	}

	return es.db
}

// Close closes the database if the EventStore opened it.
func (es *EventStore) Close() error {
	if es == nil || es.db == nil || !es.ownsDB || es.tx != nil {
		return nil
	}

	return es.db.Close()
}

// Query returns the events matching filter in sequence order and the highest matching sequence number.
func (es *EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	op, ctx := es.observer.Start(ctx, observer.OperationQuery, observer.SpanNameQuery, nil)

	where, args := buildWhereClause(filter, true)
	sqlQuery := `SELECT event_type, occurred_at, payload, metadata, sequence_number FROM events` +
		where + ` ORDER BY sequence_number ASC`

	start := time.Now()
	rows, err := es.conn().QueryContext(ctx, sqlQuery, args...)
	es.observer.LogSQL(ctx, logActionQuery, sqlQuery, time.Since(start))

	if err != nil {
		op.Fail(observer.MetricQueryDuration, observer.ErrorTypeDatabase, err, observer.AttrQuery, sqlQuery)
		return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			es.observer.LogWarn(ctx, "failed to close database rows", observer.AttrError, closeErr.Error())
		}
	}()

	eventStream := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for rows.Next() {
		var (
			eventType      string
			occurredAt     int64
			payload        string
			metadata       string
			sequenceNumber int64
		)

		if err := rows.Scan(&eventType, &occurredAt, &payload, &metadata, &sequenceNumber); err != nil {
			op.Fail(observer.MetricQueryDuration, observer.ErrorTypeScan, err)
			return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, err)
		}

		event, err := eventstore.BuildStorableEvent(eventType, fromMicros(occurredAt), []byte(payload), []byte(metadata))
		if err != nil {
			op.Fail(observer.MetricQueryDuration, observer.ErrorTypeBuildEvent, err, observer.AttrEventType, eventType)
			return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, err)
		}

		eventStream = append(eventStream, event)
		maxSequenceNumber = eventstore.MaxSequenceNumberUint(sequenceNumber)
	}

	if err := rows.Err(); err != nil {
		op.Fail(observer.MetricQueryDuration, observer.ErrorTypeDatabase, err)
		return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, err)
	}

	op.Succeed(observer.MetricQueryDuration, observer.MetricEventsQueried, len(eventStream), nil)
	es.observer.LogOperation(ctx, "query completed",
		observer.AttrEventCount, len(eventStream),
		observer.AttrDurationMS, observer.ToMilliseconds(op.Elapsed()))

	return eventStream, maxSequenceNumber, nil
}

// Append appends the events in one transaction. The first insert is guarded by the max sequence number
// of the stream selected by filter, if it inserts nothing the transaction is rolled back and
// eventstore.ErrConcurrencyConflict is returned.
func (es *EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	allEvents := append(eventstore.StorableEvents{event}, additionalEvents...)

	op, ctx := es.observer.Start(ctx, observer.OperationAppend, observer.SpanNameAppend, map[string]string{
		observer.AttrEventType: event.EventType,
	})

	if es.tx != nil {
		if err := es.appendWith(ctx, es.tx, filter, expectedMaxSequenceNumber, event, additionalEvents); err != nil {
			es.failAppend(op, err, len(allEvents), expectedMaxSequenceNumber)
			return wrapAppendError(err)
		}
	} else {
		tx, err := es.db.BeginTx(ctx, nil)
		if err != nil {
			op.Fail(observer.MetricAppendDuration, observer.ErrorTypeDatabase, err)
			return errors.Join(eventstore.ErrAppendingEventFailed, err)
		}

		if err := es.appendWith(ctx, tx, filter, expectedMaxSequenceNumber, event, additionalEvents); err != nil {
			_ = tx.Rollback()
			es.failAppend(op, err, len(allEvents), expectedMaxSequenceNumber)
			return wrapAppendError(err)
		}

		if err := tx.Commit(); err != nil {
			op.Fail(observer.MetricAppendDuration, observer.ErrorTypeDatabase, err)
			return errors.Join(eventstore.ErrAppendingEventFailed, err)
		}
	}

	op.Succeed(observer.MetricAppendDuration, observer.MetricEventsAppended, len(allEvents), nil)
	es.observer.LogOperation(ctx, "events appended",
		observer.AttrEventCount, len(allEvents),
		observer.AttrDurationMS, observer.ToMilliseconds(op.Elapsed()))

	return nil
}

// appendWith inserts the guarded first event and the additional events through conn.
func (es *EventStore) appendWith(
	ctx context.Context,
	conn sqlConn,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents eventstore.StorableEvents,
) error {

	rowsAffected, err := es.insertGuarded(ctx, conn, filter, expectedMaxSequenceNumber, event)
	if err != nil {
		return err
	}

	if rowsAffected < 1 {
		return eventstore.ErrConcurrencyConflict
	}

	for _, additional := range additionalEvents {
		if _, err := conn.ExecContext(
			ctx,
			`INSERT INTO events (event_type, occurred_at, payload, metadata) VALUES (?, ?, ?, ?)`,
			additional.EventType, toMicros(additional.OccurredAt), string(additional.PayloadJSON), string(additional.MetadataJSON),
		); err != nil {
			return err
		}
	}

	return nil
}

func (es *EventStore) failAppend(
	op *observer.Operation,
	err error,
	eventCount int,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) {

	if errors.Is(err, eventstore.ErrConcurrencyConflict) {
		op.Conflict(eventCount, expectedMaxSequenceNumber)
		return
	}

	op.Fail(observer.MetricAppendDuration, observer.ErrorTypeDatabase, err)
}

func wrapAppendError(err error) error {
	if errors.Is(err, eventstore.ErrConcurrencyConflict) {
		return eventstore.ErrConcurrencyConflict
	}

	return errors.Join(eventstore.ErrAppendingEventFailed, err)
}

func (es *EventStore) insertGuarded(
	ctx context.Context,
	tx sqlConn,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
) (int64, error) {

	where, whereArgs := buildWhereClause(filter, false)
	sqlQuery := `INSERT INTO events (event_type, occurred_at, payload, metadata) ` +
		`SELECT ?, ?, ?, ? WHERE (SELECT COALESCE(MAX(sequence_number), 0) FROM events` + where + `) = ?`

	args := []any{event.EventType, toMicros(event.OccurredAt), string(event.PayloadJSON), string(event.MetadataJSON)}
	args = append(args, whereArgs...)
	args = append(args, int64(expectedMaxSequenceNumber))

	start := time.Now()
	result, err := tx.ExecContext(ctx, sqlQuery, args...)
	es.observer.LogSQL(ctx, logActionAppend, sqlQuery, time.Since(start))

	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func toMicros(t time.Time) int64 {
	return t.UTC().UnixMicro()
}

func fromMicros(v int64) time.Time {
	return time.UnixMicro(v).UTC()
}
