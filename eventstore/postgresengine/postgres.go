package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // registers the postgres dialect
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
	"github.com/parsaloi/value-driven-domain-pattern/eventstore/internal/observer"
	"github.com/parsaloi/value-driven-domain-pattern/eventstore/postgresengine/internal/adapters"
)

const (
	defaultEventTableName    = "events"
	defaultSnapshotTableName = "snapshots"

	logActionQuery  = "query"
	logActionAppend = "append"

	colEventType      = "event_type"
	colOccurredAt     = "occurred_at"
	colPayload        = "payload"
	colMetadata       = "metadata"
	colSequenceNumber = "sequence_number"

	cteContext      = "context"
	cteVals         = "vals"
	dialectPostgres = "postgres"
	aliasMaxSeq     = "max_seq"

	castText      = "?::text"
	castTimestamp = "?::timestamp with time zone"
	castJsonb     = "?::jsonb"
	payloadField  = "payload @> jsonb_build_object(?::text, ?::text)"
)

// EventStore appends and queries events in a PostgreSQL table.
type EventStore struct {
	db                adapters.DBAdapter
	eventTableName    string
	snapshotTableName string
	observer          observer.Observer
}

// NewEventStoreFromPGXPool is the recommended constructor.
func NewEventStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewPGXAdapter(db), options...)
}

// NewEventStoreFromPGXPoolAndReplica sends queries to replica and appends to primary.
// Snapshot reads also go to the replica, so a freshly saved snapshot may be missed, which only costs a rebuild.
func NewEventStoreFromPGXPoolAndReplica(primary *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*EventStore, error) {
	if primary == nil || replica == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewPGXAdapterWithReplica(primary, replica), options...)
}

// NewEventStoreFromSQLDB takes a *sql.DB opened with a postgres driver like lib/pq or pgx/stdlib.
func NewEventStoreFromSQLDB(db *sql.DB, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLAdapter(db), options...)
}

func NewEventStoreFromSQLX(db *sqlx.DB, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLXAdapter(db), options...)
}

func newEventStore(db adapters.DBAdapter, options ...Option) (*EventStore, error) {
	es := &EventStore{
		db:                db,
		eventTableName:    defaultEventTableName,
		snapshotTableName: defaultSnapshotTableName,
		observer:          observer.Observer{Engine: "postgres"},
	}

	for _, option := range options {
		if err := option(es); err != nil {
			return nil, err
		}
	}

	return es, nil
}

// Query returns the events matching filter in sequence order and the highest matching sequence number.
func (es *EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	op, ctx := es.observer.Start(ctx, observer.OperationQuery, observer.SpanNameQuery, nil)

	sqlQuery, err := es.buildSelectQuery(filter)
	if err != nil {
		op.Fail(observer.MetricQueryDuration, observer.ErrorTypeBuildQuery, err)
		return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, err)
	}

	start := time.Now()
	rows, err := es.db.Query(ctx, sqlQuery)
	es.observer.LogSQL(ctx, logActionQuery, sqlQuery, time.Since(start))

	if err != nil {
		op.Fail(observer.MetricQueryDuration, observer.ErrorTypeDatabase, err, observer.AttrQuery, sqlQuery)
		return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, err)
	}
	defer es.closeRows(ctx, rows)

	eventStream := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for rows.Next() {
		var (
			eventType      string
			occurredAt     time.Time
			payload        []byte
			metadata       []byte
			sequenceNumber int64
		)

		if err := rows.Scan(&eventType, &occurredAt, &payload, &metadata, &sequenceNumber); err != nil {
			op.Fail(observer.MetricQueryDuration, observer.ErrorTypeScan, err)
			return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, err)
		}

		event, err := eventstore.BuildStorableEvent(eventType, occurredAt.UTC(), payload, metadata)
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

// Append appends the events atomically if the max sequence number of the stream selected by filter
// still equals expectedMaxSequenceNumber, otherwise it returns eventstore.ErrConcurrencyConflict.
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

	var (
		sqlQuery string
		err      error
	)

	if len(allEvents) == 1 {
		sqlQuery, err = es.buildInsertQueryForSingleEvent(event, filter, expectedMaxSequenceNumber)
	} else {
		sqlQuery, err = es.buildInsertQueryForMultipleEvents(allEvents, filter, expectedMaxSequenceNumber)
	}

	if err != nil {
		op.Fail(observer.MetricAppendDuration, observer.ErrorTypeBuildQuery, err, observer.AttrEventCount, len(allEvents))
		return errors.Join(eventstore.ErrAppendingEventFailed, err)
	}

	start := time.Now()
	result, err := es.db.Exec(ctx, sqlQuery)
	es.observer.LogSQL(ctx, logActionAppend, sqlQuery, time.Since(start))

	if err != nil {
		op.Fail(observer.MetricAppendDuration, observer.ErrorTypeDatabase, err, observer.AttrQuery, sqlQuery)
		return errors.Join(eventstore.ErrAppendingEventFailed, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		op.Fail(observer.MetricAppendDuration, observer.ErrorTypeRowsAffected, err)
		return errors.Join(eventstore.ErrAppendingEventFailed, err)
	}

	if rowsAffected < int64(len(allEvents)) {
		op.Conflict(len(allEvents), expectedMaxSequenceNumber)
		return eventstore.ErrConcurrencyConflict
	}

	op.Succeed(observer.MetricAppendDuration, observer.MetricEventsAppended, len(allEvents), nil)
	es.observer.LogOperation(ctx, "events appended",
		observer.AttrEventCount, len(allEvents),
		observer.AttrDurationMS, observer.ToMilliseconds(op.Elapsed()))

	return nil
}

func (es *EventStore) closeRows(ctx context.Context, rows adapters.DBRows) {
	if err := rows.Close(); err != nil {
		es.observer.LogWarn(ctx, "failed to close database rows", observer.AttrError, err.Error())
	}
}

func (es *EventStore) buildSelectQuery(filter eventstore.Filter) (string, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(es.eventTableName).
		Select(colEventType, colOccurredAt, colPayload, colMetadata, colSequenceNumber).
		Order(goqu.I(colSequenceNumber).Asc())

	selectStmt = addWhereClause(filter, selectStmt, true)

	sqlQuery, _, err := selectStmt.ToSQL()
	if err != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

// maxSequenceCTE ignores the sequence boundary of filter, it only limits what a Query returns.
func (es *EventStore) maxSequenceCTE(builder goqu.DialectWrapper, filter eventstore.Filter) *goqu.SelectDataset {
	cteStmt := builder.
		From(es.eventTableName).
		Select(goqu.MAX(colSequenceNumber).As(aliasMaxSeq))

	return addWhereClause(filter, cteStmt, false)
}

func (es *EventStore) buildInsertQueryForSingleEvent(
	event eventstore.StorableEvent,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) (string, error) {

	builder := goqu.Dialect(dialectPostgres)

	selectStmt := builder.
		From(cteContext).
		Select(
			goqu.L(castText, event.EventType),
			goqu.L(castTimestamp, event.OccurredAt.UTC()),
			goqu.L(castJsonb, string(event.PayloadJSON)),
			goqu.L(castJsonb, string(event.MetadataJSON)),
		).
		Where(goqu.COALESCE(goqu.C(aliasMaxSeq), 0).Eq(goqu.V(expectedMaxSequenceNumber)))

	insertStmt := builder.
		Insert(es.eventTableName).
		Cols(colEventType, colOccurredAt, colPayload, colMetadata).
		FromQuery(selectStmt).
		With(cteContext, es.maxSequenceCTE(builder, filter))

	sqlQuery, _, err := insertStmt.ToSQL()
	if err != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

func (es *EventStore) buildInsertQueryForMultipleEvents(
	events eventstore.StorableEvents,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) (string, error) {

	builder := goqu.Dialect(dialectPostgres)

	// ORDINALITY keeps the events in the given order when the sequence numbers are assigned.
	var valuesStmt *goqu.SelectDataset
	for i, event := range events {
		row := builder.Select(
			goqu.L(castText, event.EventType).As(colEventType),
			goqu.L(castTimestamp, event.OccurredAt.UTC()).As(colOccurredAt),
			goqu.L(castJsonb, string(event.PayloadJSON)).As(colPayload),
			goqu.L(castJsonb, string(event.MetadataJSON)).As(colMetadata),
			goqu.V(i).As("ord"),
		)

		if valuesStmt == nil {
			valuesStmt = row
			continue
		}

		valuesStmt = valuesStmt.UnionAll(row)
	}

	insertStmt := builder.
		Insert(es.eventTableName).
		Cols(colEventType, colOccurredAt, colPayload, colMetadata).
		With(cteContext, es.maxSequenceCTE(builder, filter)).
		With(cteVals, valuesStmt).
		FromQuery(
			builder.From(cteContext, cteVals).
				Select(
					fmt.Sprintf("%s.%s", cteVals, colEventType),
					fmt.Sprintf("%s.%s", cteVals, colOccurredAt),
					fmt.Sprintf("%s.%s", cteVals, colPayload),
					fmt.Sprintf("%s.%s", cteVals, colMetadata),
				).
				Where(goqu.COALESCE(goqu.C(aliasMaxSeq), 0).Eq(goqu.V(expectedMaxSequenceNumber))).
				Order(goqu.I(cteVals + ".ord").Asc()),
		)

	sqlQuery, _, err := insertStmt.ToSQL()
	if err != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

// addWhereClause ORs the filter items and ANDs the time range (and, for queries, the sequence boundary).
func addWhereClause(filter eventstore.Filter, selectStmt *goqu.SelectDataset, withSequence bool) *goqu.SelectDataset {
	conditions := make([]goqu.Expression, 0)

	if itemsExpression, restricted := itemsExpression(filter); restricted {
		conditions = append(conditions, itemsExpression)
	}

	if !filter.OccurredFrom().IsZero() {
		conditions = append(conditions, goqu.C(colOccurredAt).Gte(goqu.L(castTimestamp, filter.OccurredFrom().UTC())))
	}

	if !filter.OccurredUntil().IsZero() {
		conditions = append(conditions, goqu.C(colOccurredAt).Lte(goqu.L(castTimestamp, filter.OccurredUntil().UTC())))
	}

	if withSequence && filter.SequenceNumberHigherThan() > 0 {
		conditions = append(conditions, goqu.C(colSequenceNumber).Gt(filter.SequenceNumberHigherThan()))
	}

	if len(conditions) == 0 {
		return selectStmt
	}

	return selectStmt.Where(goqu.And(conditions...))
}

// itemsExpression returns false when some item matches every event, then there is nothing to restrict.
func itemsExpression(filter eventstore.Filter) (goqu.Expression, bool) {
	items := filter.Items()
	if len(items) == 0 {
		return nil, false
	}

	itemExpressions := make([]goqu.Expression, 0, len(items))

	for _, item := range items {
		if len(item.EventTypes()) == 0 && len(item.Predicates()) == 0 {
			return nil, false
		}

		itemConditions := make([]goqu.Expression, 0, 2)

		if len(item.EventTypes()) > 0 {
			itemConditions = append(itemConditions, goqu.C(colEventType).In(item.EventTypes()))
		}

		if len(item.Predicates()) > 0 {
			predicateExpressions := make([]goqu.Expression, 0, len(item.Predicates()))
			for _, predicate := range item.Predicates() {
				predicateExpressions = append(predicateExpressions, goqu.L(payloadField, predicate.Key(), predicate.Val()))
			}

			if item.AllPredicatesMustMatch() {
				itemConditions = append(itemConditions, goqu.And(predicateExpressions...))
			} else {
				itemConditions = append(itemConditions, goqu.Or(predicateExpressions...))
			}
		}

		itemExpressions = append(itemExpressions, goqu.And(itemConditions...))
	}

	return goqu.Or(itemExpressions...), true
}
