package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
	"github.com/parsaloi/value-driven-domain-pattern/eventstore/internal/observer"
)

const (
	colProjectionType = "projection_type"
	colFilterHash     = "filter_hash"
	colSnapshotData   = "snapshot_data"
	colCreatedAt      = "created_at"
)

// SaveSnapshot upserts the snapshot keyed by (ProjectionType, FilterHash).
// An existing snapshot with a higher sequence number is kept.
func (es *EventStore) SaveSnapshot(ctx context.Context, snapshot eventstore.Snapshot) error {
	op, ctx := es.observer.Start(ctx, observer.OperationSaveSnapshot, observer.SpanNameSaveSnapshot, map[string]string{
		observer.AttrProjection: snapshot.ProjectionType,
	})

	if err := snapshot.Validate(); err != nil {
		op.Fail(observer.MetricSnapshotDuration, observer.ErrorTypeSnapshot, err)
		return errors.Join(eventstore.ErrSavingSnapshotFailed, err)
	}

	sqlQuery, err := es.buildSnapshotUpsertQuery(snapshot)
	if err != nil {
		op.Fail(observer.MetricSnapshotDuration, observer.ErrorTypeBuildQuery, err)
		return errors.Join(eventstore.ErrSavingSnapshotFailed, err)
	}

	start := time.Now()
	_, err = es.db.Exec(ctx, sqlQuery)
	es.observer.LogSQL(ctx, observer.OperationSaveSnapshot, sqlQuery, time.Since(start))

	if err != nil {
		op.Fail(observer.MetricSnapshotDuration, observer.ErrorTypeDatabase, err)
		return errors.Join(eventstore.ErrSavingSnapshotFailed, err)
	}

	op.Succeed(observer.MetricSnapshotDuration, "", 0, nil)
	es.observer.LogOperation(ctx, "snapshot saved",
		observer.AttrProjection, snapshot.ProjectionType,
		observer.AttrMaxSequence, snapshot.SequenceNumber)

	return nil
}

// LoadSnapshot returns nil, nil when no snapshot exists.
func (es *EventStore) LoadSnapshot(
	ctx context.Context,
	projectionType string,
	filter eventstore.Filter,
) (*eventstore.Snapshot, error) {

	op, ctx := es.observer.Start(ctx, observer.OperationLoadSnapshot, observer.SpanNameLoadSnapshot, map[string]string{
		observer.AttrProjection: projectionType,
	})

	if projectionType == "" {
		op.Fail(observer.MetricSnapshotDuration, observer.ErrorTypeSnapshot, eventstore.ErrEmptyProjectionType)
		return nil, errors.Join(eventstore.ErrLoadingSnapshotFailed, eventstore.ErrEmptyProjectionType)
	}

	filterHash := filter.Hash()

	sqlQuery, _, err := goqu.Dialect(dialectPostgres).
		From(es.snapshotTableName).
		Select(colProjectionType, colFilterHash, colSequenceNumber, colSnapshotData, colCreatedAt).
		Where(goqu.Ex{colProjectionType: projectionType, colFilterHash: filterHash}).
		ToSQL()
	if err != nil {
		op.Fail(observer.MetricSnapshotDuration, observer.ErrorTypeBuildQuery, err)
		return nil, errors.Join(eventstore.ErrLoadingSnapshotFailed, eventstore.ErrBuildingQueryFailed, err)
	}

	start := time.Now()
	rows, err := es.db.Query(ctx, sqlQuery)
	es.observer.LogSQL(ctx, observer.OperationLoadSnapshot, sqlQuery, time.Since(start))

	if err != nil {
		op.Fail(observer.MetricSnapshotDuration, observer.ErrorTypeDatabase, err)
		return nil, errors.Join(eventstore.ErrLoadingSnapshotFailed, err)
	}
	defer es.closeRows(ctx, rows)

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			op.Fail(observer.MetricSnapshotDuration, observer.ErrorTypeDatabase, err)
			return nil, errors.Join(eventstore.ErrLoadingSnapshotFailed, err)
		}

		op.Succeed(observer.MetricSnapshotDuration, "", 0, map[string]string{"snapshot_found": "false"})
		return nil, nil
	}

	var (
		snapshot       eventstore.Snapshot
		sequenceNumber int64
		data           []byte
	)

	if err := rows.Scan(&snapshot.ProjectionType, &snapshot.FilterHash, &sequenceNumber, &data, &snapshot.CreatedAt); err != nil {
		op.Fail(observer.MetricSnapshotDuration, observer.ErrorTypeScan, err)
		return nil, errors.Join(eventstore.ErrLoadingSnapshotFailed, err)
	}

	snapshot.SequenceNumber = eventstore.MaxSequenceNumberUint(sequenceNumber)
	snapshot.Data = data
	snapshot.CreatedAt = snapshot.CreatedAt.UTC()

	op.Succeed(observer.MetricSnapshotDuration, "", 0, map[string]string{"snapshot_found": "true"})

	return &snapshot, nil
}

// DeleteSnapshot removes the snapshot, deleting a missing one is not an error.
func (es *EventStore) DeleteSnapshot(ctx context.Context, projectionType string, filter eventstore.Filter) error {
	if projectionType == "" {
		return errors.Join(eventstore.ErrDeletingSnapshotFailed, eventstore.ErrEmptyProjectionType)
	}

	sqlQuery, _, err := goqu.Dialect(dialectPostgres).
		Delete(es.snapshotTableName).
		Where(goqu.Ex{colProjectionType: projectionType, colFilterHash: filter.Hash()}).
		ToSQL()
	if err != nil {
		return errors.Join(eventstore.ErrDeletingSnapshotFailed, eventstore.ErrBuildingQueryFailed, err)
	}

	start := time.Now()
	_, err = es.db.Exec(ctx, sqlQuery)
	es.observer.LogSQL(ctx, observer.OperationDeleteSnapshot, sqlQuery, time.Since(start))

	if err != nil {
		es.observer.LogError(ctx, "eventstore delete_snapshot failed", err)
		return errors.Join(eventstore.ErrDeletingSnapshotFailed, err)
	}

	return nil
}

func (es *EventStore) buildSnapshotUpsertQuery(snapshot eventstore.Snapshot) (string, error) {
	createdAt := snapshot.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	excluded := func(col string) goqu.Expression {
		return goqu.L("EXCLUDED." + col)
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(es.snapshotTableName).
		Rows(goqu.Record{
			colProjectionType: snapshot.ProjectionType,
			colFilterHash:     snapshot.FilterHash,
			colSequenceNumber: snapshot.SequenceNumber,
			colSnapshotData:   goqu.L(castJsonb, string(snapshot.Data)),
			colCreatedAt:      goqu.L(castTimestamp, createdAt.UTC()),
		}).
		OnConflict(
			goqu.DoUpdate(colProjectionType+", "+colFilterHash, goqu.Record{
				colSequenceNumber: excluded(colSequenceNumber),
				colSnapshotData:   excluded(colSnapshotData),
				colCreatedAt:      excluded(colCreatedAt),
			}).Where(goqu.L(fmt.Sprintf("%s.%s <= EXCLUDED.%s", es.snapshotTableName, colSequenceNumber, colSequenceNumber))),
		)

	sqlQuery, _, err := insertStmt.ToSQL()
	if err != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}
