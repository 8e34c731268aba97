package sqliteengine

import (
	"context"
	"database/sql"
	"errors"

	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
	"github.com/parsaloi/value-driven-domain-pattern/eventstore/internal/observer"
)

// SaveSnapshot upserts the snapshot keyed by (ProjectionType, FilterHash), a stored higher sequence number wins.
func (es *EventStore) SaveSnapshot(ctx context.Context, snapshot eventstore.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return errors.Join(eventstore.ErrSavingSnapshotFailed, err)
	}

	op, ctx := es.observer.Start(ctx, observer.OperationSaveSnapshot, observer.SpanNameSaveSnapshot, map[string]string{
		observer.AttrProjection: snapshot.ProjectionType,
	})

	_, err := es.conn().ExecContext(
		ctx,
		`INSERT INTO snapshots (projection_type, filter_hash, sequence_number, snapshot_data, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (projection_type, filter_hash) DO UPDATE SET
		   sequence_number = excluded.sequence_number,
		   snapshot_data = excluded.snapshot_data,
		   created_at = excluded.created_at
		 WHERE snapshots.sequence_number <= excluded.sequence_number`,
		snapshot.ProjectionType,
		snapshot.FilterHash,
		int64(snapshot.SequenceNumber),
		string(snapshot.Data),
		toMicros(snapshot.CreatedAt),
	)
	if err != nil {
		op.Fail(observer.MetricSnapshotDuration, observer.ErrorTypeSnapshot, err)
		return errors.Join(eventstore.ErrSavingSnapshotFailed, err)
	}

	op.Succeed(observer.MetricSnapshotDuration, "", 0, nil)

	return nil
}

// LoadSnapshot returns nil, nil when no snapshot exists.
func (es *EventStore) LoadSnapshot(
	ctx context.Context,
	projectionType string,
	filter eventstore.Filter,
) (*eventstore.Snapshot, error) {

	if projectionType == "" {
		return nil, errors.Join(eventstore.ErrLoadingSnapshotFailed, eventstore.ErrEmptyProjectionType)
	}

	op, ctx := es.observer.Start(ctx, observer.OperationLoadSnapshot, observer.SpanNameLoadSnapshot, map[string]string{
		observer.AttrProjection: projectionType,
	})

	var (
		sequenceNumber int64
		data           string
		createdAt      int64
	)

	err := es.conn().QueryRowContext(
		ctx,
		`SELECT sequence_number, snapshot_data, created_at FROM snapshots WHERE projection_type = ? AND filter_hash = ?`,
		projectionType,
		filter.Hash(),
	).Scan(&sequenceNumber, &data, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		op.Succeed(observer.MetricSnapshotDuration, "", 0, nil)
		return nil, nil
	}

	if err != nil {
		op.Fail(observer.MetricSnapshotDuration, observer.ErrorTypeSnapshot, err)
		return nil, errors.Join(eventstore.ErrLoadingSnapshotFailed, err)
	}

	op.Succeed(observer.MetricSnapshotDuration, "", 0, nil)

	return &eventstore.Snapshot{
		ProjectionType: projectionType,
		FilterHash:     filter.Hash(),
		SequenceNumber: eventstore.MaxSequenceNumberUint(sequenceNumber),
		Data:           []byte(data),
		CreatedAt:      fromMicros(createdAt),
	}, nil
}

// DeleteSnapshot removes the snapshot, deleting a missing one is not an error.
func (es *EventStore) DeleteSnapshot(ctx context.Context, projectionType string, filter eventstore.Filter) error {
	if projectionType == "" {
		return errors.Join(eventstore.ErrDeletingSnapshotFailed, eventstore.ErrEmptyProjectionType)
	}

	if _, err := es.conn().ExecContext(
		ctx,
		`DELETE FROM snapshots WHERE projection_type = ? AND filter_hash = ?`,
		projectionType,
		filter.Hash(),
	); err != nil {
		return errors.Join(eventstore.ErrDeletingSnapshotFailed, err)
	}

	return nil
}
