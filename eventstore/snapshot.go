package eventstore

import (
	"encoding/json"
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var (
	ErrInvalidSnapshotJSON    = errors.New("snapshot json is not valid")
	ErrEmptyProjectionType    = errors.New("projection type must not be empty")
	ErrEmptyFilterHash        = errors.New("filter hash must not be empty")
	ErrSavingSnapshotFailed   = errors.New("saving snapshot failed")
	ErrLoadingSnapshotFailed  = errors.New("loading snapshot failed")
	ErrDeletingSnapshotFailed = errors.New("deleting snapshot failed")
)

// Snapshot is a persisted projection together with the sequence number of the last event folded into it.
// It is identified by (ProjectionType, FilterHash).
type Snapshot struct {
	ProjectionType string                // e.g. "ListEvents"
	FilterHash     string                // Filter.Hash() of the query filter
	SequenceNumber MaxSequenceNumberUint // last folded event
	Data           json.RawMessage       // the serialized projection
	CreatedAt      time.Time
}

func (s Snapshot) Validate() error {
	if s.ProjectionType == "" {
		return ErrEmptyProjectionType
	}

	if s.FilterHash == "" {
		return ErrEmptyFilterHash
	}

	if !jsoniter.ConfigFastest.Valid(s.Data) {
		return ErrInvalidSnapshotJSON
	}

	return nil
}

// BuildSnapshot creates a validated Snapshot stamped with the current time.
func BuildSnapshot(
	projectionType string,
	filterHash string,
	sequenceNumber MaxSequenceNumberUint,
	data json.RawMessage,
) (Snapshot, error) {

	snapshot := Snapshot{
		ProjectionType: projectionType,
		FilterHash:     filterHash,
		SequenceNumber: sequenceNumber,
		Data:           data,
		CreatedAt:      time.Now().UTC(),
	}

	if err := snapshot.Validate(); err != nil {
		return Snapshot{}, err
	}

	return snapshot, nil
}
