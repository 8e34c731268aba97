package postgresengine

import (
	"context"
	"errors"
	"fmt"
)

var ErrCreatingSchemaFailed = errors.New("creating postgres schema failed")

const schemaTemplate = `
CREATE TABLE IF NOT EXISTS %[1]s (
    sequence_number BIGSERIAL PRIMARY KEY,
    event_type      TEXT        NOT NULL,
    occurred_at     TIMESTAMPTZ NOT NULL,
    payload         JSONB       NOT NULL,
    metadata        JSONB       NOT NULL DEFAULT '{}'::jsonb
);
CREATE INDEX IF NOT EXISTS %[1]s_event_type_idx ON %[1]s (event_type);
CREATE INDEX IF NOT EXISTS %[1]s_occurred_at_idx ON %[1]s (occurred_at);
CREATE INDEX IF NOT EXISTS %[1]s_payload_idx ON %[1]s USING GIN (payload jsonb_path_ops);

CREATE TABLE IF NOT EXISTS %[2]s (
    projection_type TEXT        NOT NULL,
    filter_hash     TEXT        NOT NULL,
    sequence_number BIGINT      NOT NULL,
    snapshot_data   JSONB       NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (projection_type, filter_hash)
);
`

// SchemaSQL returns the DDL for the configured table names.
func (es *EventStore) SchemaSQL() string {
	return fmt.Sprintf(schemaTemplate, es.eventTableName, es.snapshotTableName)
}

// CreateSchema creates the tables and indexes if they don't exist yet.
func (es *EventStore) CreateSchema(ctx context.Context) error {
	if _, err := es.db.Exec(ctx, es.SchemaSQL()); err != nil {
		es.observer.LogError(ctx, "creating schema failed", err)
		return errors.Join(ErrCreatingSchemaFailed, err)
	}

	es.observer.LogOperation(ctx, "schema created",
		"events_table", es.eventTableName,
		"snapshots_table", es.snapshotTableName)

	return nil
}
