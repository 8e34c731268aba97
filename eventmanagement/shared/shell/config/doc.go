// Package config builds the infrastructure the event management shell runs on:
// PostgreSQL connection pools for the three postgresengine adapters (pgx, database/sql, sqlx)
// and the OpenTelemetry providers behind the oteladapters.
//
// PostgreSQL settings come from EVENTMANAGEMENT_PG_* environment variables.
package config
