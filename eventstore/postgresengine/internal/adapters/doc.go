// Package adapters hides the differences between pgxpool, database/sql and sqlx behind DBAdapter.
package adapters
