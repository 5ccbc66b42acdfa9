// Package dbx holds the small storage helpers shared by repositories and
// binaries: the DBTX interface for SQL repositories and connect-and-ping
// helpers for Postgres and MongoDB.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by SQL repositories.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
