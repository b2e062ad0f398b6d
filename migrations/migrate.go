// Package migrations embeds the SQL schema of every supported database and
// applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite3/*.sql
var embedMigrations embed.FS

// Dialect names match the database/sql driver names used by the store.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

var ErrUnknownDialect = errors.New("unknown migration dialect")

// Migrate applies all pending migrations for dialect to db.
func Migrate(ctx context.Context, db *sql.DB, dialect string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	provider, err := newProvider(db, dialect)
	if err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

// Version reports the latest applied migration version.
func Version(ctx context.Context, db *sql.DB, dialect string) (int64, error) {
	if db == nil {
		return 0, errors.New("migration error: db is nil")
	}

	provider, err := newProvider(db, dialect)
	if err != nil {
		return 0, fmt.Errorf("migration error: %w", err)
	}

	return provider.GetDBVersion(ctx)
}

func newProvider(db *sql.DB, dialect string) (*goose.Provider, error) {
	var gooseDialect goose.Dialect
	switch dialect {
	case DialectPostgres:
		gooseDialect = goose.DialectPostgres
	case DialectSQLite:
		gooseDialect = goose.DialectSQLite3
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, dialect)
	}

	fsys, err := fs.Sub(embedMigrations, dialect)
	if err != nil {
		return nil, fmt.Errorf("error opening %s migrations: %w", dialect, err)
	}

	return goose.NewProvider(gooseDialect, db, fsys)
}
