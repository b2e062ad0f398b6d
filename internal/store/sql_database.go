package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-quote-keeper/internal/config"
	"github.com/MKhiriev/go-quote-keeper/internal/logger"
	"github.com/MKhiriev/go-quote-keeper/migrations"
)

// DB is a database/sql handle bound to one SQL dialect. Repositories build
// their statements with [DB.builder] and run them through [DB.conn] so that
// they automatically join a transaction opened by [DB.InTx].
type DB struct {
	*sql.DB
	dialect            string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
	now                func() time.Time
}

// NewConnect opens the database described by cfg. The driver is taken from
// cfg.Driver, falling back to a guess based on the DSN.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = config.DriverFromDSN(cfg.DSN)
	}

	switch driver {
	case config.DriverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// Dialect returns the driver name the handle was opened with.
func (db *DB) Dialect() string {
	return db.dialect
}

// Migrate applies the embedded schema migrations for the handle's dialect.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, db.dialect)
}

// Ping checks that the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.PingContext(ctx)
}

// builder returns a squirrel statement builder with the dialect's
// placeholder format.
func (db *DB) builder() sq.StatementBuilderType {
	if db.dialect == config.DriverPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// forUpdate appends a row lock to a select on dialects that support one.
// SQLite serializes writers with a database-level lock instead.
func (db *DB) forUpdate(b sq.SelectBuilder) sq.SelectBuilder {
	if db.dialect == config.DriverPostgres {
		return b.Suffix("FOR UPDATE")
	}
	return b
}

func (db *DB) timestamp() time.Time {
	if db.now != nil {
		return db.now().UTC()
	}
	return time.Now().UTC()
}

// classify maps a driver error onto the store's sentinel errors.
func (db *DB) classify(err error) error {
	if db.errorClassificator == nil {
		return err
	}
	return db.errorClassificator.Translate(err)
}
