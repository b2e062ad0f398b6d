package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-quote-keeper/internal/config"
	"github.com/MKhiriev/go-quote-keeper/internal/logger"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

// newMockDB returns a PostgreSQL-flavoured DB over sqlmock.
func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = sqlDB.Close()
	})

	return &DB{
		DB:                 sqlDB,
		dialect:            config.DriverPostgres,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
		now:                func() time.Time { return fixedNow },
	}, mock
}

// newSQLiteStorages opens a migrated in-memory SQLite database.
func newSQLiteStorages(t *testing.T) *Storages {
	t.Helper()
	ctx := testContext()

	db, err := NewConnectSQLite(ctx, config.DB{DSN: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx))

	s := NewStoragesFromDB(db, logger.Nop())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustExec(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	_, err := db.Exec(query, args...)
	require.NoError(t, err)
}
