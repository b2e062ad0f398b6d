// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrate_NilDB(t *testing.T) {
	err := Migrate(context.Background(), nil, DialectPostgres)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db is nil")
}

func TestMigrate_UnknownDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = Migrate(context.Background(), db, "mysql")
	assert.ErrorIs(t, err, ErrUnknownDialect)
}

func TestMigrate_DBError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = Migrate(context.Background(), db, DialectPostgres)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}

func TestMigrate_SQLite(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	require.NoError(t, Migrate(ctx, db, DialectSQLite))
	// idempotent
	require.NoError(t, Migrate(ctx, db, DialectSQLite))

	version, err := Version(ctx, db, DialectSQLite)
	require.NoError(t, err)
	assert.EqualValues(t, 4, version)

	var builtin int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tags WHERE type = 'BUILTIN'`).Scan(&builtin))
	assert.Equal(t, 6, builtin)

	for _, table := range []string{"users", "refresh_tokens", "folders", "quotes", "tags", "quote_tags"} {
		var name string
		err := db.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestMigrate_SQLiteFolderConstraints(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	require.NoError(t, Migrate(ctx, db, DialectSQLite))

	_, err := db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, created_at, updated_at) VALUES ('a@b.c', 'x', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO folders (name, owner_id, parent_id, created_at, updated_at) VALUES ('orphan', 1, 999, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	assert.Error(t, err, "dangling parent must be rejected")

	_, err = db.ExecContext(ctx,
		`INSERT INTO folders (name, owner_id, created_at, updated_at) VALUES ('   ', 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	assert.Error(t, err, "blank name must be rejected")
}
