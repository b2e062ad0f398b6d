package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNotFound is returned when a lookup by id matches nothing. The
	// entity-specific errors below wrap it.
	ErrNotFound = errors.New("not found")

	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrFolderNotFound       = fmt.Errorf("folder %w", ErrNotFound)
	ErrQuoteNotFound        = fmt.Errorf("quote %w", ErrNotFound)
	ErrTagNotFound          = fmt.Errorf("tag %w", ErrNotFound)
	ErrRefreshTokenNotFound = fmt.Errorf("refresh token %w", ErrNotFound)

	// ErrAlreadyExists is returned on unique constraint violations, e.g. a
	// second account with the same email.
	ErrAlreadyExists = errors.New("already exists")

	// ErrForeignKey is returned when a write would leave a dangling
	// reference or remove a row that is still referenced.
	ErrForeignKey = errors.New("foreign key violation")

	// ErrConstraint is returned on CHECK and NOT NULL violations.
	ErrConstraint = errors.New("constraint violation")

	// ErrUnsupportedDriver is returned for drivers other than postgres and
	// sqlite3.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to execute statement")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
)
