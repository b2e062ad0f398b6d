package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-quote-keeper/internal/logger"
)

// maxTxAttempts bounds how often a transaction is replayed after a
// retryable failure such as a deadlock or serialization error.
const maxTxAttempts = 3

type txKey struct{}

// executor is the subset of *sql.DB and *sql.Tx used by repositories.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func withTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func txFromContext(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}

// conn returns the transaction carried by ctx, or the pool when there is none.
func (db *DB) conn(ctx context.Context) executor {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return db.DB
}

// InTx runs fn inside a transaction. Repositories called with the context
// passed to fn take part in that transaction. Nested calls reuse the outer
// transaction. The transaction commits when fn returns nil and rolls back
// otherwise; retryable driver errors replay fn from the start.
func (db *DB) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	log := logger.FromContext(ctx)

	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = db.runTx(ctx, fn)
		if err == nil || db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
		log.Warn().Err(err).
			Str("func", "*DB.InTx").
			Int("attempt", attempt).
			Msg("retrying transaction")
	}

	return err
}

func (db *DB) runTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.FromContext(ctx).Err(rbErr).Str("func", "*DB.runTx").Msg("rollback failed")
		}
	}()

	if err = fn(withTx(ctx, tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
