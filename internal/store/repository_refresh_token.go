package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-quote-keeper/internal/logger"
	"github.com/MKhiriev/go-quote-keeper/models"
)

type refreshTokenRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewRefreshTokenRepository(db *DB, logger *logger.Logger) RefreshTokenRepository {
	logger.Debug().Msg("creating refresh token repository")
	return &refreshTokenRepository{
		db:     db,
		logger: logger,
	}
}

func (r *refreshTokenRepository) SaveRefreshToken(ctx context.Context, token models.RefreshTokenRecord) error {
	log := logger.FromContext(ctx)

	if token.CreatedAt.IsZero() {
		token.CreatedAt = r.db.timestamp()
	}

	query, args, err := r.db.builder().
		Insert("refresh_tokens").
		Columns("user_id", "token_hash", "expires_at", "created_at").
		Values(token.UserID, token.TokenHash, token.ExpiresAt.UTC(), token.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.conn(ctx).ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.SaveRefreshToken").Int64("user_id", token.UserID).Msg("error saving refresh token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}

	return nil
}

func (r *refreshTokenRepository) FindRefreshToken(ctx context.Context, tokenHash string) (models.RefreshTokenRecord, error) {
	log := logger.FromContext(ctx)

	b := r.db.builder().
		Select("id", "user_id", "token_hash", "expires_at", "created_at").
		From("refresh_tokens").
		Where(sqEq("token_hash", tokenHash))
	if txFromContext(ctx) != nil {
		b = r.db.forUpdate(b)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return models.RefreshTokenRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var rec models.RefreshTokenRecord
	err = r.db.conn(ctx).QueryRowContext(ctx, query, args...).
		Scan(&rec.ID, &rec.UserID, &rec.TokenHash, &rec.ExpiresAt, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RefreshTokenRecord{}, ErrRefreshTokenNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.FindRefreshToken").Msg("error selecting refresh token")
		return models.RefreshTokenRecord{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return rec, nil
}

func (r *refreshTokenRepository) DeleteRefreshToken(ctx context.Context, tokenHash string) (bool, error) {
	res, err := r.db.execDelete(ctx, "refresh_tokens", sqEq("token_hash", tokenHash))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*refreshTokenRepository.DeleteRefreshToken").Msg("error deleting refresh token")
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return n > 0, nil
}

func (r *refreshTokenRepository) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.execDelete(ctx, "refresh_tokens", sq.LtOrEq{"expires_at": now.UTC()})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*refreshTokenRepository.DeleteExpiredRefreshTokens").Msg("error deleting expired refresh tokens")
		return 0, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return n, nil
}
