package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-quote-keeper/internal/logger"
	"github.com/MKhiriev/go-quote-keeper/models"
)

var userColumns = []string{"id", "email", "password_hash", "tier", "created_at", "updated_at"}

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table.
type userRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by db.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser inserts a user and returns it with the assigned id and
// timestamps. A taken email yields [ErrAlreadyExists].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Tier == "" {
		user.Tier = models.TierBasic
	}
	now := r.db.timestamp()
	user.CreatedAt, user.UpdatedAt = now, now

	query, args, err := r.db.builder().
		Insert("users").
		Columns("email", "password_hash", "tier", "created_at", "updated_at").
		Values(user.Email, user.PasswordHash, user.Tier, user.CreatedAt, user.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&user.UserID); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}

	return user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.getUser(ctx, "id", userID)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.getUser(ctx, "email", email)
}

func (r *userRepository) getUser(ctx context.Context, column string, value any) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder().
		Select(userColumns...).
		From("users").
		Where(sqEq(column, value)).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.getUser").Str("by", column).Msg("error selecting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// UpdateUser applies the non-nil fields of update and returns the stored
// user.
func (r *userRepository) UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	b := r.db.builder().
		Update("users").
		Set("updated_at", r.db.timestamp()).
		Where(sqEq("id", update.UserID))
	if update.Email != nil {
		b = b.Set("email", *update.Email)
	}
	if update.PasswordHash != nil {
		b = b.Set("password_hash", *update.PasswordHash)
	}
	if update.Tier != nil {
		b = b.Set("tier", *update.Tier)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Int64("user_id", update.UserID).Msg("error updating user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}
	if err = expectAffected(res, ErrUserNotFound); err != nil {
		return models.User{}, err
	}

	return r.GetUserByID(ctx, update.UserID)
}

// DeleteUser removes the user's quotes, folders and custom tags before the
// user row itself, all in one transaction. Refresh tokens and tag links go
// with the cascade.
func (r *userRepository) DeleteUser(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	return r.db.InTx(ctx, func(ctx context.Context) error {
		steps := []struct {
			table  string
			column string
		}{
			{"quotes", "user_id"},
			{"folders", "owner_id"},
			{"tags", "user_id"},
		}
		for _, step := range steps {
			if _, err := r.db.execDelete(ctx, step.table, sqEq(step.column, userID)); err != nil {
				log.Err(err).Str("func", "*userRepository.DeleteUser").Str("table", step.table).Msg("error deleting user data")
				return err
			}
		}

		res, err := r.db.execDelete(ctx, "users", sqEq("id", userID))
		if err != nil {
			log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error deleting user")
			return err
		}
		return expectAffected(res, ErrUserNotFound)
	})
}

func scanUser(row scanner) (models.User, error) {
	var user models.User
	err := row.Scan(&user.UserID, &user.Email, &user.PasswordHash, &user.Tier, &user.CreatedAt, &user.UpdatedAt)
	return user, err
}
