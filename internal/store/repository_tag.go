package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-quote-keeper/internal/logger"
	"github.com/MKhiriev/go-quote-keeper/models"
)

var tagColumns = []string{"id", "name", "description", "color", "type", "user_id", "created_at", "updated_at"}

type tagRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewTagRepository constructs a [TagRepository] backed by db.
func NewTagRepository(db *DB, logger *logger.Logger) TagRepository {
	logger.Debug().Msg("creating tag repository")
	return &tagRepository{
		db:     db,
		logger: logger,
	}
}

func (r *tagRepository) CreateTag(ctx context.Context, tag models.Tag) (models.Tag, error) {
	log := logger.FromContext(ctx)

	now := r.db.timestamp()
	tag.CreatedAt, tag.UpdatedAt = now, now

	query, args, err := r.db.builder().
		Insert("tags").
		Columns("name", "description", "color", "type", "user_id", "created_at", "updated_at").
		Values(tag.Name, tag.Description, tag.Color, tag.Type, tag.UserID, tag.CreatedAt, tag.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.Tag{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&tag.ID); err != nil {
		log.Err(err).Str("func", "*tagRepository.CreateTag").Msg("error inserting tag")
		return models.Tag{}, fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}

	return tag, nil
}

func (r *tagRepository) GetTag(ctx context.Context, id int64) (models.Tag, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder().
		Select(tagColumns...).
		From("tags").
		Where(sqEq("id", id)).
		ToSql()
	if err != nil {
		return models.Tag{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tag, err := scanTag(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Tag{}, ErrTagNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*tagRepository.GetTag").Int64("tag_id", id).Msg("error selecting tag")
		return models.Tag{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return tag, nil
}

func (r *tagRepository) GetTags(ctx context.Context, ids []int64) ([]models.Tag, error) {
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}

	b := r.db.builder().
		Select(tagColumns...).
		From("tags").
		Where(sq.Eq{"id": uniqueIDs(ids)}).
		OrderBy("id ASC")

	return r.selectTags(ctx, "*tagRepository.GetTags", b)
}

func (r *tagRepository) ListTags(ctx context.Context, userID int64, tagType models.TagType) ([]models.Tag, error) {
	b := r.db.builder().
		Select(tagColumns...).
		From("tags").
		OrderBy("created_at DESC", "id DESC")

	switch tagType {
	case models.TagBuiltin:
		b = b.Where(sqEq("type", models.TagBuiltin))
	case models.TagCustom:
		b = b.Where(sq.Eq{"type": models.TagCustom, "user_id": userID})
	default:
		b = b.Where(sq.Or{
			sq.Eq{"type": models.TagBuiltin},
			sq.Eq{"type": models.TagCustom, "user_id": userID},
		})
	}

	return r.selectTags(ctx, "*tagRepository.ListTags", b)
}

func (r *tagRepository) selectTags(ctx context.Context, fn string, b sq.SelectBuilder) ([]models.Tag, error) {
	log := logger.FromContext(ctx)

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error selecting tags")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return collect(rows, scanTag)
}

func (r *tagRepository) UpdateTag(ctx context.Context, tag models.Tag) (models.Tag, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder().
		Update("tags").
		Set("name", tag.Name).
		Set("description", tag.Description).
		Set("color", tag.Color).
		Set("updated_at", r.db.timestamp()).
		Where(sqEq("id", tag.ID)).
		ToSql()
	if err != nil {
		return models.Tag{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*tagRepository.UpdateTag").Int64("tag_id", tag.ID).Msg("error updating tag")
		return models.Tag{}, fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}
	if err = expectAffected(res, ErrTagNotFound); err != nil {
		return models.Tag{}, err
	}

	return r.GetTag(ctx, tag.ID)
}

func (r *tagRepository) DeleteTag(ctx context.Context, id int64) error {
	res, err := r.db.execDelete(ctx, "tags", sqEq("id", id))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tagRepository.DeleteTag").Int64("tag_id", id).Msg("error deleting tag")
		return err
	}
	return expectAffected(res, ErrTagNotFound)
}

func scanTag(row scanner) (models.Tag, error) {
	var t models.Tag
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Color, &t.Type, &t.UserID, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}
