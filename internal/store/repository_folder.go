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

var folderColumns = []string{"id", "name", "owner_id", "parent_id", "created_at", "updated_at"}

// folderRepository is the SQL implementation of [FolderRepository]. The
// parent reference is a self foreign key on "folders"; children are found
// through the (owner_id, parent_id) and (parent_id, created_at, id) indexes.
type folderRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewFolderRepository constructs a [FolderRepository] backed by db.
func NewFolderRepository(db *DB, logger *logger.Logger) FolderRepository {
	logger.Debug().Msg("creating folder repository")
	return &folderRepository{
		db:     db,
		logger: logger,
	}
}

// CreateFolder inserts folder and returns it with its id and timestamps.
// A parent id that does not exist yields [ErrForeignKey].
func (r *folderRepository) CreateFolder(ctx context.Context, folder models.Folder) (models.Folder, error) {
	log := logger.FromContext(ctx)

	now := r.db.timestamp()
	folder.CreatedAt, folder.UpdatedAt = now, now

	query, args, err := r.db.builder().
		Insert("folders").
		Columns("name", "owner_id", "parent_id", "created_at", "updated_at").
		Values(folder.Name, folder.OwnerID, folder.ParentID, folder.CreatedAt, folder.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.Folder{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&folder.ID); err != nil {
		log.Err(err).
			Str("func", "*folderRepository.CreateFolder").
			Int64("owner_id", folder.OwnerID).
			Msg("error inserting folder")
		return models.Folder{}, fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}

	return folder, nil
}

func (r *folderRepository) GetFolder(ctx context.Context, id int64) (models.Folder, error) {
	return r.getFolder(ctx, id, false)
}

func (r *folderRepository) GetFolderForUpdate(ctx context.Context, id int64) (models.Folder, error) {
	return r.getFolder(ctx, id, true)
}

func (r *folderRepository) getFolder(ctx context.Context, id int64, lock bool) (models.Folder, error) {
	log := logger.FromContext(ctx)

	b := r.db.builder().
		Select(folderColumns...).
		From("folders").
		Where(sqEq("id", id))
	if lock {
		b = r.db.forUpdate(b)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return models.Folder{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	folder, err := scanFolder(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Folder{}, ErrFolderNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*folderRepository.getFolder").Int64("folder_id", id).Msg("error selecting folder")
		return models.Folder{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return folder, nil
}

// ListChildren loads one level of the hierarchy in a single query.
func (r *folderRepository) ListChildren(ctx context.Context, parentIDs []int64) ([]models.Folder, error) {
	if len(parentIDs) == 0 {
		return []models.Folder{}, nil
	}
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder().
		Select(folderColumns...).
		From("folders").
		Where(sq.Eq{"parent_id": parentIDs}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*folderRepository.ListChildren").Int("parents", len(parentIDs)).Msg("error selecting children")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return collect(rows, scanFolder)
}

// ListRootFolders returns the owner's root folders with the number of
// their direct subfolders and quotes.
func (r *folderRepository) ListRootFolders(ctx context.Context, ownerID int64) ([]models.FolderSummary, error) {
	log := logger.FromContext(ctx)

	subfolders := sq.Select("COUNT(*)").From("folders c").Where("c.parent_id = f.id")
	quotes := sq.Select("COUNT(*)").From("quotes q").Where("q.folder_id = f.id")

	query, args, err := r.db.builder().
		Select("f.id", "f.name", "f.owner_id", "f.parent_id", "f.created_at", "f.updated_at").
		Column(sq.Alias(subfolders, "subfolder_count")).
		Column(sq.Alias(quotes, "quote_count")).
		From("folders f").
		Where(sq.Eq{"f.owner_id": ownerID, "f.parent_id": nil}).
		OrderBy("f.created_at ASC", "f.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*folderRepository.ListRootFolders").Int64("owner_id", ownerID).Msg("error selecting root folders")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return collect(rows, func(row scanner) (models.FolderSummary, error) {
		var s models.FolderSummary
		err := row.Scan(&s.ID, &s.Name, &s.OwnerID, &s.ParentID, &s.CreatedAt, &s.UpdatedAt,
			&s.SubfolderCount, &s.QuoteCount)
		return s, err
	})
}

func (r *folderRepository) CountContents(ctx context.Context, id int64) (int, int, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder().
		Select().
		Column(sq.Alias(sq.Select("COUNT(*)").From("folders").Where(sqEq("parent_id", id)), "subfolder_count")).
		Column(sq.Alias(sq.Select("COUNT(*)").From("quotes").Where(sqEq("folder_id", id)), "quote_count")).
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var subfolders, quotes int
	if err = r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&subfolders, &quotes); err != nil {
		log.Err(err).Str("func", "*folderRepository.CountContents").Int64("folder_id", id).Msg("error counting folder contents")
		return 0, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return subfolders, quotes, nil
}

func (r *folderRepository) RenameFolder(ctx context.Context, id int64, name string) (models.Folder, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder().
		Update("folders").
		Set("name", name).
		Set("updated_at", r.db.timestamp()).
		Where(sqEq("id", id)).
		ToSql()
	if err != nil {
		return models.Folder{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*folderRepository.RenameFolder").Int64("folder_id", id).Msg("error renaming folder")
		return models.Folder{}, fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}
	if err = expectAffected(res, ErrFolderNotFound); err != nil {
		return models.Folder{}, err
	}

	return r.GetFolder(ctx, id)
}

// DeleteFolder removes a single folder row. A folder that still has
// subfolders or quotes is refused by the foreign keys with [ErrForeignKey].
func (r *folderRepository) DeleteFolder(ctx context.Context, id int64) error {
	res, err := r.db.execDelete(ctx, "folders", sqEq("id", id))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*folderRepository.DeleteFolder").Int64("folder_id", id).Msg("error deleting folder")
		return err
	}
	return expectAffected(res, ErrFolderNotFound)
}

func scanFolder(row scanner) (models.Folder, error) {
	var f models.Folder
	err := row.Scan(&f.ID, &f.Name, &f.OwnerID, &f.ParentID, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}
