package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-quote-keeper/internal/config"
	"github.com/MKhiriev/go-quote-keeper/internal/logger"
	"github.com/MKhiriev/go-quote-keeper/models"
)

var quoteColumns = []string{
	"id", "user_id", "folder_id", "content", "width", "height",
	"background_color", "background_image", "created_at", "updated_at",
}

type quoteRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewQuoteRepository constructs a [QuoteRepository] backed by db.
func NewQuoteRepository(db *DB, logger *logger.Logger) QuoteRepository {
	logger.Debug().Msg("creating quote repository")
	return &quoteRepository{
		db:     db,
		logger: logger,
	}
}

func (r *quoteRepository) CreateQuote(ctx context.Context, quote models.Quote) (models.Quote, error) {
	log := logger.FromContext(ctx)

	now := r.db.timestamp()
	quote.CreatedAt, quote.UpdatedAt = now, now

	query, args, err := r.db.builder().
		Insert("quotes").
		Columns("user_id", "folder_id", "content", "width", "height",
			"background_color", "background_image", "created_at", "updated_at").
		Values(quote.UserID, quote.FolderID, quote.Content, quote.Width, quote.Height,
			quote.BackgroundColor, quote.BackgroundImage, quote.CreatedAt, quote.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.Quote{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&quote.ID); err != nil {
		log.Err(err).Str("func", "*quoteRepository.CreateQuote").Int64("user_id", quote.UserID).Msg("error inserting quote")
		return models.Quote{}, fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}

	if quote.Tags == nil {
		quote.Tags = []models.Tag{}
	}
	return quote, nil
}

func (r *quoteRepository) GetQuote(ctx context.Context, id int64) (models.Quote, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder().
		Select(quoteColumns...).
		From("quotes").
		Where(sqEq("id", id)).
		ToSql()
	if err != nil {
		return models.Quote{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	quote, err := scanQuote(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Quote{}, ErrQuoteNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*quoteRepository.GetQuote").Int64("quote_id", id).Msg("error selecting quote")
		return models.Quote{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	quotes := []models.Quote{quote}
	if err = r.attachTags(ctx, quotes); err != nil {
		return models.Quote{}, err
	}

	return quotes[0], nil
}

// ListQuotes returns the user's quotes matching filter, newest first.
func (r *quoteRepository) ListQuotes(ctx context.Context, filter models.QuoteFilter) ([]models.Quote, error) {
	b := r.db.builder().
		Select(quoteColumns...).
		From("quotes").
		Where(sqEq("user_id", filter.UserID)).
		OrderBy("created_at DESC", "id DESC")

	if filter.FolderID != nil {
		b = b.Where(sqEq("folder_id", *filter.FolderID))
	}
	if filter.TagID != nil {
		b = b.Where(sq.Expr("id IN (SELECT quote_id FROM quote_tags WHERE tag_id = ?)", *filter.TagID))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		if r.db.dialect == config.DriverPostgres {
			b = b.Where(sq.ILike{"content": pattern})
		} else {
			b = b.Where(sq.Like{"content": pattern})
		}
	}
	if filter.Limit > 0 {
		b = b.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		if filter.Limit == 0 && r.db.dialect == config.DriverSQLite {
			// SQLite only accepts OFFSET after a LIMIT.
			b = b.Limit(math.MaxInt64)
		}
		b = b.Offset(filter.Offset)
	}

	return r.selectQuotes(ctx, "*quoteRepository.ListQuotes", b)
}

func (r *quoteRepository) ListQuotesInFolders(ctx context.Context, folderIDs []int64) ([]models.Quote, error) {
	if len(folderIDs) == 0 {
		return []models.Quote{}, nil
	}

	b := r.db.builder().
		Select(quoteColumns...).
		From("quotes").
		Where(sq.Eq{"folder_id": folderIDs}).
		OrderBy("created_at ASC", "id ASC")

	return r.selectQuotes(ctx, "*quoteRepository.ListQuotesInFolders", b)
}

func (r *quoteRepository) selectQuotes(ctx context.Context, fn string, b sq.SelectBuilder) ([]models.Quote, error) {
	log := logger.FromContext(ctx)

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error selecting quotes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	quotes, err := collect(rows, scanQuote)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error scanning quotes")
		return nil, err
	}

	if err = r.attachTags(ctx, quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

func (r *quoteRepository) UpdateQuote(ctx context.Context, quote models.Quote) (models.Quote, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder().
		Update("quotes").
		SetMap(map[string]any{
			"folder_id":        quote.FolderID,
			"content":          quote.Content,
			"width":            quote.Width,
			"height":           quote.Height,
			"background_color": quote.BackgroundColor,
			"background_image": quote.BackgroundImage,
			"updated_at":       r.db.timestamp(),
		}).
		Where(sqEq("id", quote.ID)).
		ToSql()
	if err != nil {
		return models.Quote{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*quoteRepository.UpdateQuote").Int64("quote_id", quote.ID).Msg("error updating quote")
		return models.Quote{}, fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}
	if err = expectAffected(res, ErrQuoteNotFound); err != nil {
		return models.Quote{}, err
	}

	return r.GetQuote(ctx, quote.ID)
}

func (r *quoteRepository) DeleteQuote(ctx context.Context, id int64) error {
	res, err := r.db.execDelete(ctx, "quotes", sqEq("id", id))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*quoteRepository.DeleteQuote").Int64("quote_id", id).Msg("error deleting quote")
		return err
	}
	return expectAffected(res, ErrQuoteNotFound)
}

// SetQuoteTags replaces the links in quote_tags. It must run inside a
// transaction to be atomic.
func (r *quoteRepository) SetQuoteTags(ctx context.Context, quoteID int64, tagIDs []int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.execDelete(ctx, "quote_tags", sqEq("quote_id", quoteID)); err != nil {
		log.Err(err).Str("func", "*quoteRepository.SetQuoteTags").Int64("quote_id", quoteID).Msg("error clearing quote tags")
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}

	b := r.db.builder().Insert("quote_tags").Columns("quote_id", "tag_id")
	for _, tagID := range uniqueIDs(tagIDs) {
		b = b.Values(quoteID, tagID)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.conn(ctx).ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*quoteRepository.SetQuoteTags").Int64("quote_id", quoteID).Msg("error linking quote tags")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}

	return nil
}

// attachTags loads the tags of all quotes with one query.
func (r *quoteRepository) attachTags(ctx context.Context, quotes []models.Quote) error {
	if len(quotes) == 0 {
		return nil
	}
	log := logger.FromContext(ctx)

	ids := make([]int64, len(quotes))
	for i := range quotes {
		ids[i] = quotes[i].ID
		quotes[i].Tags = []models.Tag{}
	}

	columns := append([]string{"qt.quote_id"}, prefixed("t", tagColumns)...)
	query, args, err := r.db.builder().
		Select(columns...).
		From("quote_tags qt").
		Join("tags t ON t.id = qt.tag_id").
		Where(sq.Eq{"qt.quote_id": ids}).
		OrderBy("t.name ASC", "t.id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*quoteRepository.attachTags").Msg("error selecting quote tags")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	type link struct {
		quoteID int64
		tag     models.Tag
	}
	links, err := collect(rows, func(row scanner) (link, error) {
		var l link
		err := row.Scan(&l.quoteID, &l.tag.ID, &l.tag.Name, &l.tag.Description, &l.tag.Color,
			&l.tag.Type, &l.tag.UserID, &l.tag.CreatedAt, &l.tag.UpdatedAt)
		return l, err
	})
	if err != nil {
		return err
	}

	index := make(map[int64]int, len(quotes))
	for i := range quotes {
		index[quotes[i].ID] = i
	}
	for _, l := range links {
		if i, ok := index[l.quoteID]; ok {
			quotes[i].Tags = append(quotes[i].Tags, l.tag)
		}
	}

	return nil
}

func scanQuote(row scanner) (models.Quote, error) {
	var q models.Quote
	err := row.Scan(&q.ID, &q.UserID, &q.FolderID, &q.Content, &q.Width, &q.Height,
		&q.BackgroundColor, &q.BackgroundImage, &q.CreatedAt, &q.UpdatedAt)
	return q, err
}

func prefixed(alias string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
