package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-quote-keeper/internal/logger"
	"github.com/MKhiriev/go-quote-keeper/internal/store"
	"github.com/MKhiriev/go-quote-keeper/internal/validators"
	"github.com/MKhiriev/go-quote-keeper/models"
)

// quoteService manages quote cards. Whenever a quote is filed into a folder
// the folder row is locked in the same transaction as the write, so a
// concurrent DeleteFolder cannot observe an empty folder that is about to
// receive a quote.
type quoteService struct {
	transactor       store.Transactor
	quoteRepository  store.QuoteRepository
	folderRepository store.FolderRepository
	tagRepository    store.TagRepository
	validator        validators.Validator

	logger *logger.Logger
}

func NewQuoteService(storages *store.Storages, validator validators.Validator, logger *logger.Logger) QuoteService {
	return &quoteService{
		transactor:       storages.Transactor,
		quoteRepository:  storages.QuoteRepository,
		folderRepository: storages.FolderRepository,
		tagRepository:    storages.TagRepository,
		validator:        validator,
		logger:           logger,
	}
}

func (s *quoteService) CreateQuote(ctx context.Context, ownerID int64, request models.CreateQuoteRequest) (models.Quote, error) {
	if err := s.validator.Validate(ctx, request); err != nil {
		return models.Quote{}, validationError(err)
	}

	quote := models.Quote{
		UserID:          ownerID,
		FolderID:        request.FolderID,
		Content:         request.Content,
		Width:           valueOr(request.Width, models.DefaultQuoteWidth),
		Height:          valueOr(request.Height, models.DefaultQuoteHeight),
		BackgroundColor: request.BackgroundColor,
		BackgroundImage: request.BackgroundImage,
	}

	var created models.Quote
	err := s.transactor.InTx(ctx, func(ctx context.Context) error {
		if err := s.lockOwnedFolder(ctx, ownerID, quote.FolderID); err != nil {
			return err
		}
		if err := s.checkTags(ctx, ownerID, request.TagIDs); err != nil {
			return err
		}

		inserted, err := s.quoteRepository.CreateQuote(ctx, quote)
		if err != nil {
			return storeError(err)
		}
		if len(request.TagIDs) > 0 {
			if err = s.quoteRepository.SetQuoteTags(ctx, inserted.ID, request.TagIDs); err != nil {
				return storeError(err)
			}
		}

		created, err = s.quoteRepository.GetQuote(ctx, inserted.ID)
		return storeError(err)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*quoteService.CreateQuote").Int64("owner_id", ownerID).Msg("error creating quote")
		return models.Quote{}, err
	}

	return created, nil
}

func (s *quoteService) GetQuote(ctx context.Context, ownerID, id int64) (models.Quote, error) {
	quote, err := s.quoteRepository.GetQuote(ctx, id)
	if err != nil {
		return models.Quote{}, storeError(err)
	}
	if quote.UserID != ownerID {
		return models.Quote{}, forbidden()
	}
	return quote, nil
}

// ListQuotes always scopes the listing to filter.UserID.
func (s *quoteService) ListQuotes(ctx context.Context, filter models.QuoteFilter) ([]models.Quote, error) {
	if err := s.validator.Validate(ctx, filter); err != nil {
		return nil, validationError(err)
	}

	quotes, err := s.quoteRepository.ListQuotes(ctx, filter)
	if err != nil {
		return nil, storeError(err)
	}
	return quotes, nil
}

// UpdateQuote applies the fields present in update. Moving a quote locks the
// destination folder; replacing the tag set checks every tag's visibility.
func (s *quoteService) UpdateQuote(ctx context.Context, update models.QuoteUpdate) (models.Quote, error) {
	if err := s.validator.Validate(ctx, update); err != nil {
		return models.Quote{}, validationError(err)
	}

	var updated models.Quote
	err := s.transactor.InTx(ctx, func(ctx context.Context) error {
		quote, err := s.quoteRepository.GetQuote(ctx, update.ID)
		if err != nil {
			return storeError(err)
		}
		if quote.UserID != update.UserID {
			return forbidden()
		}

		if update.Content != nil {
			quote.Content = *update.Content
		}
		if update.Width != nil {
			quote.Width = *update.Width
		}
		if update.Height != nil {
			quote.Height = *update.Height
		}
		if update.BackgroundColor.Present {
			quote.BackgroundColor = update.BackgroundColor.Value
		}
		if update.BackgroundImage.Present {
			quote.BackgroundImage = update.BackgroundImage.Value
		}
		if update.FolderID.Present {
			if err = s.lockOwnedFolder(ctx, update.UserID, update.FolderID.Value); err != nil {
				return err
			}
			quote.FolderID = update.FolderID.Value
		}

		if update.TagIDs != nil {
			if err = s.checkTags(ctx, update.UserID, *update.TagIDs); err != nil {
				return err
			}
			if err = s.quoteRepository.SetQuoteTags(ctx, quote.ID, *update.TagIDs); err != nil {
				return storeError(err)
			}
		}

		updated, err = s.quoteRepository.UpdateQuote(ctx, quote)
		return storeError(err)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*quoteService.UpdateQuote").Int64("quote_id", update.ID).Msg("error updating quote")
		return models.Quote{}, err
	}

	return updated, nil
}

func (s *quoteService) DeleteQuote(ctx context.Context, ownerID, id int64) error {
	return s.transactor.InTx(ctx, func(ctx context.Context) error {
		quote, err := s.quoteRepository.GetQuote(ctx, id)
		if err != nil {
			return storeError(err)
		}
		if quote.UserID != ownerID {
			return forbidden()
		}
		return storeError(s.quoteRepository.DeleteQuote(ctx, id))
	})
}

// lockOwnedFolder locks folderID for the rest of the transaction and checks
// it belongs to ownerID. A nil folderID means unfiled and passes.
func (s *quoteService) lockOwnedFolder(ctx context.Context, ownerID int64, folderID *int64) error {
	if folderID == nil {
		return nil
	}

	folder, err := s.folderRepository.GetFolderForUpdate(ctx, *folderID)
	if err != nil {
		return storeError(err)
	}
	if folder.OwnerID != ownerID {
		return forbidden()
	}
	return nil
}

// checkTags requires every id to name an existing tag visible to ownerID.
func (s *quoteService) checkTags(ctx context.Context, ownerID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	tags, err := s.tagRepository.GetTags(ctx, tagIDs)
	if err != nil {
		return storeError(err)
	}

	for _, id := range tagIDs {
		i := slices.IndexFunc(tags, func(t models.Tag) bool { return t.ID == id })
		if i < 0 {
			return withKind(ErrNotFound, fmt.Errorf("%w: %d", store.ErrTagNotFound, id))
		}
		if !tags[i].VisibleTo(ownerID) {
			return forbidden()
		}
	}
	return nil
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
