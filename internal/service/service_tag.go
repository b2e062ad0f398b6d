package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-quote-keeper/internal/logger"
	"github.com/MKhiriev/go-quote-keeper/internal/store"
	"github.com/MKhiriev/go-quote-keeper/internal/validators"
	"github.com/MKhiriev/go-quote-keeper/models"
)

type tagService struct {
	transactor    store.Transactor
	tagRepository store.TagRepository
	validator     validators.Validator

	logger *logger.Logger
}

func NewTagService(storages *store.Storages, validator validators.Validator, logger *logger.Logger) TagService {
	return &tagService{
		transactor:    storages.Transactor,
		tagRepository: storages.TagRepository,
		validator:     validator,
		logger:        logger,
	}
}

// CreateTag creates a CUSTOM tag owned by ownerID. BUILTIN tags only come
// from migrations.
func (s *tagService) CreateTag(ctx context.Context, ownerID int64, request models.CreateTagRequest) (models.Tag, error) {
	if err := s.validator.Validate(ctx, request); err != nil {
		return models.Tag{}, validationError(err)
	}

	tag, err := s.tagRepository.CreateTag(ctx, models.Tag{
		Name:        strings.TrimSpace(request.Name),
		Description: request.Description,
		Color:       request.Color,
		Type:        models.TagCustom,
		UserID:      &ownerID,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tagService.CreateTag").Int64("owner_id", ownerID).Msg("error creating tag")
		return models.Tag{}, storeError(err)
	}

	return tag, nil
}

// ListTags returns the BUILTIN tags and the caller's CUSTOM tags. A non-empty
// tagType narrows the listing to one kind.
func (s *tagService) ListTags(ctx context.Context, ownerID int64, tagType models.TagType) ([]models.Tag, error) {
	if tagType != "" && !tagType.Valid() {
		return nil, withKind(ErrValidation, fmt.Errorf("unknown tag type %q", tagType))
	}

	tags, err := s.tagRepository.ListTags(ctx, ownerID, tagType)
	if err != nil {
		return nil, storeError(err)
	}
	return tags, nil
}

func (s *tagService) UpdateTag(ctx context.Context, update models.TagUpdate) (models.Tag, error) {
	if err := s.validator.Validate(ctx, update); err != nil {
		return models.Tag{}, validationError(err)
	}

	var updated models.Tag
	err := s.transactor.InTx(ctx, func(ctx context.Context) error {
		tag, err := s.ownedTag(ctx, update.UserID, update.ID)
		if err != nil {
			return err
		}

		if update.Name != nil {
			tag.Name = strings.TrimSpace(*update.Name)
		}
		if update.Description.Present {
			tag.Description = update.Description.Value
		}
		if update.Color.Present {
			tag.Color = update.Color.Value
		}

		updated, err = s.tagRepository.UpdateTag(ctx, tag)
		return storeError(err)
	})
	if err != nil {
		return models.Tag{}, err
	}

	return updated, nil
}

// DeleteTag removes a CUSTOM tag; its links to quotes go with it.
func (s *tagService) DeleteTag(ctx context.Context, ownerID, id int64) error {
	err := s.transactor.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.ownedTag(ctx, ownerID, id); err != nil {
			return err
		}
		return storeError(s.tagRepository.DeleteTag(ctx, id))
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tagService.DeleteTag").Int64("tag_id", id).Msg("error deleting tag")
		return err
	}
	return nil
}

func (s *tagService) ownedTag(ctx context.Context, ownerID, id int64) (models.Tag, error) {
	tag, err := s.tagRepository.GetTag(ctx, id)
	if err != nil {
		return models.Tag{}, storeError(err)
	}
	if tag.Type == models.TagBuiltin {
		return models.Tag{}, withKind(ErrForbidden, ErrBuiltinTag)
	}
	if !tag.OwnedBy(ownerID) {
		return models.Tag{}, forbidden()
	}
	return tag, nil
}
