package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-quote-keeper/internal/logger"
	"github.com/MKhiriev/go-quote-keeper/internal/store"
	"github.com/MKhiriev/go-quote-keeper/models"
)

// FolderDepthPolicy caps folder nesting by the owner's subscription tier
// (see [models.Tier.MaxFolderDepth]). Only CreateSubfolder is affected; the
// remaining methods delegate unchanged.
//
// Folders never move, so an ancestor path cannot change once the parent
// exists and the depth check needs no lock of its own.
type FolderDepthPolicy struct {
	FolderService

	userRepository store.UserRepository
	logger         *logger.Logger
}

func NewFolderDepthPolicy(userRepository store.UserRepository, logger *logger.Logger) FolderServiceWrapper {
	return &FolderDepthPolicy{
		userRepository: userRepository,
		logger:         logger,
	}
}

func (p *FolderDepthPolicy) Wrap(inner FolderService) FolderService {
	p.FolderService = inner
	return p
}

func (p *FolderDepthPolicy) CreateSubfolder(ctx context.Context, ownerID, parentID int64, name string) (models.Folder, error) {
	parent, err := p.FolderService.GetFolder(ctx, parentID)
	if err != nil {
		return models.Folder{}, err
	}
	if parent.OwnerID != ownerID {
		return models.Folder{}, forbidden()
	}

	user, err := p.userRepository.GetUserByID(ctx, ownerID)
	if err != nil {
		return models.Folder{}, storeError(err)
	}

	maxDepth := user.Tier.MaxFolderDepth()
	if maxDepth > 0 {
		path, err := p.FolderService.FindPathToRoot(ctx, parentID)
		if err != nil {
			return models.Folder{}, err
		}

		if depth := len(path) + 1; depth > maxDepth {
			logger.FromContext(ctx).Info().
				Int64("owner_id", ownerID).
				Str("tier", string(user.Tier)).
				Int("depth", depth).
				Msg("folder depth limit reached")
			return models.Folder{}, withKind(ErrForbidden, fmt.Errorf("%w: %s tier allows %d levels", ErrDepthLimitExceeded, user.Tier, maxDepth))
		}
	}

	return p.FolderService.CreateSubfolder(ctx, ownerID, parentID, name)
}
