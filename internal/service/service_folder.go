package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/go-quote-keeper/internal/logger"
	"github.com/MKhiriev/go-quote-keeper/internal/store"
	"github.com/MKhiriev/go-quote-keeper/models"
)

// MaxFolderNameLength is the longest folder name accepted, in runes.
const MaxFolderNameLength = 255

// folderService is the core of the folder hierarchy. Folders are rows keyed
// by id with a parent_id reference; trees are rebuilt on demand level by
// level. It keeps no state between calls: the store's transactions and row
// locks are the only serialization.
type folderService struct {
	transactor       store.Transactor
	folderRepository store.FolderRepository
	quoteRepository  store.QuoteRepository

	// subtreeTimeout bounds one GetSubtree call. Zero disables the bound.
	subtreeTimeout time.Duration

	logger *logger.Logger
}

func NewFolderService(storages *store.Storages, subtreeTimeout time.Duration, logger *logger.Logger) FolderService {
	return &folderService{
		transactor:       storages.Transactor,
		folderRepository: storages.FolderRepository,
		quoteRepository:  storages.QuoteRepository,
		subtreeTimeout:   subtreeTimeout,
		logger:           logger,
	}
}

func (s *folderService) CreateRootFolder(ctx context.Context, ownerID int64, name string) (models.Folder, error) {
	name, err := normalizeFolderName(name)
	if err != nil {
		return models.Folder{}, err
	}

	folder, err := s.folderRepository.CreateFolder(ctx, models.Folder{Name: name, OwnerID: ownerID})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*folderService.CreateRootFolder").Int64("owner_id", ownerID).Msg("error creating root folder")
		return models.Folder{}, storeError(err)
	}

	return folder, nil
}

// CreateSubfolder locks the parent row for the duration of the insert so the
// parent cannot be deleted between the ownership check and the insert.
func (s *folderService) CreateSubfolder(ctx context.Context, ownerID, parentID int64, name string) (models.Folder, error) {
	name, err := normalizeFolderName(name)
	if err != nil {
		return models.Folder{}, err
	}

	var folder models.Folder
	err = s.transactor.InTx(ctx, func(ctx context.Context) error {
		parent, err := s.folderRepository.GetFolderForUpdate(ctx, parentID)
		if err != nil {
			return storeError(err)
		}
		if parent.OwnerID != ownerID {
			return forbidden()
		}

		folder, err = s.folderRepository.CreateFolder(ctx, models.Folder{
			Name:     name,
			OwnerID:  ownerID,
			ParentID: &parent.ID,
		})
		return storeError(err)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*folderService.CreateSubfolder").
			Int64("owner_id", ownerID).
			Int64("parent_id", parentID).
			Msg("error creating subfolder")
		return models.Folder{}, err
	}

	return folder, nil
}

func (s *folderService) GetFolder(ctx context.Context, id int64) (models.Folder, error) {
	folder, err := s.folderRepository.GetFolder(ctx, id)
	if err != nil {
		return models.Folder{}, storeError(err)
	}
	return folder, nil
}

// GetSubtree expands the tree breadth first, one level per pair of queries:
// the children of every folder on the current level, then their quotes.
// Revisiting a folder means the stored hierarchy has a cycle and is reported
// as ErrDataIntegrity instead of looping.
func (s *folderService) GetSubtree(ctx context.Context, id int64) (*models.FolderTree, error) {
	log := logger.FromContext(ctx)

	if s.subtreeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.subtreeTimeout)
		defer cancel()
	}

	root, err := s.folderRepository.GetFolder(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}

	tree := models.NewFolderTree(root)
	nodes := map[int64]*models.FolderTree{root.ID: tree}
	level := []int64{root.ID}

	for depth := 1; len(level) > 0; depth++ {
		if err := ctx.Err(); err != nil {
			log.Warn().Err(err).Int64("folder_id", id).Int("depth", depth).Msg("subtree expansion aborted")
			return nil, fmt.Errorf("subtree expansion aborted at depth %d: %w", depth, err)
		}

		quotes, err := s.quoteRepository.ListQuotesInFolders(ctx, level)
		if err != nil {
			return nil, storeError(err)
		}
		for _, quote := range quotes {
			if quote.FolderID == nil {
				continue
			}
			if node, ok := nodes[*quote.FolderID]; ok {
				node.Quotes = append(node.Quotes, quote)
			}
		}

		children, err := s.folderRepository.ListChildren(ctx, level)
		if err != nil {
			return nil, storeError(err)
		}

		next := make([]int64, 0, len(children))
		for _, child := range children {
			if _, seen := nodes[child.ID]; seen {
				log.Error().Int64("folder_id", child.ID).Int64("root_id", id).Msg("cycle detected while expanding subtree")
				return nil, withKind(ErrDataIntegrity, fmt.Errorf("%w: folder %d reached twice", ErrCycleDetected, child.ID))
			}
			if child.OwnerID != root.OwnerID {
				return nil, withKind(ErrDataIntegrity, fmt.Errorf("%w: folder %d", ErrOwnerMismatch, child.ID))
			}

			var parent *models.FolderTree
			if child.ParentID != nil {
				parent = nodes[*child.ParentID]
			}
			if parent == nil {
				return nil, withKind(ErrDataIntegrity, fmt.Errorf("%w: folder %d", ErrDanglingParent, child.ID))
			}

			node := models.NewFolderTree(child)
			parent.SubFolders = append(parent.SubFolders, node)
			nodes[child.ID] = node
			next = append(next, child.ID)
		}
		level = next
	}

	return tree, nil
}

func (s *folderService) ListRootFolders(ctx context.Context, ownerID int64) ([]models.FolderSummary, error) {
	folders, err := s.folderRepository.ListRootFolders(ctx, ownerID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*folderService.ListRootFolders").Int64("owner_id", ownerID).Msg("error listing root folders")
		return nil, storeError(err)
	}
	return folders, nil
}

func (s *folderService) RenameFolder(ctx context.Context, ownerID, id int64, name string) (models.Folder, error) {
	name, err := normalizeFolderName(name)
	if err != nil {
		return models.Folder{}, err
	}

	var folder models.Folder
	err = s.transactor.InTx(ctx, func(ctx context.Context) error {
		current, err := s.folderRepository.GetFolderForUpdate(ctx, id)
		if err != nil {
			return storeError(err)
		}
		if current.OwnerID != ownerID {
			return forbidden()
		}

		folder, err = s.folderRepository.RenameFolder(ctx, id, name)
		return storeError(err)
	})
	if err != nil {
		return models.Folder{}, err
	}

	return folder, nil
}

// DeleteFolder checks emptiness and deletes under the same row lock. The
// RESTRICT foreign keys on folders.parent_id and quotes.folder_id back the
// check up should a row slip in anyway.
func (s *folderService) DeleteFolder(ctx context.Context, ownerID, id int64) error {
	err := s.transactor.InTx(ctx, func(ctx context.Context) error {
		folder, err := s.folderRepository.GetFolderForUpdate(ctx, id)
		if err != nil {
			return storeError(err)
		}
		if folder.OwnerID != ownerID {
			return forbidden()
		}

		subfolders, quotes, err := s.folderRepository.CountContents(ctx, id)
		if err != nil {
			return storeError(err)
		}
		if subfolders > 0 || quotes > 0 {
			return withKind(ErrConflict, fmt.Errorf("%w: %d subfolders, %d quotes", ErrFolderNotEmpty, subfolders, quotes))
		}

		err = s.folderRepository.DeleteFolder(ctx, id)
		if errors.Is(err, store.ErrForeignKey) {
			return withKind(ErrConflict, fmt.Errorf("%w: %w", ErrFolderNotEmpty, err))
		}
		return storeError(err)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*folderService.DeleteFolder").
			Int64("owner_id", ownerID).
			Int64("folder_id", id).
			Msg("error deleting folder")
		return err
	}

	return nil
}

// FindPathToRoot walks parent links upwards. A parent seen twice (cycle) or
// a parent that does not exist is reported as ErrDataIntegrity.
func (s *folderService) FindPathToRoot(ctx context.Context, id int64) ([]int64, error) {
	log := logger.FromContext(ctx)

	folder, err := s.folderRepository.GetFolder(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}

	path := []int64{folder.ID}
	visited := map[int64]struct{}{folder.ID: {}}

	for folder.ParentID != nil {
		parentID := *folder.ParentID
		if _, seen := visited[parentID]; seen {
			log.Error().Int64("folder_id", id).Int64("parent_id", parentID).Msg("cycle detected while walking to root")
			return nil, withKind(ErrDataIntegrity, fmt.Errorf("%w: folder %d reached twice", ErrCycleDetected, parentID))
		}

		parent, err := s.folderRepository.GetFolder(ctx, parentID)
		if errors.Is(err, store.ErrNotFound) {
			log.Error().Int64("folder_id", folder.ID).Int64("parent_id", parentID).Msg("dangling parent reference")
			return nil, withKind(ErrDataIntegrity, fmt.Errorf("%w: folder %d -> %d", ErrDanglingParent, folder.ID, parentID))
		}
		if err != nil {
			return nil, storeError(err)
		}
		if parent.OwnerID != folder.OwnerID {
			return nil, withKind(ErrDataIntegrity, fmt.Errorf("%w: folder %d", ErrOwnerMismatch, folder.ID))
		}

		visited[parentID] = struct{}{}
		path = append(path, parentID)
		folder = parent
	}

	slices.Reverse(path)
	return path, nil
}

// normalizeFolderName trims name and checks it is 1..MaxFolderNameLength
// runes long.
func normalizeFolderName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", withKind(ErrValidation, errors.New("folder name must not be empty"))
	}
	if utf8.RuneCountInString(name) > MaxFolderNameLength {
		return "", withKind(ErrValidation, fmt.Errorf("folder name must be at most %d characters", MaxFolderNameLength))
	}
	return name, nil
}
