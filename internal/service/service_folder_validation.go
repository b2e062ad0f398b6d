package service

import (
	"context"

	"github.com/MKhiriev/go-quote-keeper/internal/validators"
	"github.com/MKhiriev/go-quote-keeper/models"
)

// FolderValidationService checks identifiers and names before they reach the
// wrapped FolderService. Failures carry ErrValidation.
type FolderValidationService struct {
	inner     FolderService
	validator validators.Validator
}

func NewFolderValidationService(validator validators.Validator) FolderServiceWrapper {
	return &FolderValidationService{
		validator: validator,
	}
}

func (v *FolderValidationService) Wrap(inner FolderService) FolderService {
	v.inner = inner
	return v
}

func (v *FolderValidationService) CreateRootFolder(ctx context.Context, ownerID int64, name string) (models.Folder, error) {
	folder := models.Folder{Name: name, OwnerID: ownerID}
	if err := v.validate(ctx, folder, validators.FieldName, validators.FieldOwnerID); err != nil {
		return models.Folder{}, err
	}
	return v.inner.CreateRootFolder(ctx, ownerID, name)
}

func (v *FolderValidationService) CreateSubfolder(ctx context.Context, ownerID, parentID int64, name string) (models.Folder, error) {
	folder := models.Folder{Name: name, OwnerID: ownerID, ParentID: &parentID}
	if err := v.validate(ctx, folder, validators.FieldName, validators.FieldOwnerID, validators.FieldParentID); err != nil {
		return models.Folder{}, err
	}
	return v.inner.CreateSubfolder(ctx, ownerID, parentID, name)
}

func (v *FolderValidationService) GetFolder(ctx context.Context, id int64) (models.Folder, error) {
	if err := v.validateID(ctx, id); err != nil {
		return models.Folder{}, err
	}
	return v.inner.GetFolder(ctx, id)
}

func (v *FolderValidationService) GetSubtree(ctx context.Context, id int64) (*models.FolderTree, error) {
	if err := v.validateID(ctx, id); err != nil {
		return nil, err
	}
	return v.inner.GetSubtree(ctx, id)
}

func (v *FolderValidationService) ListRootFolders(ctx context.Context, ownerID int64) ([]models.FolderSummary, error) {
	if err := v.validate(ctx, models.Folder{OwnerID: ownerID}, validators.FieldOwnerID); err != nil {
		return nil, err
	}
	return v.inner.ListRootFolders(ctx, ownerID)
}

func (v *FolderValidationService) RenameFolder(ctx context.Context, ownerID, id int64, name string) (models.Folder, error) {
	folder := models.Folder{ID: id, Name: name, OwnerID: ownerID}
	if err := v.validate(ctx, folder, validators.FieldID, validators.FieldName, validators.FieldOwnerID); err != nil {
		return models.Folder{}, err
	}
	return v.inner.RenameFolder(ctx, ownerID, id, name)
}

func (v *FolderValidationService) DeleteFolder(ctx context.Context, ownerID, id int64) error {
	folder := models.Folder{ID: id, OwnerID: ownerID}
	if err := v.validate(ctx, folder, validators.FieldID, validators.FieldOwnerID); err != nil {
		return err
	}
	return v.inner.DeleteFolder(ctx, ownerID, id)
}

func (v *FolderValidationService) FindPathToRoot(ctx context.Context, id int64) ([]int64, error) {
	if err := v.validateID(ctx, id); err != nil {
		return nil, err
	}
	return v.inner.FindPathToRoot(ctx, id)
}

func (v *FolderValidationService) validateID(ctx context.Context, id int64) error {
	return v.validate(ctx, models.Folder{ID: id}, validators.FieldID)
}

func (v *FolderValidationService) validate(ctx context.Context, folder models.Folder, fields ...string) error {
	return validationError(v.validator.Validate(ctx, folder, fields...))
}
