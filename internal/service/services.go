package service

import (
	"github.com/MKhiriev/go-quote-keeper/internal/config"
	"github.com/MKhiriev/go-quote-keeper/internal/logger"
	"github.com/MKhiriev/go-quote-keeper/internal/store"
	"github.com/MKhiriev/go-quote-keeper/internal/validators"
	"github.com/MKhiriev/go-quote-keeper/models"
)

type Services struct {
	AuthService    AuthService
	UserService    UserService
	FolderService  FolderService
	QuoteService   QuoteService
	TagService     TagService
	AppInfoService AppInfoService
}

// NewServices builds the service layer over storages. The folder service is
// the core wrapped first in the tier depth policy and then in request
// validation, so invalid input never reaches the policy's lookups.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	validator := validators.NewValidator()

	appInfo, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, err
	}

	folders := NewFolderService(storages, cfg.Server.SubtreeTimeout, logger)
	folders = NewFolderDepthPolicy(storages.UserRepository, logger).Wrap(folders)
	folders = NewFolderValidationService(validator).Wrap(folders)

	return &Services{
		AuthService:    NewAuthService(storages, validator, cfg.App, logger),
		UserService:    NewUserService(storages, validator, logger),
		FolderService:  folders,
		QuoteService:   NewQuoteService(storages, validator, logger),
		TagService:     NewTagService(storages, validator, logger),
		AppInfoService: appInfo,
	}, nil
}
