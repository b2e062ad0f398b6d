package service

import (
	"context"

	"github.com/MKhiriev/go-quote-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=FolderServiceWrapper

// FolderService maintains each user's forest of folders.
//
// Mutating operations take the caller's user ID as ownerID and fail with
// ErrForbidden when the target folder belongs to someone else. Reads take a
// bare folder ID; the transport layer checks ownership of what it returns.
type FolderService interface {
	CreateRootFolder(ctx context.Context, ownerID int64, name string) (models.Folder, error)
	// CreateSubfolder enforces no depth limit. See [FolderDepthPolicy].
	CreateSubfolder(ctx context.Context, ownerID, parentID int64, name string) (models.Folder, error)
	GetFolder(ctx context.Context, id int64) (models.Folder, error)
	// GetSubtree loads the folder with all descendants and their quotes.
	GetSubtree(ctx context.Context, id int64) (*models.FolderTree, error)
	ListRootFolders(ctx context.Context, ownerID int64) ([]models.FolderSummary, error)
	RenameFolder(ctx context.Context, ownerID, id int64, name string) (models.Folder, error)
	// DeleteFolder refuses with ErrConflict while the folder has subfolders
	// or quotes.
	DeleteFolder(ctx context.Context, ownerID, id int64) error
	// FindPathToRoot returns folder IDs from the root down to id.
	FindPathToRoot(ctx context.Context, id int64) ([]int64, error)
}

// FolderServiceWrapper defines middleware composition for FolderService.
// Implementations wrap an existing FolderService to add behavior such as
// validation or tier policies.
type FolderServiceWrapper interface {
	Wrap(FolderService) FolderService
}

// AuthService is the identity collaborator: it issues and checks the tokens
// from which every other service gets its caller's user ID.
type AuthService interface {
	Register(ctx context.Context, credentials models.Credentials) (models.User, models.TokenPair, error)
	Login(ctx context.Context, credentials models.Credentials) (models.User, models.TokenPair, error)
	// Refresh rotates a refresh token: the presented one is revoked and a
	// new pair is issued.
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)
	// Logout revokes a refresh token. Unknown tokens are ignored.
	Logout(ctx context.Context, refreshToken string) error
	// ParseAccessToken returns the user ID an access token was issued to.
	ParseAccessToken(ctx context.Context, accessToken string) (int64, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID int64) (models.User, error)
	UpdateProfile(ctx context.Context, userID int64, request models.ProfileUpdateRequest) (models.User, error)
	UpdateTier(ctx context.Context, userID int64, tier models.Tier) (models.User, error)
	// DeleteAccount removes the user and everything they own after checking
	// their password.
	DeleteAccount(ctx context.Context, userID int64, password string) error
}

type QuoteService interface {
	CreateQuote(ctx context.Context, ownerID int64, request models.CreateQuoteRequest) (models.Quote, error)
	GetQuote(ctx context.Context, ownerID, id int64) (models.Quote, error)
	ListQuotes(ctx context.Context, filter models.QuoteFilter) ([]models.Quote, error)
	UpdateQuote(ctx context.Context, update models.QuoteUpdate) (models.Quote, error)
	DeleteQuote(ctx context.Context, ownerID, id int64) error
}

type TagService interface {
	CreateTag(ctx context.Context, ownerID int64, request models.CreateTagRequest) (models.Tag, error)
	ListTags(ctx context.Context, ownerID int64, tagType models.TagType) ([]models.Tag, error)
	UpdateTag(ctx context.Context, update models.TagUpdate) (models.Tag, error)
	DeleteTag(ctx context.Context, ownerID, id int64) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetVersionInfo(ctx context.Context) models.VersionInfo
}
