package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-quote-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// Transactor runs a unit of work atomically. Repository calls made with the
// context handed to fn join the transaction.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUserByID(ctx context.Context, userID int64) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error)
	// DeleteUser removes the account together with everything it owns.
	DeleteUser(ctx context.Context, userID int64) error
}

type RefreshTokenRepository interface {
	SaveRefreshToken(ctx context.Context, token models.RefreshTokenRecord) error
	// FindRefreshToken locks the matching row when called inside a transaction.
	FindRefreshToken(ctx context.Context, tokenHash string) (models.RefreshTokenRecord, error)
	// DeleteRefreshToken reports whether a row was removed.
	DeleteRefreshToken(ctx context.Context, tokenHash string) (bool, error)
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}

type FolderRepository interface {
	CreateFolder(ctx context.Context, folder models.Folder) (models.Folder, error)
	GetFolder(ctx context.Context, id int64) (models.Folder, error)
	// GetFolderForUpdate reads a folder and locks its row for the rest of the
	// surrounding transaction.
	GetFolderForUpdate(ctx context.Context, id int64) (models.Folder, error)
	// ListChildren returns the direct children of every given parent,
	// ordered by created_at then id.
	ListChildren(ctx context.Context, parentIDs []int64) ([]models.Folder, error)
	ListRootFolders(ctx context.Context, ownerID int64) ([]models.FolderSummary, error)
	// CountContents returns the number of direct subfolders and quotes.
	CountContents(ctx context.Context, id int64) (subfolders int, quotes int, err error)
	RenameFolder(ctx context.Context, id int64, name string) (models.Folder, error)
	DeleteFolder(ctx context.Context, id int64) error
}

type QuoteRepository interface {
	CreateQuote(ctx context.Context, quote models.Quote) (models.Quote, error)
	GetQuote(ctx context.Context, id int64) (models.Quote, error)
	ListQuotes(ctx context.Context, filter models.QuoteFilter) ([]models.Quote, error)
	// ListQuotesInFolders returns the quotes filed in any of the given
	// folders, ordered by created_at then id.
	ListQuotesInFolders(ctx context.Context, folderIDs []int64) ([]models.Quote, error)
	// UpdateQuote overwrites every mutable column with the values in quote.
	UpdateQuote(ctx context.Context, quote models.Quote) (models.Quote, error)
	DeleteQuote(ctx context.Context, id int64) error
	// SetQuoteTags replaces the tag set of a quote.
	SetQuoteTags(ctx context.Context, quoteID int64, tagIDs []int64) error
}

type TagRepository interface {
	CreateTag(ctx context.Context, tag models.Tag) (models.Tag, error)
	GetTag(ctx context.Context, id int64) (models.Tag, error)
	GetTags(ctx context.Context, ids []int64) ([]models.Tag, error)
	// ListTags returns BUILTIN tags and the user's CUSTOM tags, or only one
	// kind when tagType is set.
	ListTags(ctx context.Context, userID int64, tagType models.TagType) ([]models.Tag, error)
	UpdateTag(ctx context.Context, tag models.Tag) (models.Tag, error)
	DeleteTag(ctx context.Context, id int64) error
}
