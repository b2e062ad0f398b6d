// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the quote keeper HTTP API on behalf of the
// command-line client.
//
// [ServerAdapter] hides the REST routes and the token handling. Non-2xx
// responses come back as errors wrapping the sentinel values in errors.go, so
// callers can use [errors.Is] (e.g. [ErrNotFound] for 404, [ErrConflict] for
// 409).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-quote-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter is the client-side view of the quote keeper API. Calls that
// need authentication carry the current access token; when the server
// answers 401 the adapter rotates the token pair once and retries.
type ServerAdapter interface {
	// SetTokens replaces the token pair used for authenticated calls.
	SetTokens(pair models.TokenPair)

	// Tokens returns the current token pair. It changes after Register,
	// Login, Refresh and Logout.
	Tokens() models.TokenPair

	Register(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error)
	Login(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error)

	// Refresh exchanges the stored refresh token for a new pair.
	Refresh(ctx context.Context) (models.TokenPair, error)

	// Logout revokes the stored refresh token and forgets both tokens.
	Logout(ctx context.Context) error

	Profile(ctx context.Context) (models.User, error)

	ListRootFolders(ctx context.Context) ([]models.FolderSummary, error)
	CreateRootFolder(ctx context.Context, name string) (models.Folder, error)
	CreateSubfolder(ctx context.Context, parentID int64, name string) (models.Folder, error)
	GetFolder(ctx context.Context, id int64) (models.Folder, error)
	GetSubtree(ctx context.Context, id int64) (*models.FolderTree, error)
	FindPathToRoot(ctx context.Context, id int64) ([]int64, error)
	RenameFolder(ctx context.Context, id int64, name string) (models.Folder, error)
	DeleteFolder(ctx context.Context, id int64) error

	ListQuotes(ctx context.Context, filter models.QuoteFilter) ([]models.Quote, error)
	CreateQuote(ctx context.Context, request models.CreateQuoteRequest) (models.Quote, error)
	DeleteQuote(ctx context.Context, id int64) error

	// ListTags returns built-in and custom tags; an empty tagType means both.
	ListTags(ctx context.Context, tagType models.TagType) ([]models.Tag, error)
	CreateTag(ctx context.Context, request models.CreateTagRequest) (models.Tag, error)

	Version(ctx context.Context) (models.VersionInfo, error)
}
