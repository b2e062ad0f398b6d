package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-quote-keeper/models"
)

func createUser(t *testing.T, s *Storages, email string) models.User {
	t.Helper()
	u, err := s.UserRepository.CreateUser(testContext(), models.User{Email: email, PasswordHash: "hash"})
	require.NoError(t, err)
	return u
}

func createFolder(t *testing.T, s *Storages, owner int64, parent *int64, name string) models.Folder {
	t.Helper()
	f, err := s.FolderRepository.CreateFolder(testContext(), models.Folder{Name: name, OwnerID: owner, ParentID: parent})
	require.NoError(t, err)
	return f
}

func TestSQLite_Users(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	u := createUser(t, s, "ann@example.com")
	assert.NotZero(t, u.UserID)
	assert.Equal(t, models.TierBasic, u.Tier)

	_, err := s.UserRepository.CreateUser(ctx, models.User{Email: "ann@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	byEmail, err := s.UserRepository.GetUserByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.UserID, byEmail.UserID)

	_, err = s.UserRepository.GetUserByID(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)

	tier := models.TierPro
	updated, err := s.UserRepository.UpdateUser(ctx, models.UserUpdate{UserID: u.UserID, Tier: &tier})
	require.NoError(t, err)
	assert.Equal(t, models.TierPro, updated.Tier)
	assert.Equal(t, "ann@example.com", updated.Email)

	_, err = s.UserRepository.UpdateUser(ctx, models.UserUpdate{UserID: 999, Tier: &tier})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSQLite_DeleteUserRemovesOwnedData(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	u := createUser(t, s, "del@example.com")
	other := createUser(t, s, "keep@example.com")

	root := createFolder(t, s, u.UserID, nil, "root")
	child := createFolder(t, s, u.UserID, &root.ID, "child")
	createFolder(t, s, u.UserID, &child.ID, "grandchild")
	_, err := s.QuoteRepository.CreateQuote(ctx, models.Quote{UserID: u.UserID, FolderID: &child.ID, Content: "{}", Width: 800, Height: 600})
	require.NoError(t, err)
	_, err = s.TagRepository.CreateTag(ctx, models.Tag{Name: "mine", Type: models.TagCustom, UserID: &u.UserID})
	require.NoError(t, err)
	require.NoError(t, s.RefreshTokenRepository.SaveRefreshToken(ctx, models.RefreshTokenRecord{
		UserID: u.UserID, TokenHash: "h1", ExpiresAt: time.Now().Add(time.Hour),
	}))
	keep := createFolder(t, s, other.UserID, nil, "other root")

	require.NoError(t, s.UserRepository.DeleteUser(ctx, u.UserID))

	_, err = s.UserRepository.GetUserByID(ctx, u.UserID)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = s.FolderRepository.GetFolder(ctx, root.ID)
	assert.ErrorIs(t, err, ErrFolderNotFound)
	_, err = s.RefreshTokenRepository.FindRefreshToken(ctx, "h1")
	assert.ErrorIs(t, err, ErrRefreshTokenNotFound)
	_, err = s.FolderRepository.GetFolder(ctx, keep.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, s.UserRepository.DeleteUser(ctx, u.UserID), ErrUserNotFound)
}

func TestSQLite_FolderHierarchy(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()
	u := createUser(t, s, "f@example.com")

	r1 := createFolder(t, s, u.UserID, nil, "first")
	r2 := createFolder(t, s, u.UserID, nil, "second")
	a := createFolder(t, s, u.UserID, &r1.ID, "a")
	b := createFolder(t, s, u.UserID, &r1.ID, "b")
	c := createFolder(t, s, u.UserID, &r2.ID, "c")

	_, err := s.FolderRepository.CreateFolder(ctx, models.Folder{Name: "dangling", OwnerID: u.UserID, ParentID: int64Ptr(9999)})
	assert.ErrorIs(t, err, ErrForeignKey)

	children, err := s.FolderRepository.ListChildren(ctx, []int64{r1.ID, r2.ID})
	require.NoError(t, err)
	ids := make([]int64, 0, len(children))
	for _, f := range children {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []int64{a.ID, b.ID, c.ID}, ids)

	_, err = s.QuoteRepository.CreateQuote(ctx, models.Quote{UserID: u.UserID, FolderID: &r1.ID, Content: "{}", Width: 800, Height: 600})
	require.NoError(t, err)

	roots, err := s.FolderRepository.ListRootFolders(ctx, u.UserID)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, r1.ID, roots[0].ID)
	assert.Equal(t, 2, roots[0].SubfolderCount)
	assert.Equal(t, 1, roots[0].QuoteCount)
	assert.Equal(t, 1, roots[1].SubfolderCount)
	assert.Equal(t, 0, roots[1].QuoteCount)

	subfolders, quotes, err := s.FolderRepository.CountContents(ctx, r1.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, subfolders)
	assert.Equal(t, 1, quotes)

	err = s.FolderRepository.DeleteFolder(ctx, r2.ID)
	assert.ErrorIs(t, err, ErrForeignKey, "non-empty folder is kept by the foreign key")

	require.NoError(t, s.FolderRepository.DeleteFolder(ctx, c.ID))
	require.NoError(t, s.FolderRepository.DeleteFolder(ctx, r2.ID))
	assert.ErrorIs(t, s.FolderRepository.DeleteFolder(ctx, r2.ID), ErrFolderNotFound)

	renamed, err := s.FolderRepository.RenameFolder(ctx, a.ID, "alpha")
	require.NoError(t, err)
	assert.Equal(t, "alpha", renamed.Name)
	require.NotNil(t, renamed.ParentID)
	assert.Equal(t, r1.ID, *renamed.ParentID)
}

func TestSQLite_QuotesAndTags(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()
	u := createUser(t, s, "q@example.com")
	folder := createFolder(t, s, u.UserID, nil, "box")

	builtin, err := s.TagRepository.ListTags(ctx, u.UserID, models.TagBuiltin)
	require.NoError(t, err)
	require.NotEmpty(t, builtin)

	color := "#112233"
	custom, err := s.TagRepository.CreateTag(ctx, models.Tag{Name: "mine", Color: &color, Type: models.TagCustom, UserID: &u.UserID})
	require.NoError(t, err)

	_, err = s.TagRepository.CreateTag(ctx, models.Tag{Name: "mine", Type: models.TagCustom, UserID: &u.UserID})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	all, err := s.TagRepository.ListTags(ctx, u.UserID, "")
	require.NoError(t, err)
	assert.Len(t, all, len(builtin)+1)

	q1, err := s.QuoteRepository.CreateQuote(ctx, models.Quote{UserID: u.UserID, FolderID: &folder.ID, Content: `{"text":"Stay hungry"}`, Width: 800, Height: 600})
	require.NoError(t, err)
	q2, err := s.QuoteRepository.CreateQuote(ctx, models.Quote{UserID: u.UserID, Content: `{"text":"Stay foolish"}`, Width: 400, Height: 400})
	require.NoError(t, err)

	err = s.DB.InTx(ctx, func(ctx context.Context) error {
		return s.QuoteRepository.SetQuoteTags(ctx, q1.ID, []int64{custom.ID, builtin[0].ID, custom.ID})
	})
	require.NoError(t, err)

	got, err := s.QuoteRepository.GetQuote(ctx, q1.ID)
	require.NoError(t, err)
	assert.Len(t, got.Tags, 2)

	list, err := s.QuoteRepository.ListQuotes(ctx, models.QuoteFilter{UserID: u.UserID})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, q2.ID, list[0].ID, "newest first")

	byFolder, err := s.QuoteRepository.ListQuotes(ctx, models.QuoteFilter{UserID: u.UserID, FolderID: &folder.ID})
	require.NoError(t, err)
	require.Len(t, byFolder, 1)
	assert.Equal(t, q1.ID, byFolder[0].ID)

	byTag, err := s.QuoteRepository.ListQuotes(ctx, models.QuoteFilter{UserID: u.UserID, TagID: &custom.ID})
	require.NoError(t, err)
	require.Len(t, byTag, 1)

	bySearch, err := s.QuoteRepository.ListQuotes(ctx, models.QuoteFilter{UserID: u.UserID, Search: "foolish"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, q2.ID, bySearch[0].ID)

	paged, err := s.QuoteRepository.ListQuotes(ctx, models.QuoteFilter{UserID: u.UserID, Offset: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, q1.ID, paged[0].ID)

	inFolders, err := s.QuoteRepository.ListQuotesInFolders(ctx, []int64{folder.ID})
	require.NoError(t, err)
	require.Len(t, inFolders, 1)

	q2.FolderID = &folder.ID
	q2.Width = 1000
	moved, err := s.QuoteRepository.UpdateQuote(ctx, q2)
	require.NoError(t, err)
	assert.Equal(t, folder.ID, *moved.FolderID)
	assert.Equal(t, 1000, moved.Width)

	assert.ErrorIs(t, s.FolderRepository.DeleteFolder(ctx, folder.ID), ErrForeignKey)

	require.NoError(t, s.TagRepository.DeleteTag(ctx, custom.ID))
	got, err = s.QuoteRepository.GetQuote(ctx, q1.ID)
	require.NoError(t, err)
	assert.Len(t, got.Tags, 1)

	require.NoError(t, s.QuoteRepository.DeleteQuote(ctx, q1.ID))
	assert.ErrorIs(t, s.QuoteRepository.DeleteQuote(ctx, q1.ID), ErrQuoteNotFound)
}

func TestSQLite_RefreshTokens(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()
	u := createUser(t, s, "r@example.com")
	now := time.Now().UTC()

	require.NoError(t, s.RefreshTokenRepository.SaveRefreshToken(ctx, models.RefreshTokenRecord{UserID: u.UserID, TokenHash: "live", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, s.RefreshTokenRepository.SaveRefreshToken(ctx, models.RefreshTokenRecord{UserID: u.UserID, TokenHash: "dead", ExpiresAt: now.Add(-time.Hour)}))

	assert.ErrorIs(t, s.RefreshTokenRepository.SaveRefreshToken(ctx, models.RefreshTokenRecord{UserID: u.UserID, TokenHash: "live", ExpiresAt: now}), ErrAlreadyExists)

	rec, err := s.RefreshTokenRepository.FindRefreshToken(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, u.UserID, rec.UserID)
	assert.False(t, rec.Expired(now))

	n, err := s.RefreshTokenRepository.DeleteExpiredRefreshTokens(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	deleted, err := s.RefreshTokenRepository.DeleteRefreshToken(ctx, "live")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.RefreshTokenRepository.DeleteRefreshToken(ctx, "live")
	require.NoError(t, err)
	assert.False(t, deleted)
}
