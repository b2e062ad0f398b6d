package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-quote-keeper/internal/logger"
	"github.com/MKhiriev/go-quote-keeper/internal/mock"
	"github.com/MKhiriev/go-quote-keeper/internal/store"
	"github.com/MKhiriev/go-quote-keeper/models"
)

type folderMocks struct {
	transactor *mock.MockTransactor
	folders    *mock.MockFolderRepository
	quotes     *mock.MockQuoteRepository
}

func newTestFolderSvc(t *testing.T, ctrl *gomock.Controller) (*folderService, folderMocks) {
	t.Helper()
	m := folderMocks{
		transactor: mock.NewMockTransactor(ctrl),
		folders:    mock.NewMockFolderRepository(ctrl),
		quotes:     mock.NewMockQuoteRepository(ctrl),
	}

	storages := &store.Storages{
		Transactor:       m.transactor,
		FolderRepository: m.folders,
		QuoteRepository:  m.quotes,
	}
	svc := NewFolderService(storages, time.Second, logger.Nop()).(*folderService)
	return svc, m
}

// passThroughTx makes the mocked transactor run fn directly.
func passThroughTx(m *mock.MockTransactor) *gomock.Call {
	return m.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
}

func ptr[T any](v T) *T { return &v }

// ── CreateRootFolder ─────────────────────────────────────────────────────────

func TestFolderService_CreateRootFolder_TrimsName(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestFolderSvc(t, ctrl)
	ctx := context.Background()

	m.folders.EXPECT().
		CreateFolder(ctx, models.Folder{Name: "Stoics", OwnerID: 7}).
		Return(models.Folder{ID: 1, Name: "Stoics", OwnerID: 7}, nil)

	folder, err := svc.CreateRootFolder(ctx, 7, "  Stoics \t")
	require.NoError(t, err)
	assert.Equal(t, int64(1), folder.ID)
	assert.True(t, folder.IsRoot())
}

func TestFolderService_CreateRootFolder_InvalidName(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestFolderSvc(t, ctrl)

	for _, name := range []string{"", "   ", strings.Repeat("я", MaxFolderNameLength+1)} {
		_, err := svc.CreateRootFolder(context.Background(), 7, name)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

// ── CreateSubfolder ──────────────────────────────────────────────────────────

func TestFolderService_CreateSubfolder_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestFolderSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		passThroughTx(m.transactor),
		m.folders.EXPECT().GetFolderForUpdate(ctx, int64(10)).Return(models.Folder{ID: 10, OwnerID: 7}, nil),
		m.folders.EXPECT().
			CreateFolder(ctx, models.Folder{Name: "child", OwnerID: 7, ParentID: ptr(int64(10))}).
			Return(models.Folder{ID: 11, Name: "child", OwnerID: 7, ParentID: ptr(int64(10))}, nil),
	)

	folder, err := svc.CreateSubfolder(ctx, 7, 10, "child")
	require.NoError(t, err)
	assert.Equal(t, int64(11), folder.ID)
	require.NotNil(t, folder.ParentID)
	assert.Equal(t, int64(10), *folder.ParentID)
}

func TestFolderService_CreateSubfolder_ForeignParentIsForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestFolderSvc(t, ctrl)
	ctx := context.Background()

	passThroughTx(m.transactor)
	m.folders.EXPECT().GetFolderForUpdate(ctx, int64(10)).Return(models.Folder{ID: 10, OwnerID: 1}, nil)

	_, err := svc.CreateSubfolder(ctx, 2, 10, "intruder")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestFolderService_CreateSubfolder_MissingParent(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestFolderSvc(t, ctrl)
	ctx := context.Background()

	passThroughTx(m.transactor)
	m.folders.EXPECT().GetFolderForUpdate(ctx, int64(10)).Return(models.Folder{}, store.ErrFolderNotFound)

	_, err := svc.CreateSubfolder(ctx, 2, 10, "x")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, store.ErrFolderNotFound)
}

// ── GetSubtree ───────────────────────────────────────────────────────────────

func TestFolderService_GetSubtree_BuildsLevels(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestFolderSvc(t, ctrl)

	root := models.Folder{ID: 1, OwnerID: 7, Name: "R"}
	c1 := models.Folder{ID: 2, OwnerID: 7, Name: "C1", ParentID: ptr(int64(1))}
	c2 := models.Folder{ID: 3, OwnerID: 7, Name: "C2", ParentID: ptr(int64(1))}
	g1 := models.Folder{ID: 4, OwnerID: 7, Name: "G1", ParentID: ptr(int64(2))}
	q := models.Quote{ID: 100, UserID: 7, FolderID: ptr(int64(4))}

	m.folders.EXPECT().GetFolder(gomock.Any(), int64(1)).Return(root, nil)
	gomock.InOrder(
		m.quotes.EXPECT().ListQuotesInFolders(gomock.Any(), []int64{1}).Return(nil, nil),
		m.folders.EXPECT().ListChildren(gomock.Any(), []int64{1}).Return([]models.Folder{c1, c2}, nil),
		m.quotes.EXPECT().ListQuotesInFolders(gomock.Any(), []int64{2, 3}).Return(nil, nil),
		m.folders.EXPECT().ListChildren(gomock.Any(), []int64{2, 3}).Return([]models.Folder{g1}, nil),
		m.quotes.EXPECT().ListQuotesInFolders(gomock.Any(), []int64{4}).Return([]models.Quote{q}, nil),
		m.folders.EXPECT().ListChildren(gomock.Any(), []int64{4}).Return(nil, nil),
	)

	tree, err := svc.GetSubtree(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, tree.SubFolders, 2)
	assert.Equal(t, "C1", tree.SubFolders[0].Name)
	assert.Equal(t, "C2", tree.SubFolders[1].Name)
	require.Len(t, tree.SubFolders[0].SubFolders, 1)
	grandchild := tree.SubFolders[0].SubFolders[0]
	assert.Equal(t, int64(4), grandchild.ID)
	require.Len(t, grandchild.Quotes, 1)
	assert.Equal(t, int64(100), grandchild.Quotes[0].ID)
	assert.Empty(t, tree.SubFolders[1].SubFolders)
	assert.NotNil(t, tree.SubFolders[1].Quotes)
	assert.Equal(t, 4, tree.Size())
}

func TestFolderService_GetSubtree_CycleIsDataIntegrityError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestFolderSvc(t, ctrl)

	root := models.Folder{ID: 1, OwnerID: 7}
	child := models.Folder{ID: 2, OwnerID: 7, ParentID: ptr(int64(1))}
	// corrupted row: the root shows up again as a child of its own child
	loop := models.Folder{ID: 1, OwnerID: 7, ParentID: ptr(int64(2))}

	m.folders.EXPECT().GetFolder(gomock.Any(), int64(1)).Return(root, nil)
	m.quotes.EXPECT().ListQuotesInFolders(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	m.folders.EXPECT().ListChildren(gomock.Any(), []int64{1}).Return([]models.Folder{child}, nil)
	m.folders.EXPECT().ListChildren(gomock.Any(), []int64{2}).Return([]models.Folder{loop}, nil)

	_, err := svc.GetSubtree(context.Background(), 1)
	assert.ErrorIs(t, err, ErrDataIntegrity)
	assert.ErrorIs(t, err, ErrCycleDetected)
}

func TestFolderService_GetSubtree_OwnerMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestFolderSvc(t, ctrl)

	m.folders.EXPECT().GetFolder(gomock.Any(), int64(1)).Return(models.Folder{ID: 1, OwnerID: 7}, nil)
	m.quotes.EXPECT().ListQuotesInFolders(gomock.Any(), gomock.Any()).Return(nil, nil)
	m.folders.EXPECT().ListChildren(gomock.Any(), gomock.Any()).
		Return([]models.Folder{{ID: 2, OwnerID: 8, ParentID: ptr(int64(1))}}, nil)

	_, err := svc.GetSubtree(context.Background(), 1)
	assert.ErrorIs(t, err, ErrDataIntegrity)
	assert.ErrorIs(t, err, ErrOwnerMismatch)
}

func TestFolderService_GetSubtree_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestFolderSvc(t, ctrl)

	m.folders.EXPECT().GetFolder(gomock.Any(), int64(1)).Return(models.Folder{}, store.ErrFolderNotFound)

	_, err := svc.GetSubtree(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFolderService_GetSubtree_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestFolderSvc(t, ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	m.folders.EXPECT().GetFolder(gomock.Any(), int64(1)).DoAndReturn(
		func(context.Context, int64) (models.Folder, error) {
			cancel()
			return models.Folder{ID: 1, OwnerID: 7}, nil
		},
	)

	_, err := svc.GetSubtree(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, kindOf(err))
}

// ── FindPathToRoot ───────────────────────────────────────────────────────────

func TestFolderService_FindPathToRoot_RootFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestFolderSvc(t, ctrl)
	ctx := context.Background()

	m.folders.EXPECT().GetFolder(ctx, int64(3)).Return(models.Folder{ID: 3, OwnerID: 7, ParentID: ptr(int64(2))}, nil)
	m.folders.EXPECT().GetFolder(ctx, int64(2)).Return(models.Folder{ID: 2, OwnerID: 7, ParentID: ptr(int64(1))}, nil)
	m.folders.EXPECT().GetFolder(ctx, int64(1)).Return(models.Folder{ID: 1, OwnerID: 7}, nil)

	path, err := svc.FindPathToRoot(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, path)
}

func TestFolderService_FindPathToRoot_Root(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestFolderSvc(t, ctrl)
	ctx := context.Background()

	m.folders.EXPECT().GetFolder(ctx, int64(1)).Return(models.Folder{ID: 1, OwnerID: 7}, nil)

	path, err := svc.FindPathToRoot(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, path)
}

func TestFolderService_FindPathToRoot_Cycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestFolderSvc(t, ctrl)
	ctx := context.Background()

	m.folders.EXPECT().GetFolder(ctx, int64(1)).Return(models.Folder{ID: 1, OwnerID: 7, ParentID: ptr(int64(2))}, nil)
	m.folders.EXPECT().GetFolder(ctx, int64(2)).Return(models.Folder{ID: 2, OwnerID: 7, ParentID: ptr(int64(1))}, nil)

	_, err := svc.FindPathToRoot(ctx, 1)
	assert.ErrorIs(t, err, ErrDataIntegrity)
	assert.ErrorIs(t, err, ErrCycleDetected)
}

func TestFolderService_FindPathToRoot_SelfParent(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestFolderSvc(t, ctrl)
	ctx := context.Background()

	m.folders.EXPECT().GetFolder(ctx, int64(5)).Return(models.Folder{ID: 5, OwnerID: 7, ParentID: ptr(int64(5))}, nil)

	_, err := svc.FindPathToRoot(ctx, 5)
	assert.ErrorIs(t, err, ErrCycleDetected)
}

func TestFolderService_FindPathToRoot_DanglingParent(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestFolderSvc(t, ctrl)
	ctx := context.Background()

	m.folders.EXPECT().GetFolder(ctx, int64(2)).Return(models.Folder{ID: 2, OwnerID: 7, ParentID: ptr(int64(1))}, nil)
	m.folders.EXPECT().GetFolder(ctx, int64(1)).Return(models.Folder{}, store.ErrFolderNotFound)

	_, err := svc.FindPathToRoot(ctx, 2)
	assert.ErrorIs(t, err, ErrDataIntegrity)
	assert.ErrorIs(t, err, ErrDanglingParent)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFolderService_FindPathToRoot_Missing(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestFolderSvc(t, ctrl)
	ctx := context.Background()

	m.folders.EXPECT().GetFolder(ctx, int64(9)).Return(models.Folder{}, store.ErrFolderNotFound)

	_, err := svc.FindPathToRoot(ctx, 9)
	assert.ErrorIs(t, err, ErrNotFound)
}

// ── RenameFolder ─────────────────────────────────────────────────────────────

func TestFolderService_RenameFolder(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, m := newTestFolderSvc(t, ctrl)
		ctx := context.Background()

		passThroughTx(m.transactor)
		m.folders.EXPECT().GetFolderForUpdate(ctx, int64(3)).Return(models.Folder{ID: 3, OwnerID: 7, Name: "old"}, nil)
		m.folders.EXPECT().RenameFolder(ctx, int64(3), "new").Return(models.Folder{ID: 3, OwnerID: 7, Name: "new"}, nil)

		folder, err := svc.RenameFolder(ctx, 7, 3, " new ")
		require.NoError(t, err)
		assert.Equal(t, "new", folder.Name)
	})

	t.Run("forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, m := newTestFolderSvc(t, ctrl)
		ctx := context.Background()

		passThroughTx(m.transactor)
		m.folders.EXPECT().GetFolderForUpdate(ctx, int64(3)).Return(models.Folder{ID: 3, OwnerID: 1}, nil)

		_, err := svc.RenameFolder(ctx, 7, 3, "new")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("empty name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, _ := newTestFolderSvc(t, ctrl)

		_, err := svc.RenameFolder(context.Background(), 7, 3, " ")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

// ── DeleteFolder ─────────────────────────────────────────────────────────────

func TestFolderService_DeleteFolder(t *testing.T) {
	tests := []struct {
		name       string
		owner      int64
		subfolders int
		quotes     int
		deleteErr  error
		wantKind   error
		wantCause  error
	}{
		{name: "empty folder", owner: 7},
		{name: "has subfolders", owner: 7, subfolders: 1, wantKind: ErrConflict, wantCause: ErrFolderNotEmpty},
		{name: "has quotes", owner: 7, quotes: 2, wantKind: ErrConflict, wantCause: ErrFolderNotEmpty},
		{name: "foreign key race", owner: 7, deleteErr: store.ErrForeignKey, wantKind: ErrConflict, wantCause: ErrFolderNotEmpty},
		{name: "not owner", owner: 8, wantKind: ErrForbidden, wantCause: ErrNotOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, m := newTestFolderSvc(t, ctrl)
			ctx := context.Background()

			passThroughTx(m.transactor)
			m.folders.EXPECT().GetFolderForUpdate(ctx, int64(3)).Return(models.Folder{ID: 3, OwnerID: 7}, nil)
			if tt.owner == 7 {
				m.folders.EXPECT().CountContents(ctx, int64(3)).Return(tt.subfolders, tt.quotes, nil)
			}
			if tt.owner == 7 && tt.subfolders == 0 && tt.quotes == 0 {
				m.folders.EXPECT().DeleteFolder(ctx, int64(3)).Return(tt.deleteErr)
			}

			err := svc.DeleteFolder(ctx, tt.owner, 3)
			if tt.wantKind == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantKind)
			assert.ErrorIs(t, err, tt.wantCause)
		})
	}
}

func TestFolderService_DeleteFolder_TransactionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestFolderSvc(t, ctrl)

	dbErr := errors.New("connection reset")
	m.transactor.EXPECT().InTx(gomock.Any(), gomock.Any()).Return(dbErr)

	err := svc.DeleteFolder(context.Background(), 7, 3)
	assert.ErrorIs(t, err, dbErr)
	assert.Nil(t, kindOf(err))
}

// ── ListRootFolders ──────────────────────────────────────────────────────────

func TestFolderService_ListRootFolders(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestFolderSvc(t, ctrl)
	ctx := context.Background()

	want := []models.FolderSummary{{Folder: models.Folder{ID: 1, OwnerID: 7}, SubfolderCount: 2, QuoteCount: 1}}
	m.folders.EXPECT().ListRootFolders(ctx, int64(7)).Return(want, nil)

	got, err := svc.ListRootFolders(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
