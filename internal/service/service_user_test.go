package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-quote-keeper/internal/logger"
	"github.com/MKhiriev/go-quote-keeper/internal/mock"
	"github.com/MKhiriev/go-quote-keeper/internal/store"
	"github.com/MKhiriev/go-quote-keeper/internal/utils"
	"github.com/MKhiriev/go-quote-keeper/models"
)

type userMocks struct {
	users     *mock.MockUserRepository
	validator *mock.MockValidator
}

func newTestUserSvc(t *testing.T, ctrl *gomock.Controller) (*userService, userMocks) {
	t.Helper()
	m := userMocks{
		users:     mock.NewMockUserRepository(ctrl),
		validator: mock.NewMockValidator(ctrl),
	}
	return &userService{userRepository: m.users, validator: m.validator, logger: logger.Nop()}, m
}

func storedUser(t *testing.T) models.User {
	t.Helper()
	hash, err := utils.HashPassword(testPassword)
	require.NoError(t, err)
	return models.User{UserID: 1, Email: "ann@example.com", PasswordHash: hash, Tier: models.TierBasic}
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	m.users.EXPECT().GetUserByID(ctx, int64(9)).Return(models.User{}, store.ErrNotFound)

	_, err := svc.GetProfile(ctx, 9)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_UpdateProfile_NormalizesEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	m.validator.EXPECT().Validate(ctx, gomock.Any()).Return(nil)
	m.users.EXPECT().UpdateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, update models.UserUpdate) (models.User, error) {
			require.NotNil(t, update.Email)
			assert.Equal(t, "ann@example.com", *update.Email)
			assert.Nil(t, update.PasswordHash)
			return models.User{UserID: 1, Email: *update.Email}, nil
		},
	)

	user, err := svc.UpdateProfile(ctx, 1, models.ProfileUpdateRequest{Email: ptr("  Ann@Example.com ")})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", user.Email)
}

func TestUserService_UpdateProfile_WrongCurrentPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	m.validator.EXPECT().Validate(ctx, gomock.Any()).Return(nil)
	m.users.EXPECT().GetUserByID(ctx, int64(1)).Return(storedUser(t), nil)

	_, err := svc.UpdateProfile(ctx, 1, models.ProfileUpdateRequest{
		CurrentPassword: "not-the-password",
		NewPassword:     ptr("N3w!password"),
	})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestUserService_UpdateProfile_EmailTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	m.validator.EXPECT().Validate(ctx, gomock.Any()).Return(nil)
	m.users.EXPECT().UpdateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrAlreadyExists)

	_, err := svc.UpdateProfile(ctx, 1, models.ProfileUpdateRequest{Email: ptr("bob@example.com")})
	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserService_UpdateTier(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	m.validator.EXPECT().Validate(ctx, models.TierPro).Return(nil)
	m.users.EXPECT().UpdateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, update models.UserUpdate) (models.User, error) {
			require.NotNil(t, update.Tier)
			return models.User{UserID: update.UserID, Tier: *update.Tier}, nil
		},
	)

	user, err := svc.UpdateTier(ctx, 1, models.TierPro)
	require.NoError(t, err)
	assert.Equal(t, models.TierPro, user.Tier)
}

func TestUserService_DeleteAccount(t *testing.T) {
	t.Run("wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, m := newTestUserSvc(t, ctrl)
		ctx := context.Background()

		m.users.EXPECT().GetUserByID(ctx, int64(1)).Return(storedUser(t), nil)

		err := svc.DeleteAccount(ctx, 1, "guess")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("deleted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, m := newTestUserSvc(t, ctrl)
		ctx := context.Background()

		m.users.EXPECT().GetUserByID(ctx, int64(1)).Return(storedUser(t), nil)
		m.users.EXPECT().DeleteUser(ctx, int64(1)).Return(nil)

		assert.NoError(t, svc.DeleteAccount(ctx, 1, testPassword))
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, m := newTestUserSvc(t, ctrl)
		ctx := context.Background()

		m.users.EXPECT().GetUserByID(ctx, int64(1)).Return(storedUser(t), nil)
		m.users.EXPECT().DeleteUser(ctx, int64(1)).Return(errors.New("disk full"))

		assert.Error(t, svc.DeleteAccount(ctx, 1, testPassword))
	})
}
