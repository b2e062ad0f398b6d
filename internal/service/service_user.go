package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-quote-keeper/internal/logger"
	"github.com/MKhiriev/go-quote-keeper/internal/store"
	"github.com/MKhiriev/go-quote-keeper/internal/utils"
	"github.com/MKhiriev/go-quote-keeper/internal/validators"
	"github.com/MKhiriev/go-quote-keeper/models"
)

type userService struct {
	userRepository store.UserRepository
	validator      validators.Validator

	logger *logger.Logger
}

func NewUserService(storages *store.Storages, validator validators.Validator, logger *logger.Logger) UserService {
	return &userService{
		userRepository: storages.UserRepository,
		validator:      validator,
		logger:         logger,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (models.User, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, storeError(err)
	}
	return user, nil
}

// UpdateProfile changes the email, the password or both. A password change
// requires the current password.
func (s *userService) UpdateProfile(ctx context.Context, userID int64, request models.ProfileUpdateRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if request.Email != nil {
		email := normalizeEmail(*request.Email)
		request.Email = &email
	}
	if err := s.validator.Validate(ctx, request); err != nil {
		return models.User{}, validationError(err)
	}

	update := models.UserUpdate{UserID: userID, Email: request.Email}

	if request.NewPassword != nil {
		user, err := s.userRepository.GetUserByID(ctx, userID)
		if err != nil {
			return models.User{}, storeError(err)
		}
		if !utils.CheckPassword(user.PasswordHash, request.CurrentPassword) {
			log.Info().Int64("user_id", userID).Msg("password change with wrong current password")
			return models.User{}, withKind(ErrForbidden, ErrWrongPassword)
		}

		hash, err := utils.HashPassword(*request.NewPassword)
		if err != nil {
			return models.User{}, err
		}
		update.PasswordHash = &hash
	}

	user, err := s.userRepository.UpdateUser(ctx, update)
	if errors.Is(err, store.ErrAlreadyExists) {
		return models.User{}, withKind(ErrConflict, ErrEmailTaken)
	}
	if err != nil {
		log.Err(err).Str("func", "*userService.UpdateProfile").Int64("user_id", userID).Msg("error updating profile")
		return models.User{}, storeError(err)
	}

	return user, nil
}

func (s *userService) UpdateTier(ctx context.Context, userID int64, tier models.Tier) (models.User, error) {
	if err := s.validator.Validate(ctx, tier); err != nil {
		return models.User{}, validationError(err)
	}

	user, err := s.userRepository.UpdateUser(ctx, models.UserUpdate{UserID: userID, Tier: &tier})
	if err != nil {
		return models.User{}, storeError(err)
	}

	logger.FromContext(ctx).Info().Int64("user_id", userID).Str("tier", string(tier)).Msg("tier changed")
	return user, nil
}

func (s *userService) DeleteAccount(ctx context.Context, userID int64, password string) error {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return storeError(err)
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return withKind(ErrForbidden, ErrWrongPassword)
	}

	if err = s.userRepository.DeleteUser(ctx, userID); err != nil {
		log.Err(err).Str("func", "*userService.DeleteAccount").Int64("user_id", userID).Msg("error deleting account")
		return storeError(err)
	}

	log.Info().Int64("user_id", userID).Msg("account deleted")
	return nil
}
