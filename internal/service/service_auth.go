package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-quote-keeper/internal/config"
	"github.com/MKhiriev/go-quote-keeper/internal/logger"
	"github.com/MKhiriev/go-quote-keeper/internal/store"
	"github.com/MKhiriev/go-quote-keeper/internal/utils"
	"github.com/MKhiriev/go-quote-keeper/internal/validators"
	"github.com/MKhiriev/go-quote-keeper/models"
)

// TokenTypeBearer is the token_type reported with every issued pair.
const TokenTypeBearer = "Bearer"

// authService is the concrete implementation of AuthService.
// Passwords are stored as bcrypt hashes. Access tokens are stateless JWTs;
// refresh tokens are JWTs signed with their own key whose HMAC digest is
// kept in refresh_tokens so they can be rotated and revoked.
type authService struct {
	transactor             store.Transactor
	userRepository         store.UserRepository
	refreshTokenRepository store.RefreshTokenRepository
	validator              validators.Validator

	// refreshHasher digests refresh tokens before they are stored or looked
	// up.
	refreshHasher *utils.Hasher

	tokenSignKey         string
	refreshSignKey       string
	tokenIssuer          string
	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration

	now func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs an AuthService over the user and refresh token
// repositories, with token parameters taken from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(storages *store.Storages, validator validators.Validator, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		transactor:             storages.Transactor,
		userRepository:         storages.UserRepository,
		refreshTokenRepository: storages.RefreshTokenRepository,
		validator:              validator,
		refreshHasher:          utils.NewHasher(cfg.RefreshHashKey),
		tokenSignKey:           cfg.TokenSignKey,
		refreshSignKey:         cfg.RefreshSignKey,
		tokenIssuer:            cfg.TokenIssuer,
		accessTokenDuration:    cfg.AccessTokenDuration,
		refreshTokenDuration:   cfg.RefreshTokenDuration,
		now:                    time.Now,
		logger:                 logger,
	}
}

// Register creates a BASIC account and signs the new user in.
//
// Returns ErrValidation for a malformed email or a weak password and
// ErrConflict when the email is taken.
func (a *authService) Register(ctx context.Context, credentials models.Credentials) (models.User, models.TokenPair, error) {
	log := logger.FromContext(ctx)

	credentials.Email = normalizeEmail(credentials.Email)
	if err := a.validator.Validate(ctx, credentials, validators.FieldEmail, validators.FieldPassword); err != nil {
		return models.User{}, models.TokenPair{}, validationError(err)
	}

	passwordHash, err := utils.HashPassword(credentials.Password)
	if err != nil {
		return models.User{}, models.TokenPair{}, err
	}

	var (
		user models.User
		pair models.TokenPair
	)
	err = a.transactor.InTx(ctx, func(ctx context.Context) error {
		user, err = a.userRepository.CreateUser(ctx, models.User{
			Email:        credentials.Email,
			PasswordHash: passwordHash,
			Tier:         models.TierBasic,
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			return withKind(ErrConflict, ErrEmailTaken)
		}
		if err != nil {
			return storeError(err)
		}

		pair, err = a.issueTokenPair(ctx, user)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("user registration ended with error")
		return models.User{}, models.TokenPair{}, err
	}

	log.Info().Int64("user_id", user.UserID).Msg("user registered")
	return user, pair, nil
}

// Login checks the credentials and issues a token pair. An unknown email and
// a wrong password are indistinguishable to the caller.
func (a *authService) Login(ctx context.Context, credentials models.Credentials) (models.User, models.TokenPair, error) {
	log := logger.FromContext(ctx)

	credentials.Email = normalizeEmail(credentials.Email)
	if err := a.validator.Validate(ctx, credentials, validators.FieldEmail, validators.FieldPasswordPresent); err != nil {
		return models.User{}, models.TokenPair{}, validationError(err)
	}

	user, err := a.userRepository.GetUserByEmail(ctx, credentials.Email)
	if errors.Is(err, store.ErrNotFound) {
		log.Info().Msg("login attempt for unknown email")
		return models.User{}, models.TokenPair{}, withKind(ErrUnauthorized, ErrInvalidCredentials)
	}
	if err != nil {
		return models.User{}, models.TokenPair{}, storeError(err)
	}

	if !utils.CheckPassword(user.PasswordHash, credentials.Password) {
		log.Info().Int64("user_id", user.UserID).Msg("wrong password")
		return models.User{}, models.TokenPair{}, withKind(ErrUnauthorized, ErrInvalidCredentials)
	}

	pair, err := a.issueTokenPair(ctx, user)
	if err != nil {
		return models.User{}, models.TokenPair{}, err
	}

	return user, pair, nil
}

// Refresh validates the presented refresh token, revokes it and issues a new
// pair in one transaction. A token that was already rotated, revoked or has
// expired yields ErrUnauthorized.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(refreshToken, a.refreshSignKey, a.tokenIssuer, models.RefreshToken)
	if err != nil {
		log.Info().Err(err).Msg("refresh token rejected")
		return models.TokenPair{}, withKind(ErrUnauthorized, ErrTokenInvalid)
	}

	tokenHash := a.refreshHasher.HashString(refreshToken)

	var pair models.TokenPair
	err = a.transactor.InTx(ctx, func(ctx context.Context) error {
		record, err := a.refreshTokenRepository.FindRefreshToken(ctx, tokenHash)
		if errors.Is(err, store.ErrNotFound) {
			log.Warn().Int64("user_id", token.UserID).Msg("refresh token is unknown or already used")
			return withKind(ErrUnauthorized, ErrTokenInvalid)
		}
		if err != nil {
			return storeError(err)
		}
		if record.UserID != token.UserID || record.Expired(a.now()) {
			return withKind(ErrUnauthorized, ErrTokenInvalid)
		}

		deleted, err := a.refreshTokenRepository.DeleteRefreshToken(ctx, tokenHash)
		if err != nil {
			return storeError(err)
		}
		if !deleted {
			return withKind(ErrUnauthorized, ErrTokenInvalid)
		}

		user, err := a.userRepository.GetUserByID(ctx, record.UserID)
		if errors.Is(err, store.ErrNotFound) {
			return withKind(ErrUnauthorized, ErrTokenInvalid)
		}
		if err != nil {
			return storeError(err)
		}

		pair, err = a.issueTokenPair(ctx, user)
		return err
	})
	if err != nil {
		return models.TokenPair{}, err
	}

	return pair, nil
}

func (a *authService) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return nil
	}

	if _, err := a.refreshTokenRepository.DeleteRefreshToken(ctx, a.refreshHasher.HashString(refreshToken)); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Logout").Msg("error revoking refresh token")
		return storeError(err)
	}
	return nil
}

// ParseAccessToken verifies signature, issuer, expiry and token type. Any
// failure is reported as ErrUnauthorized so callers need not inspect JWT
// errors.
func (a *authService) ParseAccessToken(ctx context.Context, accessToken string) (int64, error) {
	token, err := utils.ValidateAndParseJWTToken(accessToken, a.tokenSignKey, a.tokenIssuer, models.AccessToken)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("access token rejected")
		return 0, withKind(ErrUnauthorized, ErrTokenInvalid)
	}

	return token.UserID, nil
}

// issueTokenPair signs an access and a refresh token for user and stores the
// digest of the refresh token.
func (a *authService) issueTokenPair(ctx context.Context, user models.User) (models.TokenPair, error) {
	now := a.now()

	access, err := utils.GenerateJWTToken(utils.TokenParams{
		Issuer:   a.tokenIssuer,
		UserID:   user.UserID,
		Tier:     user.Tier,
		Type:     models.AccessToken,
		Duration: a.accessTokenDuration,
		SignKey:  a.tokenSignKey,
		Now:      now,
	})
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refresh, err := utils.GenerateJWTToken(utils.TokenParams{
		Issuer:   a.tokenIssuer,
		UserID:   user.UserID,
		Type:     models.RefreshToken,
		Duration: a.refreshTokenDuration,
		SignKey:  a.refreshSignKey,
		Now:      now,
	})
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refreshExpiresAt := now.Add(a.refreshTokenDuration)
	err = a.refreshTokenRepository.SaveRefreshToken(ctx, models.RefreshTokenRecord{
		UserID:    user.UserID,
		TokenHash: a.refreshHasher.HashString(refresh.SignedString),
		ExpiresAt: refreshExpiresAt,
	})
	if err != nil {
		return models.TokenPair{}, storeError(err)
	}

	return models.TokenPair{
		AccessToken:      access.SignedString,
		RefreshToken:     refresh.SignedString,
		TokenType:        TokenTypeBearer,
		AccessExpiresAt:  now.Add(a.accessTokenDuration),
		RefreshExpiresAt: refreshExpiresAt,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
