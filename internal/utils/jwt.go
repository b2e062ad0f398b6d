package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-quote-keeper/models"
)

var (
	ErrInvalidTokenParams = errors.New("invalid params for generating JWT token")
	ErrWrongTokenType     = errors.New("unexpected token type")
	ErrInvalidAuthHeader  = errors.New("invalid authorization header")
)

// TokenParams describes a token to be issued by GenerateJWTToken.
type TokenParams struct {
	Issuer   string
	UserID   int64
	Tier     models.Tier
	Type     models.TokenType
	Duration time.Duration
	SignKey  string

	// Now overrides the issue time. The zero value means time.Now().
	Now time.Time
}

// GenerateJWTToken creates an HMAC-SHA256 signed JWT.
//
// The token carries iss, sub (the user ID), iat, exp, a random jti and the
// token type, so an access token is never accepted where a refresh token is
// expected and vice versa.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken(utils.TokenParams{
//	    Issuer: "go-quote-keeper", UserID: 42, Type: models.AccessToken,
//	    Duration: 15 * time.Minute, SignKey: "secret",
//	})
func GenerateJWTToken(p TokenParams) (models.Token, error) {
	if p.Issuer == "" || p.Duration == 0 || p.SignKey == "" || p.Type == "" {
		return models.Token{}, ErrInvalidTokenParams
	}

	now := p.Now
	if now.IsZero() {
		now = time.Now()
	}

	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    p.Issuer,
			Subject:   strconv.FormatInt(p.UserID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.Duration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Type: p.Type,
		Tier: p.Tier,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(p.SignKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{
		Token:        token,
		Claims:       claims,
		SignedString: tokenString,
		UserID:       p.UserID,
	}, nil
}

// ValidateAndParseJWTToken verifies signature, issuer, expiry and token type
// and extracts the user ID from the subject claim.
//
// Example usage:
//
//	token, err := utils.ValidateAndParseJWTToken(raw, "secret", "go-quote-keeper", models.AccessToken)
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ValidateAndParseJWTToken(tokenString, signKey, issuer string, tokenType models.TokenType) (models.Token, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Type != tokenType {
		return models.Token{}, fmt.Errorf("%w: got %q, want %q", ErrWrongTokenType, claims.Type, tokenType)
	}

	parsed := models.Token{Token: token, Claims: *claims, SignedString: tokenString}
	userID, err := parsed.GetUserID()
	if err != nil {
		return models.Token{}, err
	}
	if userID <= 0 {
		return models.Token{}, errors.New("empty subject error")
	}
	parsed.UserID = userID

	return parsed, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidAuthHeader
	}
	return parts[1], nil
}
