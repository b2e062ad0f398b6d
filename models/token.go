package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType tells access tokens and refresh tokens apart inside the claims.
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims is the JWT claim set issued by the server.
type Claims struct {
	jwt.RegisteredClaims
	Type TokenType `json:"typ"`
	Tier Tier      `json:"tier,omitempty"`
}

// Token wraps a parsed or freshly signed JWT.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature). UserID is the parsed "sub" claim.
type Token struct {
	*jwt.Token `json:"-"`
	Claims

	SignedString string `json:"-"`
	UserID       int64  `json:"-"`
}

// GetUserID parses the "sub" claim as a base-10 int64.
func (t *Token) GetUserID() (int64, error) {
	userIDString, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}

// TokenPair is what a successful login, registration or refresh returns.
type TokenPair struct {
	AccessToken      string    `json:"accessToken"`
	RefreshToken     string    `json:"refreshToken"`
	TokenType        string    `json:"tokenType"`
	AccessExpiresAt  time.Time `json:"accessExpiresAt"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}

// RefreshTokenRecord is the stored form of an issued refresh token. Only a
// keyed digest of the token is persisted.
type RefreshTokenRecord struct {
	ID        int64
	UserID    int64
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TableName returns the name of the database table
// associated with the RefreshTokenRecord model.
func (r RefreshTokenRecord) TableName() string {
	return "refresh_tokens"
}

// Expired reports whether the record is past its expiry at now.
func (r RefreshTokenRecord) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}
