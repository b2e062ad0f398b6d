package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-quote-keeper/models"
)

func accessParams() TokenParams {
	return TokenParams{
		Issuer:   "test-issuer",
		UserID:   123,
		Tier:     models.TierPro,
		Type:     models.AccessToken,
		Duration: time.Hour,
		SignKey:  "secret-key",
	}
}

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken(accessParams())
	require.NoError(t, err)

	assert.NotEmpty(t, token.SignedString)
	assert.NotNil(t, token.Token)
	assert.Equal(t, int64(123), token.UserID)
	assert.Equal(t, "test-issuer", token.Claims.Issuer)
	assert.Equal(t, "123", token.Claims.Subject)
	assert.Equal(t, models.AccessToken, token.Claims.Type)
	assert.NotEmpty(t, token.Claims.ID)
}

func TestGenerateJWTToken_UniqueIDs(t *testing.T) {
	t1, err := GenerateJWTToken(accessParams())
	require.NoError(t, err)
	t2, err := GenerateJWTToken(accessParams())
	require.NoError(t, err)

	assert.NotEqual(t, t1.Claims.ID, t2.Claims.ID)
	assert.NotEqual(t, t1.SignedString, t2.SignedString, "same second, different jti")
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TokenParams)
	}{
		{"empty issuer", func(p *TokenParams) { p.Issuer = "" }},
		{"zero duration", func(p *TokenParams) { p.Duration = 0 }},
		{"empty key", func(p *TokenParams) { p.SignKey = "" }},
		{"empty type", func(p *TokenParams) { p.Type = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := accessParams()
			tt.mutate(&p)
			_, err := GenerateJWTToken(p)
			assert.ErrorIs(t, err, ErrInvalidTokenParams)
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	gen, err := GenerateJWTToken(accessParams())
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(gen.SignedString, "secret-key", "test-issuer", models.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(123), parsed.UserID)
	assert.Equal(t, models.TierPro, parsed.Claims.Tier)
	assert.Equal(t, gen.Claims.ID, parsed.Claims.ID)
}

func TestValidateAndParseJWTToken_Failures(t *testing.T) {
	valid, err := GenerateJWTToken(accessParams())
	require.NoError(t, err)

	expiredParams := accessParams()
	expiredParams.Now = time.Now().Add(-2 * time.Hour)
	expired, err := GenerateJWTToken(expiredParams)
	require.NoError(t, err)

	refreshParams := accessParams()
	refreshParams.Type = models.RefreshToken
	refresh, err := GenerateJWTToken(refreshParams)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "test-issuer", Subject: "1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		Type:             models.AccessToken,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		key    string
		issuer string
		target error
	}{
		{"wrong key", valid.SignedString, "wrong-key", "test-issuer", jwt.ErrTokenSignatureInvalid},
		{"expired", expired.SignedString, "secret-key", "test-issuer", jwt.ErrTokenExpired},
		{"wrong issuer", valid.SignedString, "secret-key", "fake-issuer", jwt.ErrTokenInvalidIssuer},
		{"wrong type", refresh.SignedString, "secret-key", "test-issuer", ErrWrongTokenType},
		{"alg none", noneToken, "secret-key", "test-issuer", jwt.ErrTokenSignatureInvalid},
		{"malformed", "not.a.token", "secret-key", "test-issuer", jwt.ErrTokenMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndParseJWTToken(tt.token, tt.key, tt.issuer, models.AccessToken)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestParseBearerToken(t *testing.T) {
	token, err := ParseBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ParseBearerToken("  bearer   xyz ")
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer a b"} {
		_, err := ParseBearerToken(header)
		assert.ErrorIs(t, err, ErrInvalidAuthHeader, header)
	}
}
