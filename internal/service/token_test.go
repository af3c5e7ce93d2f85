package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/taskhive/taskhive/internal/errors"
)

func TestTokenIssueAndVerify(t *testing.T) {
	f := newFixture(t)
	ctx := testCtx()

	token, err := f.tokens.Issue(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := f.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)

	live, err := f.tokens.IsLive(ctx, 42, token)
	require.NoError(t, err)
	assert.True(t, live, "a freshly issued token must be live")
}

func TestTokenIssueIsUniquePerSession(t *testing.T) {
	f := newFixture(t)
	ctx := testCtx()

	// Back-to-back issuance lands in the same second; the tokens must still
	// be distinct strings or revoking one would revoke both.
	first, err := f.tokens.Issue(ctx, 42)
	require.NoError(t, err)
	second, err := f.tokens.Issue(ctx, 42)
	require.NoError(t, err)

	require.NotEqual(t, first, second)

	require.NoError(t, f.tokens.Revoke(ctx, 42, first))

	live, err := f.tokens.IsLive(ctx, 42, second)
	require.NoError(t, err)
	assert.True(t, live, "the untouched session must survive")
}

func TestTokenVerifyRejectsForeignSignature(t *testing.T) {
	f := newFixture(t)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": float64(42),
		"iat":     time.Now().Unix(),
	})
	signed, err := foreign.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, err = f.tokens.Verify(signed)
	require.Error(t, err)
	assert.Equal(t, "INVALID_TOKEN", apperrors.GetDomainError(err).Code)
}

func TestTokenVerifyRejectsGarbage(t *testing.T) {
	f := newFixture(t)

	for _, tokenString := range []string{"", "garbage", "a.b.c"} {
		_, err := f.tokens.Verify(tokenString)
		require.Error(t, err, tokenString)
		assert.Equal(t, "INVALID_TOKEN", apperrors.GetDomainError(err).Code)
	}
}

func TestTokenVerifyReportsExpiry(t *testing.T) {
	f := newFixture(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": float64(42),
		"iat":     time.Now().Add(-2 * time.Hour).Unix(),
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = f.tokens.Verify(signed)
	require.Error(t, err)
	assert.Equal(t, "TOKEN_EXPIRED", apperrors.GetDomainError(err).Code)
}

func TestTokenZeroTTLDisablesExpiry(t *testing.T) {
	f := newFixture(t)
	eternal := NewTokenService(testSecret, 0, f.tokens.tokenRepo)

	token, err := eternal.Issue(testCtx(), 7)
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)

	claims := parsed.Claims.(jwt.MapClaims)
	_, hasExp := claims["exp"]
	assert.False(t, hasExp, "zero ttl must omit the exp claim")

	userID, err := eternal.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)
}

func TestTokenRevocation(t *testing.T) {
	f := newFixture(t)
	ctx := testCtx()

	first, err := f.tokens.Issue(ctx, 42)
	require.NoError(t, err)
	second, err := f.tokens.Issue(ctx, 42)
	require.NoError(t, err)

	require.NoError(t, f.tokens.Revoke(ctx, 42, first))

	live, err := f.tokens.IsLive(ctx, 42, first)
	require.NoError(t, err)
	assert.False(t, live, "revoked token must not be live")

	// A revoked token still verifies; liveness is a separate check.
	userID, err := f.tokens.Verify(first)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)

	live, err = f.tokens.IsLive(ctx, 42, second)
	require.NoError(t, err)
	assert.True(t, live, "revocation is per token")

	require.NoError(t, f.tokens.RevokeAll(ctx, 42))
	live, err = f.tokens.IsLive(ctx, 42, second)
	require.NoError(t, err)
	assert.False(t, live)
}
