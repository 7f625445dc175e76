package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService() TokenService {
	return NewTokenService(
		[]byte("test-secret-key-that-is-long-enough!"),
		"gift-certificates",
		"gift-certificates-api",
		nil,
	)
}

func TestTokenService(t *testing.T) {
	ctx := context.Background()
	svc := newTestTokenService()

	t.Run("GenerateAndValidate", func(t *testing.T) {
		accessToken, refreshToken, err := svc.GenerateTokens(ctx, 42)
		require.NoError(t, err)
		require.NotEmpty(t, accessToken)
		require.NotEmpty(t, refreshToken)
		assert.NotEqual(t, accessToken, refreshToken)

		claims, err := svc.ValidateToken(ctx, accessToken)
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
		assert.Equal(t, "access", claims.TokenType)
		assert.NotEmpty(t, claims.TokenID)
		assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
	})

	t.Run("RefreshTokenIsNotAnAccessToken", func(t *testing.T) {
		_, refreshToken, err := svc.GenerateTokens(ctx, 42)
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, refreshToken)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("RefreshRotatesPair", func(t *testing.T) {
		_, refreshToken, err := svc.GenerateTokens(ctx, 7)
		require.NoError(t, err)

		newAccess, newRefresh, err := svc.RefreshToken(ctx, refreshToken)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(ctx, newAccess)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
		assert.NotEmpty(t, newRefresh)
	})

	t.Run("AccessTokenCannotRefresh", func(t *testing.T) {
		accessToken, _, err := svc.GenerateTokens(ctx, 7)
		require.NoError(t, err)

		_, _, err = svc.RefreshToken(ctx, accessToken)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("GarbageTokenIsInvalid", func(t *testing.T) {
		_, err := svc.ValidateToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("WrongSignatureIsInvalid", func(t *testing.T) {
		other := NewTokenService(
			[]byte("a-completely-different-secret-key!!!"),
			"gift-certificates",
			"gift-certificates-api",
			nil,
		)
		accessToken, _, err := other.GenerateTokens(ctx, 42)
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, accessToken)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}
