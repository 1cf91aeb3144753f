package jwt_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/jwt"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := jwt.GenerateAccessToken(42, "ana@uni.edu", "ADMIN", "secret", 15)
	require.NoError(t, err)

	claims, err := jwt.ValidateAccessToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ana@uni.edu", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, jwt.Issuer, claims.Issuer)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := jwt.GenerateAccessToken(1, "a@b.c", "BIBLIOTECARIO", "secret", 15)
	require.NoError(t, err)

	_, err = jwt.ValidateAccessToken(token, "other")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}

func TestAccessTokenExpired(t *testing.T) {
	token, err := jwt.GenerateAccessToken(1, "a@b.c", "BIBLIOTECARIO", "secret", -1)
	require.NoError(t, err)

	_, err = jwt.ValidateAccessToken(token, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestRefreshToken(t *testing.T) {
	id := uuid.New().String()
	token, err := jwt.GenerateRefreshToken(7, id, "refresh", 7)
	require.NoError(t, err)

	claims, err := jwt.ValidateRefreshToken(token, "refresh")
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, id, claims.TokenID)

	_, err = jwt.ValidateRefreshToken("not-a-token", "refresh")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}
