package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfreire/financas/internal/auth"
	"github.com/dfreire/financas/internal/user"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := auth.NewTokenService("test-secret", 30)

	u := &user.User{ID: 1, Name: "Maria", Email: "maria@example.com"}

	token, err := svc.Issue(u)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.True(t, svc.Valid(token))

	subject, err := svc.Subject(token)
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", subject)

	claims, err := svc.Claims(token)
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestTokenService_Expired(t *testing.T) {
	svc := auth.NewTokenService("test-secret", -5)

	token, err := svc.Issue(&user.User{Email: "maria@example.com"})
	require.NoError(t, err)

	assert.False(t, svc.Valid(token))

	_, err = svc.Claims(token)
	assert.Error(t, err)
}

func TestTokenService_InvalidTokens(t *testing.T) {
	svc := auth.NewTokenService("test-secret", 30)

	t.Run("Malformed", func(t *testing.T) {
		assert.False(t, svc.Valid("not.a.token"))
		assert.False(t, svc.Valid(""))
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := auth.NewTokenService("other-secret", 30)

		token, err := other.Issue(&user.User{Email: "maria@example.com"})
		require.NoError(t, err)

		assert.False(t, svc.Valid(token))
	})
}

func TestPasswordHasher(t *testing.T) {
	hasher := auth.NewPasswordHasher()

	hash, err := hasher.Hash("secret")
	require.NoError(t, err)
	require.NotEqual(t, "secret", hash)

	assert.True(t, hasher.Matches("secret", hash))
	assert.False(t, hasher.Matches("wrong", hash))

	// Salted per call.
	other, err := hasher.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)
}
