package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", 1, 30)

	token, err := m.GenerateToken(Identity{Email: "ada@example.com", Name: "Ada Lovelace"})
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "Ada Lovelace", claims.Name)
	assert.Equal(t, AccessToken, claims.TokenType)
}

func TestJWTManager_RejectsForeignSecret(t *testing.T) {
	issuer := NewJWTManager("one", 1, 30)
	verifier := NewJWTManager("two", 1, 30)

	token, err := issuer.GenerateToken(Identity{Email: "ada@example.com"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTManager_RejectsExpired(t *testing.T) {
	m := NewJWTManager("secret", -1, 30)

	token, err := m.GenerateToken(Identity{Email: "ada@example.com"})
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTManager_Refresh(t *testing.T) {
	m := NewJWTManager("secret", 1, 30)

	pair, err := m.GenerateTokenPair(Identity{Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 3600, pair.ExpiresIn)

	access, err := m.RefreshAccessToken(pair.RefreshToken)
	require.NoError(t, err)
	claims, err := m.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, AccessToken, claims.TokenType)

	_, err = m.RefreshAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}
