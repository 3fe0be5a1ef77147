package services

import (
	"context"
	"testing"

	"golang-storefront/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(t *testing.T) (*UserService, *memoryUsers) {
	t.Helper()
	users := newMemoryUsers()
	c, _ := newTestCache(t)
	return NewUserService(users, auth.NewJWTManager("test-secret", 1, 7), c), users
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestUserService(t)

	resp, err := svc.Register(ctx, &RegisterRequest{Name: "Ada", Email: "Ada@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.NotEqual(t, "secret1", users.byEmail["ada@example.com"].PasswordHash)

	_, err = svc.Register(ctx, &RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret2"})
	assert.ErrorIs(t, err, ErrConflict)

	login, err := svc.Login(ctx, &LoginRequest{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotNil(t, login.User.LastLoginAt)

	_, err = svc.Login(ctx, &LoginRequest{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_UpsertOAuthUser(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestUserService(t)

	first, err := svc.Upsert(ctx, &UpsertRequest{Email: "g@example.com", Name: "Grace", Provider: "google"})
	require.NoError(t, err)
	assert.Equal(t, "google", first.User.Provider)

	second, err := svc.Upsert(ctx, &UpsertRequest{Email: "g@example.com", Image: "https://img/g.png"})
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, "Grace", second.User.Name)
	assert.Equal(t, "https://img/g.png", users.byEmail["g@example.com"].Image)

	// OAuth users have no password.
	_, err = svc.Login(ctx, &LoginRequest{Email: "g@example.com", Password: ""})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_UpsertRefusesPasswordAccount(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestUserService(t)

	_, err := svc.Register(ctx, &RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	resp, err := svc.Upsert(ctx, &UpsertRequest{Email: "Ada@Example.com", Name: "Mallory"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Nil(t, resp)

	stored := users.byEmail["ada@example.com"]
	assert.Equal(t, "credentials", stored.Provider)
	assert.Equal(t, "Ada", stored.Name)
	assert.Nil(t, stored.LastLoginAt)
}

func TestUserService_RefreshAndLogout(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUserService(t)

	resp, err := svc.Register(ctx, &RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshAccessToken(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, resp.RefreshToken, refreshed.RefreshToken)

	// Access tokens cannot be used to refresh.
	_, err = svc.RefreshAccessToken(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.Logout(ctx, "ada@example.com"))
	_, err = svc.RefreshAccessToken(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
