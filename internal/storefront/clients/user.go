package clients

import (
	"context"
	"net/http"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Image    string `json:"image,omitempty"`
}

// Profile is the identity an OAuth provider hands over at sign in.
type Profile struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Image    string `json:"image,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// TokenResponse is returned by every user endpoint that starts a session.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// ProviderSecretHeader must match the backend's OAuth callback guard.
const ProviderSecretHeader = "X-Provider-Secret"

type UserClient struct {
	c              *Client
	providerSecret string
}

// NewUserClient builds the user endpoints. providerSecret is presented on
// OAuth profile upserts.
func NewUserClient(c *Client, providerSecret string) *UserClient {
	return &UserClient{c: c, providerSecret: providerSecret}
}

// Login exchanges credentials for a session token.
func (uc *UserClient) Login(ctx context.Context, creds Credentials) (TokenResponse, error) {
	var tok TokenResponse
	err := uc.c.Do(ctx, http.MethodPost, "/api/users/login", nil, creds, &tok)
	return tok, err
}

func (uc *UserClient) Register(ctx context.Context, reg Registration) (TokenResponse, error) {
	var tok TokenResponse
	err := uc.c.Do(ctx, http.MethodPost, "/api/users/register", nil, reg, &tok)
	return tok, err
}

// Upsert records an OAuth sign in, creating the user on first visit.
func (uc *UserClient) Upsert(ctx context.Context, p Profile) (TokenResponse, error) {
	header := http.Header{}
	header.Set(ProviderSecretHeader, uc.providerSecret)
	var tok TokenResponse
	err := uc.c.DoWithHeader(ctx, http.MethodPost, "/api/users", header, nil, p, &tok)
	return tok, err
}
