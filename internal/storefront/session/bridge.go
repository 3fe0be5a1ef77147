package session

import (
	"errors"
	"fmt"

	"golang-storefront/pkg/auth"
)

// ProviderCredentials marks sessions created from a verified credential token.
const ProviderCredentials = "credentials"

var ErrInvalidCredentials = errors.New("invalid credential token")

// Bridge turns a token that was already verified by the backend at login into
// the same Session shape an OAuth provider would produce.
type Bridge struct {
	tokens *auth.JWTManager
}

func NewBridge(tokens *auth.JWTManager) *Bridge {
	return &Bridge{tokens: tokens}
}

func (b *Bridge) Exchange(token string) (Session, error) {
	claims, err := b.tokens.ValidateToken(token)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	if claims.TokenType != auth.AccessToken || claims.Email == "" {
		return Session{}, ErrInvalidCredentials
	}

	return Session{
		Email:    claims.Email,
		Name:     claims.Name,
		Image:    claims.Image,
		Provider: ProviderCredentials,
	}, nil
}
