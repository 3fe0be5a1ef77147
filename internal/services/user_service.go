package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang-storefront/internal/models"
	"golang-storefront/internal/repositories"
	"golang-storefront/pkg/auth"
	"golang-storefront/pkg/cache"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo   repositories.UserRepository
	jwtManager *auth.JWTManager
	cache      *cache.RedisCache
}

func NewUserService(userRepo repositories.UserRepository, jwtManager *auth.JWTManager, cache *cache.RedisCache) *UserService {
	return &UserService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		cache:      cache,
	}
}

// Refresh token storage methods
func (s *UserService) storeRefreshToken(ctx context.Context, email, refreshToken string) error {
	key := fmt.Sprintf("refresh_token:%s", email)
	return s.cache.Set(ctx, key, refreshToken, s.jwtManager.RefreshTTL())
}

func (s *UserService) getStoredRefreshToken(ctx context.Context, email string) (string, error) {
	key := fmt.Sprintf("refresh_token:%s", email)
	var token string
	err := s.cache.Get(ctx, key, &token)
	return token, err
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Image    string `json:"image"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpsertRequest records an OAuth sign in.
type UpsertRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Provider string `json:"provider"`
}

type AuthResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int         `json:"expires_in"`
	User         models.User `json:"user"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: user with this email already exists", ErrConflict)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Image:        req.Image,
		Provider:     "credentials",
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

func (s *UserService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

// Upsert creates the user on first OAuth sign in and refreshes the profile
// on later ones. Accounts registered with a password are never signed in
// this way.
func (s *UserService) Upsert(ctx context.Context, req *UpsertRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)
	now := time.Now()

	user, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		provider := req.Provider
		if provider == "" {
			provider = "oauth"
		}
		user = &models.User{Name: req.Name, Email: email, Image: req.Image, Provider: provider, LastLoginAt: &now}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	case user.PasswordHash != "":
		return nil, fmt.Errorf("%w: account signs in with a password", ErrConflict)
	default:
		if req.Name != "" {
			user.Name = req.Name
		}
		if req.Image != "" {
			user.Image = req.Image
		}
		user.LastLoginAt = &now
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}
	return s.issueTokens(ctx, user)
}

// RefreshAccessToken validates refresh token and generates new access token
func (s *UserService) RefreshAccessToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateToken(refreshToken)
	if err != nil || claims.TokenType != auth.RefreshToken {
		return nil, ErrInvalidCredentials
	}

	storedToken, err := s.getStoredRefreshToken(ctx, claims.Email)
	if err != nil || storedToken != refreshToken {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.RefreshAccessToken(refreshToken)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.jwtManager.AccessTTLSeconds(),
		User:         *user,
	}, nil
}

// Logout invalidates the refresh token
func (s *UserService) Logout(ctx context.Context, email string) error {
	return s.cache.Delete(ctx, fmt.Sprintf("refresh_token:%s", email))
}

func (s *UserService) issueTokens(ctx context.Context, user *models.User) (*AuthResponse, error) {
	tokenPair, err := s.jwtManager.GenerateTokenPair(auth.Identity{
		UserID: user.ID.String(),
		Email:  user.Email,
		Name:   user.Name,
		Image:  user.Image,
	})
	if err != nil {
		return nil, err
	}

	if err := s.storeRefreshToken(ctx, user.Email, tokenPair.RefreshToken); err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    tokenPair.ExpiresIn,
		User:         *user,
	}, nil
}
