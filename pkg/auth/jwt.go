package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrUnexpectedMethod = errors.New("unexpected signing method")
	ErrWrongTokenType   = errors.New("invalid token type: expected refresh token")
)

type JWTManager struct {
	secretKey         string
	accessExpiryHours int
	refreshExpiryDays int
}

// Identity is the user data carried inside a session token.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Image  string `json:"image,omitempty"`
}

type Claims struct {
	Identity
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

func NewJWTManager(secretKey string, accessExpiryHours, refreshExpiryDays int) *JWTManager {
	return &JWTManager{
		secretKey:         secretKey,
		accessExpiryHours: accessExpiryHours,
		refreshExpiryDays: refreshExpiryDays,
	}
}

func (j *JWTManager) generateToken(id Identity, tokenType TokenType) (string, error) {
	now := time.Now()
	var expiryTime time.Time
	if tokenType == AccessToken {
		expiryTime = now.Add(time.Hour * time.Duration(j.accessExpiryHours))
	} else {
		expiryTime = now.Add(time.Hour * 24 * time.Duration(j.refreshExpiryDays))
	}

	claims := &Claims{
		Identity:  id,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Email,
			ExpiresAt: jwt.NewNumericDate(expiryTime),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *JWTManager) GenerateToken(id Identity) (string, error) {
	return j.generateToken(id, AccessToken)
}

func (j *JWTManager) GenerateTokenPair(id Identity) (*TokenPair, error) {
	accessToken, err := j.generateToken(id, AccessToken)
	if err != nil {
		return nil, err
	}

	refreshToken, err := j.generateToken(id, RefreshToken)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    j.AccessTTLSeconds(),
	}, nil
}

func (j *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnexpectedMethod
		}
		return []byte(j.secretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

func (j *JWTManager) RefreshAccessToken(refreshTokenString string) (string, error) {
	claims, err := j.ValidateToken(refreshTokenString)
	if err != nil {
		return "", err
	}

	// Ensure this is a refresh token
	if claims.TokenType != RefreshToken {
		return "", ErrWrongTokenType
	}

	return j.generateToken(claims.Identity, AccessToken)
}

// AccessTTLSeconds is the lifetime of an access token in seconds.
func (j *JWTManager) AccessTTLSeconds() int {
	return j.accessExpiryHours * 3600
}

// RefreshTTL is the lifetime of a refresh token.
func (j *JWTManager) RefreshTTL() time.Duration {
	return time.Hour * 24 * time.Duration(j.refreshExpiryDays)
}
