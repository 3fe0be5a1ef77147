package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"golang-storefront/pkg/auth"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
}

func NewAuthMiddleware(jwtManager *auth.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager}
}

// AuthRequired middleware validates JWT token
func (a *AuthMiddleware) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := a.jwtManager.ValidateToken(tokenParts[1])
		if err != nil || claims.TokenType != auth.AccessToken {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		// Set user information in context
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("name", claims.Name)
		c.Set("image", claims.Image)
		c.Next()
	}
}

// SelfRequired rejects requests whose :email path parameter is not the
// signed-in user. Must run after AuthRequired.
func (a *AuthMiddleware) SelfRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.EqualFold(c.Param("email"), GetEmail(c)) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// ProviderSecretHeader carries the secret shared with the OAuth callback.
const ProviderSecretHeader = "X-Provider-Secret"

// ProviderRequired only lets through callers presenting the OAuth provider
// secret. An empty secret disables the route.
func ProviderRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "OAuth sign in is disabled"})
			c.Abort()
			return
		}
		presented := c.GetHeader(ProviderSecretHeader)
		if subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid provider secret"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func getString(c *gin.Context, key string) string {
	if v, exists := c.Get(key); exists {
		s, _ := v.(string)
		return s
	}
	return ""
}

// GetUserID helper function to extract user ID from context
func GetUserID(c *gin.Context) string {
	return getString(c, "user_id")
}

// GetEmail helper function to extract the signed-in email from context
func GetEmail(c *gin.Context) string {
	return getString(c, "email")
}

func GetName(c *gin.Context) string {
	return getString(c, "name")
}

func GetImage(c *gin.Context) string {
	return getString(c, "image")
}
