package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang-storefront/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(jwtManager *auth.JWTManager) *gin.Engine {
	m := NewAuthMiddleware(jwtManager)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/me", m.AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": GetEmail(c), "name": GetName(c)})
	})
	r.GET("/cart/:email", m.AuthRequired(), m.SelfRequired(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthRequired(t *testing.T) {
	jwtManager := auth.NewJWTManager("secret", 1, 7)
	r := newTestRouter(jwtManager)

	pair, err := jwtManager.GenerateTokenPair(auth.Identity{UserID: "u1", Email: "ada@example.com", Name: "Ada"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token " + pair.AccessToken, http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"refresh token", "Bearer " + pair.RefreshToken, http.StatusUnauthorized},
		{"access token", "Bearer " + pair.AccessToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestSelfRequired(t *testing.T) {
	jwtManager := auth.NewJWTManager("secret", 1, 7)
	r := newTestRouter(jwtManager)
	token, err := jwtManager.GenerateToken(auth.Identity{Email: "ada@example.com"})
	require.NoError(t, err)

	for path, status := range map[string]int{
		"/cart/ada@example.com":   http.StatusNoContent,
		"/cart/grace@example.com": http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, status, w.Code, path)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestProviderRequired(t *testing.T) {
	tests := []struct {
		name      string
		secret    string
		presented string
		status    int
	}{
		{"disabled", "", "", http.StatusForbidden},
		{"disabled ignores header", "", "anything", http.StatusForbidden},
		{"missing header", "callback-secret", "", http.StatusUnauthorized},
		{"wrong secret", "callback-secret", "guess", http.StatusUnauthorized},
		{"matching secret", "callback-secret", "callback-secret", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/users", ProviderRequired(tt.secret), func(c *gin.Context) {
				c.Status(http.StatusNoContent)
			})
			req := httptest.NewRequest(http.MethodPost, "/users", nil)
			if tt.presented != "" {
				req.Header.Set(ProviderSecretHeader, tt.presented)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
