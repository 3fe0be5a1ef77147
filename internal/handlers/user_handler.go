package handlers

import (
	"net/http"

	"golang-storefront/internal/middleware"
	"golang-storefront/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService    UserServiceInterface
	providerSecret string
}

// NewUserHandler builds the user routes. providerSecret guards the OAuth
// profile upsert; empty disables it.
func NewUserHandler(userService UserServiceInterface, providerSecret string) *UserHandler {
	return &UserHandler{userService: userService, providerSecret: providerSecret}
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RegisterRoutes registers user routes
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	users := router.Group("/users")
	{
		users.POST("", middleware.ProviderRequired(h.providerSecret), h.Upsert)
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.POST("/refresh", h.RefreshToken)
		users.POST("/logout", authMiddleware.AuthRequired(), h.Logout)
	}
}

// @Summary Register a new user
// @Description Create a new user account
// @Tags users
// @Accept json
// @Produce json
// @Param request body services.RegisterRequest true "Registration request"
// @Success 201 {object} services.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

// @Summary Login user
// @Description Authenticate user and return JWT token
// @Tags users
// @Accept json
// @Produce json
// @Param request body services.LoginRequest true "Login request"
// @Success 200 {object} services.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Record OAuth sign in
// @Description Create or update a user signing in through an OAuth provider
// @Tags users
// @Accept json
// @Produce json
// @Param X-Provider-Secret header string true "OAuth provider secret"
// @Param request body services.UpsertRequest true "Profile"
// @Success 200 {object} services.AuthResponse
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/users [post]
func (h *UserHandler) Upsert(c *gin.Context) {
	var req services.UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.userService.Upsert(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Refresh access token
// @Tags users
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest true "Refresh token"
// @Success 200 {object} services.AuthResponse
// @Failure 401 {object} map[string]string
// @Router /api/users/refresh [post]
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.userService.RefreshAccessToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Logout user
// @Tags users
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /api/users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.userService.Logout(c.Request.Context(), middleware.GetEmail(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
