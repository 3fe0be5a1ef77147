package handlers

import (
	"net/http"
	"strconv"

	"golang-storefront/internal/middleware"
	"golang-storefront/internal/services"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService ReviewServiceInterface
}

func NewReviewHandler(reviewService ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// RegisterRoutes registers review routes
func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	reviews := router.Group("/reviews")
	{
		reviews.GET("/product/:id", h.ListProductReviews)
		reviews.GET("/user/:email/product/:id", h.GetUserReview)
		reviews.POST("/:id/helpful", h.MarkHelpful)

		protected := reviews.Group("", authMiddleware.AuthRequired())
		protected.POST("", h.CreateReview)
		protected.PUT("/:id", h.UpdateReview)
		protected.DELETE("/:id", h.DeleteReview)
	}
}

// @Summary List product reviews
// @Tags reviews
// @Produce json
// @Param id path string true "Product ID"
// @Param sort query string false "newest, oldest, highest, lowest or helpful"
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 5)"
// @Success 200 {object} services.ReviewPage
// @Router /api/reviews/product/{id} [get]
func (h *ReviewHandler) ListProductReviews(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	result, err := h.reviewService.ListProductReviews(c.Request.Context(), c.Param("id"), c.DefaultQuery("sort", "newest"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Get a user's review of a product
// @Tags reviews
// @Produce json
// @Param email path string true "User email"
// @Param id path string true "Product ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/reviews/user/{email}/product/{id} [get]
func (h *ReviewHandler) GetUserReview(c *gin.Context) {
	review, err := h.reviewService.GetUserReview(c.Request.Context(), c.Param("email"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"review": review})
}

func (h *ReviewHandler) bindReview(c *gin.Context) (*services.ReviewRequest, bool) {
	var req services.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	// The author is always the signed-in user.
	req.UserEmail = middleware.GetEmail(c)
	if req.UserName == "" {
		req.UserName = middleware.GetName(c)
	}
	if req.UserImage == "" {
		req.UserImage = middleware.GetImage(c)
	}
	return &req, true
}

// @Summary Create review
// @Tags reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body services.ReviewRequest true "Review"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	req, ok := h.bindReview(c)
	if !ok {
		return
	}
	review, err := h.reviewService.CreateReview(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// @Summary Update review
// @Tags reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Review ID"
// @Param request body services.ReviewRequest true "Review"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Router /api/reviews/{id} [put]
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	req, ok := h.bindReview(c)
	if !ok {
		return
	}
	review, err := h.reviewService.UpdateReview(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"review": review})
}

// @Summary Delete review
// @Tags reviews
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	if err := h.reviewService.DeleteReview(c.Request.Context(), c.Param("id"), middleware.GetEmail(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

// @Summary Mark review helpful
// @Tags reviews
// @Param id path string true "Review ID"
// @Success 200 {object} map[string]string
// @Router /api/reviews/{id}/helpful [post]
func (h *ReviewHandler) MarkHelpful(c *gin.Context) {
	if err := h.reviewService.MarkHelpful(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Marked as helpful"})
}
