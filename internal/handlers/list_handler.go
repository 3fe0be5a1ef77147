package handlers

import (
	"net/http"

	"golang-storefront/internal/middleware"
	"golang-storefront/internal/models"

	"github.com/gin-gonic/gin"
)

// ListHandler serves the saved cart and wishlist of each user.
type ListHandler struct {
	listService ListServiceInterface
}

func NewListHandler(listService ListServiceInterface) *ListHandler {
	return &ListHandler{listService: listService}
}

type listBody struct {
	Items models.JSONArray `json:"items"`
}

// RegisterRoutes registers cart and wishlist routes
func (h *ListHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	for _, kind := range []string{models.ListKindCart, models.ListKindWishlist} {
		group := router.Group("/"+kind, authMiddleware.AuthRequired())
		group.GET("/:email", authMiddleware.SelfRequired(), h.getItems(kind))
		group.PUT("/:email", authMiddleware.SelfRequired(), h.replaceItems(kind))
		group.DELETE("/:email", authMiddleware.SelfRequired(), h.clearItems(kind))
	}
}

// @Summary Get saved list
// @Description Get the cart or wishlist of a user
// @Tags lists
// @Security BearerAuth
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} listBody
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/cart/{email} [get]
// @Router /api/wishlist/{email} [get]
func (h *ListHandler) getItems(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := h.listService.GetItems(c.Request.Context(), kind, c.Param("email"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, listBody{Items: items})
	}
}

// @Summary Replace saved list
// @Description Overwrite the cart or wishlist of a user
// @Tags lists
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param email path string true "User email"
// @Param request body listBody true "Items"
// @Success 200 {object} listBody
// @Failure 400 {object} map[string]string
// @Router /api/cart/{email} [put]
// @Router /api/wishlist/{email} [put]
func (h *ListHandler) replaceItems(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req listBody
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Items == nil {
			req.Items = models.JSONArray{}
		}

		if err := h.listService.ReplaceItems(c.Request.Context(), kind, c.Param("email"), req.Items); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, req)
	}
}

// @Summary Clear saved list
// @Tags lists
// @Security BearerAuth
// @Param email path string true "User email"
// @Success 204
// @Router /api/cart/{email} [delete]
// @Router /api/wishlist/{email} [delete]
func (h *ListHandler) clearItems(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.listService.ClearItems(c.Request.Context(), kind, c.Param("email")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
