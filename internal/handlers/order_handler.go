package handlers

import (
	"net/http"
	"strings"

	"golang-storefront/internal/middleware"
	"golang-storefront/internal/models"
	"golang-storefront/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService OrderServiceInterface
}

func NewOrderHandler(orderService OrderServiceInterface) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	orders := router.Group("/orders", authMiddleware.AuthRequired())
	{
		orders.POST("", h.CreateOrder)
		orders.GET("/user/:email", authMiddleware.SelfRequired(), h.GetUserOrders)
		orders.GET("/:id", h.GetOrder)
		orders.DELETE("/:id", h.CancelOrder)
	}
}

// @Summary Place an order
// @Description Create an order from the submitted cart lines
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body services.CreateOrderRequest true "Order request"
// @Success 201 {object} models.Order
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !strings.EqualFold(req.UserEmail, middleware.GetEmail(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Orders can only be placed for the signed-in user"})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// @Summary Get user orders
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param email path string true "User email"
// @Success 200 {array} models.Order
// @Router /api/orders/user/{email} [get]
func (h *OrderHandler) GetUserOrders(c *gin.Context) {
	orders, err := h.orderService.GetUserOrders(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// ownOrder loads the order and hides it from anyone but its owner.
func (h *OrderHandler) ownOrder(c *gin.Context) (*models.Order, bool) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if !strings.EqualFold(order.UserEmail, middleware.GetEmail(c)) {
		respondError(c, services.ErrNotFound)
		return nil, false
	}
	return order, true
}

// @Summary Get order by ID
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Order
// @Failure 404 {object} map[string]string
// @Router /api/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, ok := h.ownOrder(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, order)
}

// @Summary Cancel order
// @Description Cancel a pending order
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Order
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/orders/{id} [delete]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	order, ok := h.ownOrder(c)
	if !ok {
		return
	}

	cancelled, err := h.orderService.CancelOrder(c.Request.Context(), order.OrderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cancelled)
}
