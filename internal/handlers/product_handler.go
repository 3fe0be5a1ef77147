package handlers

import (
	"net/http"

	"golang-storefront/internal/middleware"
	"golang-storefront/internal/services"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService ProductServiceInterface
}

func NewProductHandler(productService ProductServiceInterface) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProductByID)
		products.GET("/user/:email", h.GetProductsByCreator)

		products.POST("", authMiddleware.AuthRequired(), h.CreateProduct)
		products.DELETE("/:id", authMiddleware.AuthRequired(), h.DeleteProduct)
	}
}

// @Summary List products
// @Description List products with server-side category and search filters
// @Tags products
// @Produce json
// @Param category query string false "Category"
// @Param subcategory query string false "Subcategory"
// @Param search query string false "Search text"
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 20)"
// @Success 200 {object} services.ProductPage
// @Failure 400 {object} map[string]string
// @Router /api/products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var q services.ProductQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.productService.ListProducts(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// @Summary Get product by ID
// @Description Get a specific product by its ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} map[string]string
// @Router /api/products/{id} [get]
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	product, err := h.productService.GetProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// @Summary Get products by seller
// @Tags products
// @Produce json
// @Param email path string true "Seller email"
// @Success 200 {array} models.Product
// @Router /api/products/user/{email} [get]
func (h *ProductHandler) GetProductsByCreator(c *gin.Context) {
	products, err := h.productService.GetProductsByCreator(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// @Summary Create a new product
// @Description List a new product for sale
// @Tags products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body services.CreateProductRequest true "Product creation request"
// @Success 201 {object} models.Product
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), middleware.GetEmail(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// @Summary Delete product
// @Description Delete a product listed by the signed-in seller
// @Tags products
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id"), middleware.GetEmail(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
