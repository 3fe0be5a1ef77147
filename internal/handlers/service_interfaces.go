package handlers

import (
	"context"

	"golang-storefront/internal/models"
	"golang-storefront/internal/services"
)

// ListServiceInterface defines the contract for cart and wishlist storage
type ListServiceInterface interface {
	GetItems(ctx context.Context, kind, email string) (models.JSONArray, error)
	ReplaceItems(ctx context.Context, kind, email string, items models.JSONArray) error
	ClearItems(ctx context.Context, kind, email string) error
}

// ProductServiceInterface defines the contract for product service
type ProductServiceInterface interface {
	ListProducts(ctx context.Context, q services.ProductQuery) (*services.ProductPage, error)
	GetProductByID(ctx context.Context, productID string) (*models.Product, error)
	GetProductsByCreator(ctx context.Context, email string) ([]models.Product, error)
	CreateProduct(ctx context.Context, createdBy string, req *services.CreateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, productID, email string) error
}

// OrderServiceInterface defines the contract for order service
type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, req *services.CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
	GetUserOrders(ctx context.Context, email string) ([]models.Order, error)
	CancelOrder(ctx context.Context, orderID string) (*models.Order, error)
}

// ReviewServiceInterface defines the contract for review service
type ReviewServiceInterface interface {
	ListProductReviews(ctx context.Context, productID, sort string, page, limit int) (*services.ReviewPage, error)
	GetUserReview(ctx context.Context, email, productID string) (*models.Review, error)
	CreateReview(ctx context.Context, req *services.ReviewRequest) (*models.Review, error)
	UpdateReview(ctx context.Context, reviewID string, req *services.ReviewRequest) (*models.Review, error)
	DeleteReview(ctx context.Context, reviewID, email string) error
	MarkHelpful(ctx context.Context, reviewID string) error
}

// UserServiceInterface defines the interface for user service operations
type UserServiceInterface interface {
	Register(ctx context.Context, req *services.RegisterRequest) (*services.AuthResponse, error)
	Login(ctx context.Context, req *services.LoginRequest) (*services.AuthResponse, error)
	Upsert(ctx context.Context, req *services.UpsertRequest) (*services.AuthResponse, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*services.AuthResponse, error)
	Logout(ctx context.Context, email string) error
}
