package handlers

import (
	"context"

	"golang-storefront/internal/models"
	"golang-storefront/internal/services"

	"github.com/stretchr/testify/mock"
)

type mockListService struct{ mock.Mock }

func (m *mockListService) GetItems(ctx context.Context, kind, email string) (models.JSONArray, error) {
	args := m.Called(ctx, kind, email)
	items, _ := args.Get(0).(models.JSONArray)
	return items, args.Error(1)
}

func (m *mockListService) ReplaceItems(ctx context.Context, kind, email string, items models.JSONArray) error {
	return m.Called(ctx, kind, email, items).Error(0)
}

func (m *mockListService) ClearItems(ctx context.Context, kind, email string) error {
	return m.Called(ctx, kind, email).Error(0)
}

type mockProductService struct{ mock.Mock }

func (m *mockProductService) ListProducts(ctx context.Context, q services.ProductQuery) (*services.ProductPage, error) {
	args := m.Called(ctx, q)
	page, _ := args.Get(0).(*services.ProductPage)
	return page, args.Error(1)
}

func (m *mockProductService) GetProductByID(ctx context.Context, productID string) (*models.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(*models.Product)
	return p, args.Error(1)
}

func (m *mockProductService) GetProductsByCreator(ctx context.Context, email string) ([]models.Product, error) {
	args := m.Called(ctx, email)
	p, _ := args.Get(0).([]models.Product)
	return p, args.Error(1)
}

func (m *mockProductService) CreateProduct(ctx context.Context, createdBy string, req *services.CreateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, createdBy, req)
	p, _ := args.Get(0).(*models.Product)
	return p, args.Error(1)
}

func (m *mockProductService) DeleteProduct(ctx context.Context, productID, email string) error {
	return m.Called(ctx, productID, email).Error(0)
}

type mockOrderService struct{ mock.Mock }

func (m *mockOrderService) CreateOrder(ctx context.Context, req *services.CreateOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, req)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *mockOrderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *mockOrderService) GetUserOrders(ctx context.Context, email string) ([]models.Order, error) {
	args := m.Called(ctx, email)
	o, _ := args.Get(0).([]models.Order)
	return o, args.Error(1)
}

func (m *mockOrderService) CancelOrder(ctx context.Context, orderID string) (*models.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

type mockReviewService struct{ mock.Mock }

func (m *mockReviewService) ListProductReviews(ctx context.Context, productID, sort string, page, limit int) (*services.ReviewPage, error) {
	args := m.Called(ctx, productID, sort, page, limit)
	p, _ := args.Get(0).(*services.ReviewPage)
	return p, args.Error(1)
}

func (m *mockReviewService) GetUserReview(ctx context.Context, email, productID string) (*models.Review, error) {
	args := m.Called(ctx, email, productID)
	r, _ := args.Get(0).(*models.Review)
	return r, args.Error(1)
}

func (m *mockReviewService) CreateReview(ctx context.Context, req *services.ReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*models.Review)
	return r, args.Error(1)
}

func (m *mockReviewService) UpdateReview(ctx context.Context, reviewID string, req *services.ReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, reviewID, req)
	r, _ := args.Get(0).(*models.Review)
	return r, args.Error(1)
}

func (m *mockReviewService) DeleteReview(ctx context.Context, reviewID, email string) error {
	return m.Called(ctx, reviewID, email).Error(0)
}

func (m *mockReviewService) MarkHelpful(ctx context.Context, reviewID string) error {
	return m.Called(ctx, reviewID).Error(0)
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) Register(ctx context.Context, req *services.RegisterRequest) (*services.AuthResponse, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*services.AuthResponse)
	return r, args.Error(1)
}

func (m *mockUserService) Login(ctx context.Context, req *services.LoginRequest) (*services.AuthResponse, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*services.AuthResponse)
	return r, args.Error(1)
}

func (m *mockUserService) Upsert(ctx context.Context, req *services.UpsertRequest) (*services.AuthResponse, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*services.AuthResponse)
	return r, args.Error(1)
}

func (m *mockUserService) RefreshAccessToken(ctx context.Context, refreshToken string) (*services.AuthResponse, error) {
	args := m.Called(ctx, refreshToken)
	r, _ := args.Get(0).(*services.AuthResponse)
	return r, args.Error(1)
}

func (m *mockUserService) Logout(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}
