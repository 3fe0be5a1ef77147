package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"golang-storefront/internal/models"
	"golang-storefront/internal/repositories"
	"golang-storefront/internal/storefront/catalog"
	"golang-storefront/pkg/cache"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	productCachePrefix = "products"
	productCacheTTL    = 15 * time.Minute
	defaultProductPage = 20
	maxProductPage     = 100
)

type ProductService struct {
	productRepo repositories.ProductRepository
	cache       *cache.RedisCache
}

func NewProductService(productRepo repositories.ProductRepository, cache *cache.RedisCache) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		cache:       cache,
	}
}

type ProductQuery struct {
	Category    string `form:"category"`
	Subcategory string `form:"subcategory"`
	Search      string `form:"search"`
	Page        int    `form:"page"`
	Limit       int    `form:"limit"`
}

type ProductPage struct {
	Products   []models.Product `json:"products"`
	Pagination Pagination       `json:"pagination"`
}

type CreateProductRequest struct {
	Title            string            `json:"title" binding:"required"`
	ShortDescription string            `json:"shortDescription"`
	FullDescription  string            `json:"fullDescription"`
	Price            float64           `json:"price" binding:"required,gt=0"`
	OriginalPrice    *float64          `json:"originalPrice,omitempty"`
	ImageURL         string            `json:"imageUrl" binding:"required"`
	Category         string            `json:"category" binding:"required"`
	Subcategory      string            `json:"subcategory" binding:"required"`
	Brand            string            `json:"brand" binding:"required"`
	Specifications   map[string]string `json:"specifications,omitempty"`
	Features         []string          `json:"features,omitempty"`
}

func (s *ProductService) ListProducts(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	page, limit, offset := pageBounds(q.Page, q.Limit, defaultProductPage, maxProductPage)

	// Try cache first
	cacheKey := fmt.Sprintf("list:%s:%s:%s:%d:%d", q.Category, q.Subcategory, strings.ToLower(q.Search), page, limit)
	var cached ProductPage
	if err := s.cache.GetWithPrefix(ctx, productCachePrefix, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		log.Printf("Error reading product cache: %v", err)
	}

	filter := repositories.ProductFilter{Category: q.Category, Subcategory: q.Subcategory, Search: q.Search}
	products, total, err := s.productRepo.Find(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}

	result := &ProductPage{Products: products, Pagination: newPagination(page, limit, total)}
	if err := s.cache.SetWithPrefix(ctx, productCachePrefix, cacheKey, result, productCacheTTL); err != nil {
		log.Printf("Error caching products: %v", err)
	}
	return result, nil
}

func (s *ProductService) GetProductByID(ctx context.Context, productID string) (*models.Product, error) {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrNotFound
	}

	cacheKey := "item:" + productID
	var cached models.Product
	if err := s.cache.GetWithPrefix(ctx, productCachePrefix, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	s.cache.SetWithPrefix(ctx, productCachePrefix, cacheKey, product, productCacheTTL)
	return product, nil
}

func (s *ProductService) GetProductsByCreator(ctx context.Context, email string) ([]models.Product, error) {
	return s.productRepo.GetByCreator(ctx, email)
}

func (s *ProductService) CreateProduct(ctx context.Context, createdBy string, req *CreateProductRequest) (*models.Product, error) {
	category, ok := catalog.FindCategory(req.Category)
	if !ok {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, req.Category)
	}
	if !slices.Contains(category.Subcategories, req.Subcategory) {
		return nil, fmt.Errorf("%w: %q is not a subcategory of %q", ErrInvalidInput, req.Subcategory, req.Category)
	}

	product := &models.Product{
		Title:            strings.TrimSpace(req.Title),
		ShortDescription: req.ShortDescription,
		FullDescription:  req.FullDescription,
		Price:            req.Price,
		OriginalPrice:    req.OriginalPrice,
		ImageURL:         req.ImageURL,
		Category:         req.Category,
		Subcategory:      req.Subcategory,
		Brand:            strings.TrimSpace(req.Brand),
		Specifications:   req.Specifications,
		Features:         req.Features,
		CreatedBy:        createdBy,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	// Clear cache
	s.clearProductCache(ctx)
	return product, nil
}

// DeleteProduct removes a product. Only the seller who listed it may.
func (s *ProductService) DeleteProduct(ctx context.Context, productID, email string) error {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return ErrNotFound
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if product.CreatedBy != email {
		return ErrForbidden
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.clearProductCache(ctx)
	return nil
}

func (s *ProductService) clearProductCache(ctx context.Context) {
	if err := s.cache.InvalidatePrefix(ctx, productCachePrefix); err != nil {
		log.Printf("Error clearing product cache: %v", err)
	}
}
