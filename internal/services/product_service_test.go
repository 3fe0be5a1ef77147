package services

import (
	"context"
	"testing"

	"golang-storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProduct(t *testing.T, repo *memoryProducts, title, category, subcategory, owner string) models.Product {
	t.Helper()
	p := &models.Product{Title: title, Price: 1500, Category: category, Subcategory: subcategory, Brand: "Acme", CreatedBy: owner}
	require.NoError(t, repo.Create(context.Background(), p))
	return *p
}

func TestProductService_ListProductsUsesCache(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryProducts()
	c, _ := newTestCache(t)
	svc := NewProductService(repo, c)

	seedProduct(t, repo, "Studio Headphones", "Electronics", "Headphones", "seller@example.com")
	seedProduct(t, repo, "4K Monitor", "Computer", "Monitors", "seller@example.com")

	page, err := svc.ListProducts(ctx, ProductQuery{Category: "Electronics"})
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Studio Headphones", page.Products[0].Title)
	assert.Equal(t, Pagination{Page: 1, Limit: defaultProductPage, Total: 1, TotalPages: 1}, page.Pagination)

	_, err = svc.ListProducts(ctx, ProductQuery{Category: "Electronics"})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.findCalls)
}

func TestProductService_CreateInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryProducts()
	c, _ := newTestCache(t)
	svc := NewProductService(repo, c)

	_, err := svc.ListProducts(ctx, ProductQuery{})
	require.NoError(t, err)

	created, err := svc.CreateProduct(ctx, "seller@example.com", &CreateProductRequest{
		Title:       " Mirrorless Camera ",
		Price:       45000,
		ImageURL:    "https://img.example.com/cam.jpg",
		Category:    "Electronics",
		Subcategory: "Camera & Photo",
		Brand:       "Lumen",
	})
	require.NoError(t, err)
	assert.Equal(t, "Mirrorless Camera", created.Title)
	assert.Equal(t, "seller@example.com", created.CreatedBy)

	page, err := svc.ListProducts(ctx, ProductQuery{})
	require.NoError(t, err)
	assert.Len(t, page.Products, 1)
	assert.Equal(t, 2, repo.findCalls)
}

func TestProductService_CreateRejectsUnknownTaxonomy(t *testing.T) {
	c, _ := newTestCache(t)
	svc := NewProductService(newMemoryProducts(), c)

	_, err := svc.CreateProduct(context.Background(), "s@example.com", &CreateProductRequest{
		Title: "Thing", Price: 10, Category: "Garden", Subcategory: "Hoses", Brand: "X",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateProduct(context.Background(), "s@example.com", &CreateProductRequest{
		Title: "Thing", Price: 10, Category: "Electronics", Subcategory: "GPU", Brand: "X",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProductService_GetProductByID(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryProducts()
	c, _ := newTestCache(t)
	svc := NewProductService(repo, c)

	p := seedProduct(t, repo, "GPU", "Computer", "GPU", "seller@example.com")

	got, err := svc.GetProductByID(ctx, p.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = svc.GetProductByID(ctx, "not-an-id")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetProductByID(ctx, "64b7f0c2a1b2c3d4e5f60718")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductService_DeleteChecksOwner(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryProducts()
	c, _ := newTestCache(t)
	svc := NewProductService(repo, c)

	p := seedProduct(t, repo, "GPU", "Computer", "GPU", "seller@example.com")

	err := svc.DeleteProduct(ctx, p.ID.Hex(), "other@example.com")
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.DeleteProduct(ctx, p.ID.Hex(), "seller@example.com"))
	mine, err := svc.GetProductsByCreator(ctx, "seller@example.com")
	require.NoError(t, err)
	assert.Empty(t, mine)
}
