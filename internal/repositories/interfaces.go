package repositories

import (
	"context"
	"errors"

	"golang-storefront/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned by every repository when the record does not exist.
var ErrNotFound = errors.New("record not found")

// UserRepository interface for PostgreSQL user operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// SavedListRepository interface for PostgreSQL cart and wishlist storage
type SavedListRepository interface {
	Get(ctx context.Context, kind, email string) (*models.SavedList, error)
	// Upsert replaces the items of (kind, email), creating the row if needed.
	Upsert(ctx context.Context, list *models.SavedList) error
	Delete(ctx context.Context, kind, email string) error
}

// OrderRepository interface for PostgreSQL order operations
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByOrderID(ctx context.Context, orderID string) (*models.Order, error)
	GetByUserEmail(ctx context.Context, email string) ([]models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	// HasDelivered reports whether email has a delivered order containing productID.
	HasDelivered(ctx context.Context, email, productID string) (bool, error)
}

// ProductFilter holds the server-side product filters.
type ProductFilter struct {
	Category    string
	Subcategory string
	Search      string
}

// ProductRepository interface for MongoDB product operations
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Find(ctx context.Context, filter ProductFilter, limit, offset int) ([]models.Product, int64, error)
	GetByCreator(ctx context.Context, email string) ([]models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64, count int) error
}

// ReviewSort orders review listings.
type ReviewSort string

const (
	ReviewSortNewest  ReviewSort = "newest"
	ReviewSortOldest  ReviewSort = "oldest"
	ReviewSortHighest ReviewSort = "highest"
	ReviewSortLowest  ReviewSort = "lowest"
	ReviewSortHelpful ReviewSort = "helpful"
)

// ReviewRepository interface for MongoDB review operations
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	GetByUserAndProduct(ctx context.Context, email, productID string) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListByProduct(ctx context.Context, productID string, sort ReviewSort, limit, offset int) ([]models.Review, int64, error)
	Stats(ctx context.Context, productID string) (*models.ReviewStats, error)
	IncrementHelpful(ctx context.Context, id primitive.ObjectID) error
}
