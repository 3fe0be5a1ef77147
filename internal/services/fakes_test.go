package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"golang-storefront/internal/models"
	"golang-storefront/internal/repositories"
	"golang-storefront/pkg/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestCache(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := cache.NewRedisCacheWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { c.Close() })
	return c, mr
}

type published struct {
	topic string
	key   string
	value interface{}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, topic, key string, value interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{topic: topic, key: key, value: value})
	return p.err
}

type memoryUsers struct {
	byEmail map[string]*models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byEmail: map[string]*models.User{}}
}

func (r *memoryUsers) Create(_ context.Context, user *models.User) error {
	user.ID = uuid.New()
	copied := *user
	r.byEmail[user.Email] = &copied
	return nil
}

func (r *memoryUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memoryUsers) Update(_ context.Context, user *models.User) error {
	copied := *user
	r.byEmail[user.Email] = &copied
	return nil
}

type memoryLists struct {
	lists map[string]*models.SavedList
}

func newMemoryLists() *memoryLists {
	return &memoryLists{lists: map[string]*models.SavedList{}}
}

func (r *memoryLists) Get(_ context.Context, kind, email string) (*models.SavedList, error) {
	l, ok := r.lists[kind+":"+email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return l, nil
}

func (r *memoryLists) Upsert(_ context.Context, list *models.SavedList) error {
	r.lists[list.Kind+":"+list.Email] = list
	return nil
}

func (r *memoryLists) Delete(_ context.Context, kind, email string) error {
	delete(r.lists, kind+":"+email)
	return nil
}

type memoryOrders struct {
	orders []*models.Order
}

func (r *memoryOrders) Create(_ context.Context, order *models.Order) error {
	order.ID = uuid.New()
	order.CreatedAt = time.Now()
	r.orders = append(r.orders, order)
	return nil
}

func (r *memoryOrders) GetByOrderID(_ context.Context, orderID string) (*models.Order, error) {
	for _, o := range r.orders {
		if o.OrderID == orderID {
			copied := *o
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memoryOrders) GetByUserEmail(_ context.Context, email string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.orders {
		if o.UserEmail == email {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *memoryOrders) Update(_ context.Context, order *models.Order) error {
	for i, o := range r.orders {
		if o.OrderID == order.OrderID {
			copied := *order
			r.orders[i] = &copied
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *memoryOrders) HasDelivered(_ context.Context, email, productID string) (bool, error) {
	for _, o := range r.orders {
		if o.UserEmail != email || o.Status != models.OrderStatusDelivered {
			continue
		}
		for _, line := range o.Items {
			if line.ProductID == productID {
				return true, nil
			}
		}
	}
	return false, nil
}

type memoryProducts struct {
	products  map[primitive.ObjectID]*models.Product
	findCalls int
}

func newMemoryProducts() *memoryProducts {
	return &memoryProducts{products: map[primitive.ObjectID]*models.Product{}}
}

func (r *memoryProducts) Create(_ context.Context, product *models.Product) error {
	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *memoryProducts) GetByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *memoryProducts) Find(_ context.Context, filter repositories.ProductFilter, limit, offset int) ([]models.Product, int64, error) {
	r.findCalls++
	var matched []models.Product
	for _, p := range r.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Subcategory != "" && p.Subcategory != filter.Subcategory {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, *p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Title < matched[j].Title })
	total := int64(len(matched))
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *memoryProducts) GetByCreator(_ context.Context, email string) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range r.products {
		if p.CreatedBy == email {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memoryProducts) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.products[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *memoryProducts) UpdateRating(_ context.Context, id primitive.ObjectID, rating float64, count int) error {
	p, ok := r.products[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.Rating = rating
	p.ReviewCount = count
	return nil
}

type memoryReviews struct {
	reviews []*models.Review
}

func (r *memoryReviews) Create(_ context.Context, review *models.Review) error {
	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now()
	review.UpdatedAt = review.CreatedAt
	copied := *review
	r.reviews = append(r.reviews, &copied)
	return nil
}

func (r *memoryReviews) GetByID(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	for _, rv := range r.reviews {
		if rv.ID == id {
			copied := *rv
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memoryReviews) GetByUserAndProduct(_ context.Context, email, productID string) (*models.Review, error) {
	for _, rv := range r.reviews {
		if rv.UserEmail == email && rv.ProductID == productID {
			copied := *rv
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memoryReviews) Update(_ context.Context, review *models.Review) error {
	for i, rv := range r.reviews {
		if rv.ID == review.ID {
			copied := *review
			copied.UpdatedAt = time.Now()
			r.reviews[i] = &copied
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *memoryReviews) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, rv := range r.reviews {
		if rv.ID == id {
			r.reviews = append(r.reviews[:i], r.reviews[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *memoryReviews) ListByProduct(_ context.Context, productID string, _ repositories.ReviewSort, limit, offset int) ([]models.Review, int64, error) {
	var matched []models.Review
	for _, rv := range r.reviews {
		if rv.ProductID == productID {
			matched = append(matched, *rv)
		}
	}
	total := int64(len(matched))
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *memoryReviews) Stats(_ context.Context, productID string) (*models.ReviewStats, error) {
	stats := &models.ReviewStats{Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	sum := 0
	for _, rv := range r.reviews {
		if rv.ProductID == productID {
			stats.TotalReviews++
			stats.Distribution[rv.Rating]++
			sum += rv.Rating
		}
	}
	if stats.TotalReviews > 0 {
		stats.AverageRating = float64(sum) / float64(stats.TotalReviews)
	}
	return stats, nil
}

func (r *memoryReviews) IncrementHelpful(_ context.Context, id primitive.ObjectID) error {
	for _, rv := range r.reviews {
		if rv.ID == id {
			rv.Helpful++
			return nil
		}
	}
	return repositories.ErrNotFound
}
