// Package wishlist keeps the signed-in shopper's saved products. Unlike the
// cart it has no anonymous mode: every mutation needs an identity.
package wishlist

import (
	"context"
	"fmt"

	"golang-storefront/internal/storefront/catalog"
	"golang-storefront/internal/storefront/replica"
	"golang-storefront/internal/storefront/session"
)

type Item struct {
	ProductID string  `json:"_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl"`
	Brand     string  `json:"brand"`
	Category  string  `json:"category"`
	Rating    float64 `json:"rating"`
}

func itemFromProduct(p catalog.Product) Item {
	return Item{
		ProductID: p.ID,
		Title:     p.Title,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Brand:     p.Brand,
		Category:  p.Category,
		Rating:    p.Rating,
	}
}

// Result reports what Toggle did.
type Result int

const (
	Added Result = iota + 1
	Removed
)

func (r Result) String() string {
	if r == Added {
		return "added"
	}
	return "removed"
}

type Wishlist struct {
	r *replica.Replica[Item]
}

// New builds a wishlist. There is no local store; the list only exists
// while a session is present.
func New(remote replica.Remote[Item], opts replica.Options) *Wishlist {
	opts.Name = "wishlist"
	opts.RequireIdentity = true
	return &Wishlist{r: replica.New[Item](nil, remote, opts)}
}

func (w *Wishlist) Start(ctx context.Context) error {
	return w.r.Start(ctx)
}

func (w *Wishlist) SetSession(ctx context.Context, s *session.Session) {
	w.r.SetSession(ctx, s)
}

func indexOf(items []Item, productID string) int {
	for i, it := range items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

// Add saves p. Adding a product that is already saved is a no-op.
func (w *Wishlist) Add(ctx context.Context, p catalog.Product) error {
	if p.ID == "" {
		return fmt.Errorf("add to wishlist: product has no id")
	}
	_, err := w.r.Update(ctx, func(items []Item) []Item {
		if indexOf(items, p.ID) >= 0 {
			return items
		}
		return append(items, itemFromProduct(p))
	})
	return err
}

func (w *Wishlist) Remove(ctx context.Context, productID string) error {
	_, err := w.r.Update(ctx, func(items []Item) []Item {
		if i := indexOf(items, productID); i >= 0 {
			return append(items[:i], items[i+1:]...)
		}
		return items
	})
	return err
}

// Toggle adds p when absent and removes it when present.
func (w *Wishlist) Toggle(ctx context.Context, p catalog.Product) (Result, error) {
	if p.ID == "" {
		return 0, fmt.Errorf("toggle wishlist: product has no id")
	}
	var result Result
	_, err := w.r.Update(ctx, func(items []Item) []Item {
		if i := indexOf(items, p.ID); i >= 0 {
			result = Removed
			return append(items[:i], items[i+1:]...)
		}
		result = Added
		return append(items, itemFromProduct(p))
	})
	if err != nil {
		return 0, err
	}
	return result, nil
}

func (w *Wishlist) Clear(ctx context.Context) error {
	if phase, _ := w.r.Phase(); phase != replica.SyncedRemote && phase != replica.LoadingRemote {
		return session.ErrSignInRequired
	}
	return w.r.Clear(ctx)
}

func (w *Wishlist) Items() []Item {
	return w.r.Snapshot()
}

func (w *Wishlist) Contains(productID string) bool {
	return indexOf(w.r.Snapshot(), productID) >= 0
}

func (w *Wishlist) Count() int {
	return len(w.r.Snapshot())
}

func (w *Wishlist) Subscribe(fn func([]Item)) func() {
	return w.r.Subscribe(fn)
}

func (w *Wishlist) Phase() (replica.Phase, string) {
	return w.r.Phase()
}

func (w *Wishlist) Flush(ctx context.Context) error {
	return w.r.Flush(ctx)
}

func (w *Wishlist) Close() {
	w.r.Close()
}
