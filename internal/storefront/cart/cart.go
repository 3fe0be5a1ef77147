package cart

import (
	"context"
	"errors"
	"fmt"

	"golang-storefront/internal/storefront/catalog"
	"golang-storefront/internal/storefront/replica"
	"golang-storefront/internal/storefront/session"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Cart is the shopper's cart. It works anonymously against local storage
// and switches to the per-user remote cart when a session appears.
type Cart struct {
	r *replica.Replica[Item]
}

func New(local replica.Local[Item], remote replica.Remote[Item], opts replica.Options) *Cart {
	opts.Name = "cart"
	opts.RequireIdentity = false
	return &Cart{r: replica.New(local, remote, opts)}
}

func (c *Cart) Start(ctx context.Context) error {
	return c.r.Start(ctx)
}

// SetSession is a session.Listener.
func (c *Cart) SetSession(ctx context.Context, s *session.Session) {
	c.r.SetSession(ctx, s)
}

// Add puts quantity units of p in the cart, merging with an existing line.
func (c *Cart) Add(ctx context.Context, p catalog.Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if p.ID == "" {
		return fmt.Errorf("add to cart: product has no id")
	}
	_, err := c.r.Update(ctx, func(items []Item) []Item {
		return addLine(items, p, quantity)
	})
	return err
}

// Remove deletes the line for productID. Absent products are ignored.
func (c *Cart) Remove(ctx context.Context, productID string) error {
	_, err := c.r.Update(ctx, func(items []Item) []Item {
		return removeLine(items, productID)
	})
	return err
}

// SetQuantity replaces a line's quantity. Quantities below 1 remove the line.
// Stock is not checked here; the backend validates at order placement.
func (c *Cart) SetQuantity(ctx context.Context, productID string, quantity int) error {
	_, err := c.r.Update(ctx, func(items []Item) []Item {
		return setLineQuantity(items, productID, quantity)
	})
	return err
}

func (c *Cart) Clear(ctx context.Context) error {
	return c.r.Clear(ctx)
}

func (c *Cart) Items() []Item {
	return c.r.Snapshot()
}

func (c *Cart) Count() int {
	return Count(c.r.Snapshot())
}

func (c *Cart) Total() float64 {
	return Total(c.r.Snapshot())
}

func (c *Cart) Contains(productID string) bool {
	return indexOf(c.r.Snapshot(), productID) >= 0
}

// Quantity returns the quantity for productID, or 0.
func (c *Cart) Quantity(productID string) int {
	items := c.r.Snapshot()
	if i := indexOf(items, productID); i >= 0 {
		return items[i].Quantity
	}
	return 0
}

func (c *Cart) Subscribe(fn func([]Item)) func() {
	return c.r.Subscribe(fn)
}

func (c *Cart) Phase() (replica.Phase, string) {
	return c.r.Phase()
}

func (c *Cart) Flush(ctx context.Context) error {
	return c.r.Flush(ctx)
}

func (c *Cart) Close() {
	c.r.Close()
}
