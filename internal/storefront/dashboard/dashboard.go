// Package dashboard summarises a shopper's order history.
package dashboard

import (
	"slices"
	"time"

	"golang-storefront/internal/storefront/checkout"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Open reports whether an order is still on its way to the shopper.
func (s Status) Open() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped:
		return true
	}
	return false
}

// Order is a placed order as the order history returns it.
type Order struct {
	ID              string                   `json:"_id"`
	OrderID         string                   `json:"orderId"`
	UserEmail       string                   `json:"userEmail"`
	Items           []checkout.OrderLine     `json:"items"`
	ShippingAddress checkout.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   checkout.PaymentMethod   `json:"paymentMethod"`
	Subtotal        float64                  `json:"subtotal"`
	Shipping        float64                  `json:"shipping"`
	Total           float64                  `json:"total"`
	Status          Status                   `json:"status"`
	CreatedAt       time.Time                `json:"createdAt"`
}

type Stats struct {
	TotalOrders     int     `json:"totalOrders"`
	PendingOrders   int     `json:"pendingOrders"`
	CompletedOrders int     `json:"completedOrders"`
	TotalSpent      float64 `json:"totalSpent"`
}

// Summarize counts open and delivered orders and sums every order total.
func Summarize(orders []Order) Stats {
	stats := Stats{TotalOrders: len(orders)}
	for _, o := range orders {
		switch {
		case o.Status.Open():
			stats.PendingOrders++
		case o.Status == StatusDelivered:
			stats.CompletedOrders++
		}
		stats.TotalSpent += o.Total
	}
	return stats
}

// CanCancel reports whether the shopper may still cancel o.
func CanCancel(o Order) bool {
	return o.Status == StatusPending
}

// Recent returns at most n orders, newest first.
func Recent(orders []Order, n int) []Order {
	out := slices.Clone(orders)
	slices.SortStableFunc(out, func(a, b Order) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
