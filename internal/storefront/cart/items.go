// Package cart implements the shopping cart on top of the reconciliation
// controller: line-item rules, derived aggregates and query helpers.
package cart

import (
	"golang-storefront/internal/storefront/catalog"
)

// Item is one line item. ProductID is the identity key; Quantity is always
// at least 1.
type Item struct {
	ProductID string  `json:"_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl"`
	Brand     string  `json:"brand"`
	Quantity  int     `json:"quantity"`
}

// LineTotal is unit price times quantity.
func (i Item) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

func itemFromProduct(p catalog.Product, quantity int) Item {
	return Item{
		ProductID: p.ID,
		Title:     p.Title,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Brand:     p.Brand,
		Quantity:  quantity,
	}
}

func indexOf(items []Item, productID string) int {
	for i, it := range items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

// addLine merges quantity into an existing line or appends a new one.
func addLine(items []Item, p catalog.Product, quantity int) []Item {
	if i := indexOf(items, p.ID); i >= 0 {
		items[i].Quantity += quantity
		return items
	}
	return append(items, itemFromProduct(p, quantity))
}

func removeLine(items []Item, productID string) []Item {
	i := indexOf(items, productID)
	if i < 0 {
		return items
	}
	return append(items[:i], items[i+1:]...)
}

func setLineQuantity(items []Item, productID string, quantity int) []Item {
	if quantity < 1 {
		return removeLine(items, productID)
	}
	if i := indexOf(items, productID); i >= 0 {
		items[i].Quantity = quantity
	}
	return items
}

// Count is the sum of quantities.
func Count(items []Item) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// Total is the sum of unit price times quantity.
func Total(items []Item) float64 {
	var total float64
	for _, it := range items {
		total += it.LineTotal()
	}
	return total
}
