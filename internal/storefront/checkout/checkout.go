// Package checkout turns a cart into an order: shipping rules, form
// validation and order assembly.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"

	"golang-storefront/internal/storefront/cart"
	"golang-storefront/internal/storefront/session"
)

const (
	FreeShippingThreshold = 5000.0
	FlatShipping          = 100.0
)

var (
	ErrEmptyCart   = errors.New("cart is empty")
	ErrInvalidForm = errors.New("invalid checkout form")
	ErrOrderFailed = errors.New("failed to place order")
)

// ShippingCost is free at or above the threshold, flat below it.
func ShippingCost(subtotal float64) float64 {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return FlatShipping
}

type PaymentMethod string

const (
	PaymentCOD   PaymentMethod = "cod"
	PaymentBkash PaymentMethod = "bkash"
	PaymentNagad PaymentMethod = "nagad"
	PaymentCard  PaymentMethod = "card"
)

var PaymentMethods = []PaymentMethod{PaymentCOD, PaymentBkash, PaymentNagad, PaymentCard}

var Divisions = []string{"Dhaka", "Chittagong", "Rajshahi", "Khulna", "Barisal", "Sylhet", "Rangpur", "Mymensingh"}

// Form is what the shopper fills in at checkout.
type Form struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Address       string
	City          string
	Division      string
	PostalCode    string
	PaymentMethod PaymentMethod
}

// Prefill seeds the form from the session. The first word of the display
// name becomes the first name, the rest the last name.
func Prefill(s *session.Session) Form {
	f := Form{PaymentMethod: PaymentCOD}
	if !s.Authenticated() {
		return f
	}
	f.Email = s.Email
	first, last, _ := strings.Cut(strings.TrimSpace(s.Name), " ")
	f.FirstName = first
	f.LastName = strings.TrimSpace(last)
	return f
}

// Validate returns the names of missing or invalid fields, wrapped in
// ErrInvalidForm.
func (f Form) Validate() error {
	var bad []string
	required := []struct {
		name, value string
	}{
		{"firstName", f.FirstName},
		{"lastName", f.LastName},
		{"email", f.Email},
		{"phone", f.Phone},
		{"address", f.Address},
		{"city", f.City},
		{"division", f.Division},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			bad = append(bad, r.name)
		}
	}
	if f.Division != "" && !slices.Contains(Divisions, f.Division) {
		bad = append(bad, "division")
	}
	if f.PaymentMethod != "" && !slices.Contains(PaymentMethods, f.PaymentMethod) {
		bad = append(bad, "paymentMethod")
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidForm, strings.Join(bad, ", "))
	}
	return nil
}

type OrderLine struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"imageUrl"`
}

type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	District   string `json:"district"`
	PostalCode string `json:"postalCode"`
}

// OrderRequest is the order submission body.
type OrderRequest struct {
	UserEmail       string          `json:"userEmail"`
	Items           []OrderLine     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	Subtotal        float64         `json:"subtotal"`
	Shipping        float64         `json:"shipping"`
	Total           float64         `json:"total"`
}

// Assemble builds the order for userEmail from the cart lines and form.
func Assemble(userEmail string, items []cart.Item, f Form) (OrderRequest, error) {
	if len(items) == 0 {
		return OrderRequest{}, ErrEmptyCart
	}
	if err := f.Validate(); err != nil {
		return OrderRequest{}, err
	}

	lines := make([]OrderLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, OrderLine{
			ProductID: it.ProductID,
			Title:     it.Title,
			Price:     it.Price,
			Quantity:  it.Quantity,
			ImageURL:  it.ImageURL,
		})
	}
	subtotal := cart.Total(items)
	shipping := ShippingCost(subtotal)
	method := f.PaymentMethod
	if method == "" {
		method = PaymentCOD
	}

	return OrderRequest{
		UserEmail: userEmail,
		Items:     lines,
		ShippingAddress: ShippingAddress{
			FullName:   strings.TrimSpace(f.FirstName + " " + f.LastName),
			Email:      f.Email,
			Phone:      f.Phone,
			Address:    f.Address,
			City:       f.City,
			District:   f.Division,
			PostalCode: f.PostalCode,
		},
		PaymentMethod: method,
		Subtotal:      subtotal,
		Shipping:      shipping,
		Total:         subtotal + shipping,
	}, nil
}

// OrderPlacer submits an order and returns its id.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req OrderRequest) (string, error)
}

// Cart is the part of the cart checkout needs.
type Cart interface {
	Items() []cart.Item
	Clear(ctx context.Context) error
}

type Service struct {
	orders OrderPlacer
	cart   Cart
	logger *log.Logger
}

func NewService(orders OrderPlacer, c Cart, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{orders: orders, cart: c, logger: logger}
}

// PlaceOrder submits the current cart. The cart is cleared only after the
// order has been accepted.
func (s *Service) PlaceOrder(ctx context.Context, sess *session.Session, f Form) (string, error) {
	if !sess.Authenticated() {
		return "", session.ErrSignInRequired
	}
	req, err := Assemble(sess.Email, s.cart.Items(), f)
	if err != nil {
		return "", err
	}

	orderID, err := s.orders.PlaceOrder(ctx, req)
	if err != nil {
		s.logger.Printf("Error placing order for %s: %v", sess.Email, err)
		return "", fmt.Errorf("%w: %v", ErrOrderFailed, err)
	}

	if err := s.cart.Clear(ctx); err != nil {
		s.logger.Printf("Error clearing cart after order %s: %v", orderID, err)
	}
	return orderID, nil
}
