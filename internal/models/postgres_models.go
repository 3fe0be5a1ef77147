package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

func scanJSON(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("type assertion to []byte failed")
	}
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	return scanJSON(value, j)
}

// JSONArray stores a list of opaque JSON objects, such as saved cart lines.
type JSONArray []JSONB

func (a JSONArray) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

func (a *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONArray{}
		return nil
	}
	return scanJSON(value, a)
}

// User model - PostgreSQL
// OAuth users have no password hash; credential users always have one.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"not null;uniqueIndex" json:"email"`
	Image        string     `json:"image,omitempty"`
	Provider     string     `gorm:"default:credentials" json:"provider"`
	PasswordHash string     `json:"-"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

const (
	ListKindCart     = "cart"
	ListKindWishlist = "wishlist"
)

// SavedList is a user's cart or wishlist, stored whole. One row per
// (kind, email).
type SavedList struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Kind      string    `gorm:"not null;uniqueIndex:idx_saved_list_owner" json:"kind"`
	Email     string    `gorm:"not null;uniqueIndex:idx_saved_list_owner" json:"email"`
	Items     JSONArray `gorm:"type:jsonb" json:"items"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type OrderLine struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"imageUrl"`
}

type OrderLines []OrderLine

func (l OrderLines) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *OrderLines) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	return scanJSON(value, l)
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

func (a ShippingAddress) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *ShippingAddress) Scan(value interface{}) error {
	if value == nil {
		*a = ShippingAddress{}
		return nil
	}
	return scanJSON(value, a)
}

const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Order model - PostgreSQL (critical transactional data)
type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"_id"`
	OrderID         string          `gorm:"not null;uniqueIndex" json:"orderId"`
	UserEmail       string          `gorm:"not null;index" json:"userEmail"`
	Items           OrderLines      `gorm:"type:jsonb" json:"items"`
	ShippingAddress ShippingAddress `gorm:"type:jsonb" json:"shippingAddress"`
	PaymentMethod   string          `gorm:"not null" json:"paymentMethod"`
	Subtotal        float64         `json:"subtotal"`
	Shipping        float64         `json:"shipping"`
	Total           float64         `json:"total"`
	Status          string          `gorm:"default:pending" json:"status"` // pending, confirmed, processing, shipped, delivered, cancelled
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
