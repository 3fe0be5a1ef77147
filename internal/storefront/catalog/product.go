// Package catalog holds the canonical product type and the browse pipeline
// (filter, sort, paginate) used by the storefront.
package catalog

import (
	"strings"
	"time"
)

// Product is the single internal product representation. Upstream shapes
// are converted with Normalize when they enter the storefront.
type Product struct {
	ID               string            `json:"_id"`
	Title            string            `json:"title"`
	ShortDescription string            `json:"shortDescription,omitempty"`
	FullDescription  string            `json:"fullDescription,omitempty"`
	Price            float64           `json:"price"`
	OriginalPrice    *float64          `json:"originalPrice,omitempty"`
	ImageURL         string            `json:"imageUrl"`
	Category         string            `json:"category,omitempty"`
	Subcategory      string            `json:"subcategory,omitempty"`
	Brand            string            `json:"brand,omitempty"`
	Rating           float64           `json:"rating"`
	ReviewCount      int               `json:"reviewCount"`
	Specifications   map[string]string `json:"specifications,omitempty"`
	Features         []string          `json:"features,omitempty"`
	CreatedBy        string            `json:"createdBy,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
}

// Discount returns the percentage saved against the original price, or 0.
func (p Product) Discount() int {
	if p.OriginalPrice == nil || *p.OriginalPrice <= p.Price || *p.OriginalPrice <= 0 {
		return 0
	}
	return int((*p.OriginalPrice - p.Price) / *p.OriginalPrice * 100)
}

// RawProduct accepts every product shape the backend and older clients
// emit: ids as "_id" or "id", names as "title" or "name", images as
// "imageUrl" or "image".
type RawProduct struct {
	MongoID          string            `json:"_id"`
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Name             string            `json:"name"`
	ShortDescription string            `json:"shortDescription"`
	FullDescription  string            `json:"fullDescription"`
	Description      string            `json:"description"`
	Price            float64           `json:"price"`
	OriginalPrice    *float64          `json:"originalPrice"`
	ImageURL         string            `json:"imageUrl"`
	Image            string            `json:"image"`
	Category         string            `json:"category"`
	Subcategory      string            `json:"subcategory"`
	Brand            string            `json:"brand"`
	Rating           float64           `json:"rating"`
	ReviewCount      int               `json:"reviewCount"`
	Specifications   map[string]string `json:"specifications"`
	Features         []string          `json:"features"`
	CreatedBy        string            `json:"createdBy"`
	CreatedAt        time.Time         `json:"createdAt"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// Normalize converts an upstream product into the canonical Product.
func Normalize(raw RawProduct) Product {
	return Product{
		ID:               firstNonEmpty(raw.MongoID, raw.ID),
		Title:            firstNonEmpty(raw.Title, raw.Name),
		ShortDescription: firstNonEmpty(raw.ShortDescription, raw.Description),
		FullDescription:  raw.FullDescription,
		Price:            raw.Price,
		OriginalPrice:    raw.OriginalPrice,
		ImageURL:         firstNonEmpty(raw.ImageURL, raw.Image),
		Category:         raw.Category,
		Subcategory:      raw.Subcategory,
		Brand:            raw.Brand,
		Rating:           raw.Rating,
		ReviewCount:      raw.ReviewCount,
		Specifications:   raw.Specifications,
		Features:         raw.Features,
		CreatedBy:        raw.CreatedBy,
		CreatedAt:        raw.CreatedAt,
	}
}

func NormalizeAll(raw []RawProduct) []Product {
	out := make([]Product, 0, len(raw))
	for _, r := range raw {
		out = append(out, Normalize(r))
	}
	return out
}
