package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

type Category struct {
	Name          string
	Subcategories []string
}

var Categories = []Category{
	{Name: "Electronics", Subcategories: []string{"Headphones", "Camera & Photo"}},
	{Name: "Computer", Subcategories: []string{"Monitors", "Computer Accessories & Peripherals", "GPU"}},
}

// PriceRange is a preset price filter. Max nil means open-ended.
type PriceRange struct {
	Label string
	Min   float64
	Max   *float64
}

func upTo(v float64) *float64 { return &v }

var PriceRanges = []PriceRange{
	{Label: "Under 5,000", Min: 0, Max: upTo(5000)},
	{Label: "5,000 - 15,000", Min: 5000, Max: upTo(15000)},
	{Label: "15,000 - 50,000", Min: 15000, Max: upTo(50000)},
	{Label: "Over 50,000", Min: 50000},
}

// Apply sets the range on q, or clears it if q already selects it.
func (r PriceRange) Apply(q Query) Query {
	if r.Active(q) {
		q.MinPrice, q.MaxPrice = nil, nil
	} else {
		lo := r.Min
		q.MinPrice = &lo
		q.MaxPrice = nil
		if r.Max != nil {
			hi := *r.Max
			q.MaxPrice = &hi
		}
	}
	q.Page = 1
	return q
}

// Active reports whether q currently selects this range.
func (r PriceRange) Active(q Query) bool {
	if q.MinPrice == nil || *q.MinPrice != r.Min {
		return false
	}
	if r.Max == nil {
		return q.MaxPrice == nil
	}
	return q.MaxPrice != nil && *q.MaxPrice == *r.Max
}

func FindCategory(name string) (Category, bool) {
	for _, c := range Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

var ErrInvalidProduct = errors.New("invalid product")

// ProductDraft is the seller-side form for listing a new product.
type ProductDraft struct {
	Title            string
	ShortDescription string
	FullDescription  string
	Price            float64
	OriginalPrice    *float64
	ImageURL         string
	Category         string
	Subcategory      string
	Brand            string
	// Specifications holds "key: value" lines, Features one feature per line.
	Specifications string
	Features       string
}

// Build validates the draft and returns the product to submit.
func (d ProductDraft) Build(createdBy string) (Product, error) {
	var missing []string
	if strings.TrimSpace(d.Title) == "" {
		missing = append(missing, "title")
	}
	if d.Price <= 0 {
		missing = append(missing, "price")
	}
	if strings.TrimSpace(d.ImageURL) == "" {
		missing = append(missing, "image")
	}
	if strings.TrimSpace(d.Brand) == "" {
		missing = append(missing, "brand")
	}
	cat, ok := FindCategory(d.Category)
	if !ok {
		missing = append(missing, "category")
	} else if !slices.Contains(cat.Subcategories, d.Subcategory) {
		missing = append(missing, "subcategory")
	}
	if len(missing) > 0 {
		return Product{}, fmt.Errorf("%w: %s", ErrInvalidProduct, strings.Join(missing, ", "))
	}

	return Product{
		Title:            strings.TrimSpace(d.Title),
		ShortDescription: strings.TrimSpace(d.ShortDescription),
		FullDescription:  strings.TrimSpace(d.FullDescription),
		Price:            d.Price,
		OriginalPrice:    d.OriginalPrice,
		ImageURL:         d.ImageURL,
		Category:         d.Category,
		Subcategory:      d.Subcategory,
		Brand:            strings.TrimSpace(d.Brand),
		Specifications:   ParseSpecifications(d.Specifications),
		Features:         ParseFeatures(d.Features),
		CreatedBy:        createdBy,
	}, nil
}

// ParseSpecifications reads "key: value" lines; lines missing either side
// are skipped.
func ParseSpecifications(text string) map[string]string {
	specs := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if key != "" && value != "" {
			specs[key] = value
		}
	}
	return specs
}

func ParseFeatures(text string) []string {
	var features []string
	for _, line := range strings.Split(text, "\n") {
		if f := strings.TrimSpace(line); f != "" {
			features = append(features, f)
		}
	}
	return features
}
