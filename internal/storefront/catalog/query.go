package catalog

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortRating    SortOrder = "rating"
	SortName      SortOrder = "name"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
	// FetchLimit is how many products are requested from the backend before
	// the client-side price/brand filters run.
	FetchLimit = 100
)

// Query is the browse state, round-tripped through URL parameters.
type Query struct {
	Category    string
	Subcategory string
	Search      string
	MinPrice    *float64
	MaxPrice    *float64
	Brand       string
	Sort        SortOrder
	Page        int
	Limit       int
}

// Page is one page of browse results.
type Page struct {
	Products   []Product `json:"products"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"totalPages"`
}

func parseFloat(v string) *float64 {
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

func ParseQuery(v url.Values) Query {
	q := Query{
		Category:    v.Get("category"),
		Subcategory: v.Get("subcategory"),
		Search:      v.Get("search"),
		MinPrice:    parseFloat(v.Get("minPrice")),
		MaxPrice:    parseFloat(v.Get("maxPrice")),
		Brand:       v.Get("brand"),
		Sort:        SortOrder(v.Get("sort")),
	}
	q.Page, _ = strconv.Atoi(v.Get("page"))
	q.Limit, _ = strconv.Atoi(v.Get("limit"))
	return q.normalized()
}

func (q Query) normalized() Query {
	if q.Sort == "" {
		q.Sort = SortNewest
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageSize
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	return q
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Values renders the full browse state; empty filters are omitted.
func (q Query) Values() url.Values {
	q = q.normalized()
	v := url.Values{}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("category", q.Category)
	set("subcategory", q.Subcategory)
	set("search", q.Search)
	if q.MinPrice != nil {
		v.Set("minPrice", formatFloat(*q.MinPrice))
	}
	if q.MaxPrice != nil {
		v.Set("maxPrice", formatFloat(*q.MaxPrice))
	}
	set("brand", q.Brand)
	if q.Sort != SortNewest {
		v.Set("sort", string(q.Sort))
	}
	v.Set("page", strconv.Itoa(q.Page))
	return v
}

// ServerValues renders only the filters the backend evaluates. Price, brand
// and sort are applied client-side by Apply.
func (q Query) ServerValues() url.Values {
	q = q.normalized()
	v := url.Values{}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Subcategory != "" {
		v.Set("subcategory", q.Subcategory)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	v.Set("page", "1")
	v.Set("limit", strconv.Itoa(FetchLimit))
	return v
}

// With applies filter changes from v (empty values clear a filter). Unless v
// names a page, the result starts again at page 1.
func (q Query) With(v url.Values) Query {
	merged := q.Values()
	for k, vals := range v {
		if len(vals) == 0 || vals[0] == "" {
			merged.Del(k)
			continue
		}
		merged.Set(k, vals[0])
	}
	if _, ok := v["page"]; !ok {
		merged.Set("page", "1")
	}
	out := ParseQuery(merged)
	out.Limit = q.Limit
	return out.normalized()
}

// Active reports whether any filter is set.
func (q Query) Active() bool {
	return q.Category != "" || q.Subcategory != "" || q.Search != "" ||
		q.MinPrice != nil || q.MaxPrice != nil || q.Brand != ""
}

func (q Query) matches(p Product) bool {
	if q.MinPrice != nil && p.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && p.Price > *q.MaxPrice {
		return false
	}
	if q.Brand != "" && !strings.EqualFold(p.Brand, q.Brand) {
		return false
	}
	return true
}

func compareFor(order SortOrder) func(a, b Product) int {
	switch order {
	case SortPriceLow:
		return func(a, b Product) int { return cmpFloat(a.Price, b.Price) }
	case SortPriceHigh:
		return func(a, b Product) int { return cmpFloat(b.Price, a.Price) }
	case SortRating:
		return func(a, b Product) int { return cmpFloat(b.Rating, a.Rating) }
	case SortName:
		return func(a, b Product) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	default:
		return nil
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Apply filters, sorts and paginates products. The input is not modified.
func Apply(products []Product, q Query) Page {
	q = q.normalized()

	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if q.matches(p) {
			filtered = append(filtered, p)
		}
	}

	if cmp := compareFor(q.Sort); cmp != nil {
		slices.SortStableFunc(filtered, cmp)
	}

	total := len(filtered)
	totalPages := (total + q.Limit - 1) / q.Limit
	if totalPages < 1 {
		totalPages = 1
	}

	// Pages past the end are empty. Checking before multiplying keeps huge
	// page numbers from overflowing.
	products = []Product{}
	if q.Page <= totalPages {
		start := (q.Page - 1) * q.Limit
		end := min(start+q.Limit, total)
		products = filtered[start:end]
	}

	return Page{
		Products:   products,
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: totalPages,
	}
}
