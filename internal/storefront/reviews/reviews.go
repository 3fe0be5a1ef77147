// Package reviews drives a product's review section: the paged feed, the
// shopper's own review and helpful votes.
package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang-storefront/internal/storefront/session"
)

const (
	PageSize         = 5
	MaxTitleLength   = 100
	MaxCommentLength = 1000
)

var (
	ErrRatingRequired = errors.New("please select a rating")
	ErrInvalidReview  = errors.New("invalid review")
	ErrNoReview       = errors.New("no review to delete")
	ErrAlreadyMarked  = errors.New("already marked as helpful")
	ErrOwnReview      = errors.New("cannot mark your own review as helpful")
)

type Sort string

const (
	SortNewest  Sort = "newest"
	SortOldest  Sort = "oldest"
	SortHighest Sort = "highest"
	SortLowest  Sort = "lowest"
	SortHelpful Sort = "helpful"
)

// ParseSort falls back to newest for unknown values.
func ParseSort(s string) Sort {
	switch Sort(s) {
	case SortOldest, SortHighest, SortLowest, SortHelpful:
		return Sort(s)
	}
	return SortNewest
}

type Review struct {
	ID        string    `json:"_id"`
	ProductID string    `json:"productId"`
	UserEmail string    `json:"userEmail"`
	UserName  string    `json:"userName"`
	UserImage string    `json:"userImage,omitempty"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title"`
	Comment   string    `json:"comment"`
	Helpful   int       `json:"helpful"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Edited reports whether the review changed after it was first posted.
func (r Review) Edited() bool {
	return !r.UpdatedAt.IsZero() && !r.UpdatedAt.Equal(r.CreatedAt)
}

type Stats struct {
	AverageRating float64     `json:"averageRating"`
	TotalReviews  int         `json:"totalReviews"`
	Distribution  map[int]int `json:"distribution"`
}

// Share returns the fraction of reviews with the given star rating.
func (s Stats) Share(rating int) float64 {
	if s.TotalReviews == 0 {
		return 0
	}
	return float64(s.Distribution[rating]) / float64(s.TotalReviews)
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type Page struct {
	Reviews    []Review   `json:"reviews"`
	Stats      Stats      `json:"stats"`
	Pagination Pagination `json:"pagination"`
}

// Submission is the create/update request body.
type Submission struct {
	ProductID string `json:"productId"`
	UserEmail string `json:"userEmail"`
	UserName  string `json:"userName"`
	UserImage string `json:"userImage,omitempty"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Comment   string `json:"comment"`
}

// Draft is what the shopper types into the review form.
type Draft struct {
	Rating  int
	Title   string
	Comment string
}

func (d Draft) Validate() error {
	if d.Rating == 0 {
		return ErrRatingRequired
	}
	if d.Rating < 1 || d.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidReview)
	}
	if utf8.RuneCountInString(d.Title) > MaxTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidReview, MaxTitleLength)
	}
	if utf8.RuneCountInString(d.Comment) > MaxCommentLength {
		return fmt.Errorf("%w: comment exceeds %d characters", ErrInvalidReview, MaxCommentLength)
	}
	return nil
}

// Source is the review backend.
type Source interface {
	ProductReviews(ctx context.Context, productID string, sort Sort, page, limit int) (Page, error)
	UserReview(ctx context.Context, email, productID string) (*Review, error)
	CreateReview(ctx context.Context, sub Submission) (Review, error)
	UpdateReview(ctx context.Context, id string, sub Submission) (Review, error)
	DeleteReview(ctx context.Context, id, email string) error
	MarkHelpful(ctx context.Context, id string) error
}

// Feed holds the loaded reviews of one product. Pages accumulate until the
// sort changes or the shopper's own review changes, which restart at page 1.
type Feed struct {
	source    Source
	productID string

	mu         sync.Mutex
	sort       Sort
	page       int
	reviews    []Review
	stats      Stats
	pagination Pagination
	mine       *Review
	marked     map[string]bool
}

func NewFeed(source Source, productID string) *Feed {
	return &Feed{
		source:    source,
		productID: productID,
		sort:      SortNewest,
		marked:    make(map[string]bool),
	}
}

// Load fetches the first page for the current sort.
func (f *Feed) Load(ctx context.Context) error {
	f.mu.Lock()
	sort := f.sort
	f.mu.Unlock()
	return f.fetch(ctx, sort, 1)
}

// LoadMore appends the next page. It is a no-op on the last page.
func (f *Feed) LoadMore(ctx context.Context) error {
	f.mu.Lock()
	if !f.hasMoreLocked() {
		f.mu.Unlock()
		return nil
	}
	sort, next := f.sort, f.page+1
	f.mu.Unlock()
	return f.fetch(ctx, sort, next)
}

// SetSort switches the order and reloads from page 1.
func (f *Feed) SetSort(ctx context.Context, sort Sort) error {
	f.mu.Lock()
	f.sort = sort
	f.mu.Unlock()
	return f.fetch(ctx, sort, 1)
}

func (f *Feed) fetch(ctx context.Context, sort Sort, page int) error {
	p, err := f.source.ProductReviews(ctx, f.productID, sort, page, PageSize)
	if err != nil {
		return fmt.Errorf("fetch reviews: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if sort != f.sort {
		return nil
	}
	if page == 1 {
		f.reviews = p.Reviews
	} else {
		f.reviews = append(f.reviews, p.Reviews...)
	}
	f.page = page
	f.stats = p.Stats
	f.pagination = p.Pagination
	return nil
}

// LoadMine fetches the shopper's own review of the product, if any.
func (f *Feed) LoadMine(ctx context.Context, s *session.Session) error {
	if !s.Authenticated() {
		f.mu.Lock()
		f.mine = nil
		f.mu.Unlock()
		return nil
	}
	r, err := f.source.UserReview(ctx, s.Email, f.productID)
	if err != nil {
		return fmt.Errorf("fetch own review: %w", err)
	}
	f.mu.Lock()
	f.mine = r
	f.mu.Unlock()
	return nil
}

// Submit creates the shopper's review, or updates it if one exists.
func (f *Feed) Submit(ctx context.Context, s *session.Session, d Draft) (Review, error) {
	if !s.Authenticated() {
		return Review{}, session.ErrSignInRequired
	}
	if err := d.Validate(); err != nil {
		return Review{}, err
	}

	sub := Submission{
		ProductID: f.productID,
		UserEmail: s.Email,
		UserName:  s.Name,
		UserImage: s.Image,
		Rating:    d.Rating,
		Title:     strings.TrimSpace(d.Title),
		Comment:   strings.TrimSpace(d.Comment),
	}

	f.mu.Lock()
	mine := f.mine
	f.mu.Unlock()

	if mine != nil {
		updated, err := f.source.UpdateReview(ctx, mine.ID, sub)
		if err != nil {
			return Review{}, fmt.Errorf("update review: %w", err)
		}
		f.mu.Lock()
		f.mine = &updated
		for i := range f.reviews {
			if f.reviews[i].ID == updated.ID {
				f.reviews[i] = updated
			}
		}
		f.mu.Unlock()
		return updated, nil
	}

	created, err := f.source.CreateReview(ctx, sub)
	if err != nil {
		return Review{}, fmt.Errorf("create review: %w", err)
	}
	f.mu.Lock()
	f.mine = &created
	f.mu.Unlock()
	return created, f.Load(ctx)
}

// Delete removes the shopper's own review and reloads the feed so the stats
// reflect it.
func (f *Feed) Delete(ctx context.Context, s *session.Session) error {
	if !s.Authenticated() {
		return session.ErrSignInRequired
	}
	f.mu.Lock()
	mine := f.mine
	f.mu.Unlock()
	if mine == nil {
		return ErrNoReview
	}

	if err := f.source.DeleteReview(ctx, mine.ID, s.Email); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	f.mu.Lock()
	f.mine = nil
	kept := f.reviews[:0]
	for _, r := range f.reviews {
		if r.ID != mine.ID {
			kept = append(kept, r)
		}
	}
	f.reviews = kept
	f.mu.Unlock()
	return f.Load(ctx)
}

// MarkHelpful votes for a review once per feed. Shoppers cannot vote for
// their own reviews.
func (f *Feed) MarkHelpful(ctx context.Context, s *session.Session, reviewID string) error {
	f.mu.Lock()
	if f.marked[reviewID] {
		f.mu.Unlock()
		return ErrAlreadyMarked
	}
	for _, r := range f.reviews {
		if r.ID == reviewID && s.Authenticated() && r.UserEmail == s.Email {
			f.mu.Unlock()
			return ErrOwnReview
		}
	}
	f.mu.Unlock()

	if err := f.source.MarkHelpful(ctx, reviewID); err != nil {
		return fmt.Errorf("mark helpful: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.marked[reviewID] = true
	for i := range f.reviews {
		if f.reviews[i].ID == reviewID {
			f.reviews[i].Helpful++
		}
	}
	return nil
}

func (f *Feed) Reviews() []Review {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Review(nil), f.reviews...)
}

func (f *Feed) Stats() Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats
}

func (f *Feed) Sort() Sort {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sort
}

func (f *Feed) Mine() *Review {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mine == nil {
		return nil
	}
	r := *f.mine
	return &r
}

func (f *Feed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMoreLocked()
}

func (f *Feed) hasMoreLocked() bool {
	return f.page > 0 && f.page < f.pagination.TotalPages
}
