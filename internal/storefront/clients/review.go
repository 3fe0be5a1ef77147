package clients

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"golang-storefront/internal/storefront/reviews"
)

// ReviewClient satisfies reviews.Source.
type ReviewClient struct{ c *Client }

func NewReviewClient(c *Client) *ReviewClient { return &ReviewClient{c: c} }

func (rc *ReviewClient) ProductReviews(ctx context.Context, productID string, sort reviews.Sort, page, limit int) (reviews.Page, error) {
	q := url.Values{}
	q.Set("sort", string(sort))
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var p reviews.Page
	err := rc.c.Do(ctx, http.MethodGet, "/api/reviews/product/"+productID, q, nil, &p)
	return p, err
}

func (rc *ReviewClient) UserReview(ctx context.Context, email, productID string) (*reviews.Review, error) {
	var resp struct {
		Review *reviews.Review `json:"review"`
	}
	if err := rc.c.Do(ctx, http.MethodGet, "/api/reviews/user/"+email+"/product/"+productID, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Review, nil
}

type reviewResponse struct {
	Review reviews.Review `json:"review"`
}

func (rc *ReviewClient) CreateReview(ctx context.Context, sub reviews.Submission) (reviews.Review, error) {
	var resp reviewResponse
	err := rc.c.Do(ctx, http.MethodPost, "/api/reviews", nil, sub, &resp)
	return resp.Review, err
}

func (rc *ReviewClient) UpdateReview(ctx context.Context, id string, sub reviews.Submission) (reviews.Review, error) {
	var resp reviewResponse
	err := rc.c.Do(ctx, http.MethodPut, "/api/reviews/"+id, nil, sub, &resp)
	return resp.Review, err
}

func (rc *ReviewClient) DeleteReview(ctx context.Context, id, email string) error {
	q := url.Values{}
	q.Set("userEmail", email)
	return rc.c.Do(ctx, http.MethodDelete, "/api/reviews/"+id, q, nil, nil)
}

func (rc *ReviewClient) MarkHelpful(ctx context.Context, id string) error {
	return rc.c.Do(ctx, http.MethodPost, "/api/reviews/"+id+"/helpful", nil, nil, nil)
}
