package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang-storefront/internal/storefront/cart"
	"golang-storefront/internal/storefront/catalog"
	"golang-storefront/internal/storefront/checkout"
	"golang-storefront/internal/storefront/reviews"
	"golang-storefront/internal/storefront/wishlist"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	Method string
	Path   string
	Query  string
	Body   string
	Header http.Header
}

func newTestClient(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Client, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls = append(calls, recorded{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: string(body), Header: r.Header.Clone()})
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient("storefront-api", srv.URL, Options{
		Timeout:         time.Second,
		BreakerFailures: 2,
		BreakerCooldown: time.Minute,
		Logger:          log.New(&bytes.Buffer{}, "", 0),
	})
	require.NoError(t, err)
	return c, &calls
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestListClient_CartRoundTrip(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, map[string]any{"items": []map[string]any{{"_id": "p1", "title": "Headset", "price": 1000, "quantity": 2}}})
		default:
			writeJSON(w, http.StatusOK, map[string]any{"success": true})
		}
	})
	lc := NewListClient[cart.Item](c, "cart", ClearDelete)
	ctx := context.Background()

	items, err := lc.Fetch(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, []cart.Item{{ProductID: "p1", Title: "Headset", Price: 1000, Quantity: 2}}, items)

	require.NoError(t, lc.Replace(ctx, "ana@example.com", nil))
	require.NoError(t, lc.Clear(ctx, "ana@example.com"))

	require.Len(t, *calls, 3)
	assert.Equal(t, "/api/cart/ana@example.com", (*calls)[0].Path)
	assert.Equal(t, http.MethodPut, (*calls)[1].Method)
	assert.JSONEq(t, `{"items":[]}`, (*calls)[1].Body)
	assert.Equal(t, http.MethodDelete, (*calls)[2].Method)
	assert.NotEmpty(t, (*calls)[0].Header.Get(HeaderRequestID))
}

func TestListClient_WishlistClearPutsEmptyList(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	lc := NewListClient[wishlist.Item](c, "wishlist", ClearPut)

	require.NoError(t, lc.Clear(context.Background(), "ana@example.com"))

	require.Len(t, *calls, 1)
	assert.Equal(t, http.MethodPut, (*calls)[0].Method)
	assert.Equal(t, "/api/wishlist/ana@example.com", (*calls)[0].Path)
	assert.JSONEq(t, `{"items":[]}`, (*calls)[0].Body)
}

func TestListClient_FetchNotFoundIsEmpty(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "cart not found"})
	})

	items, err := NewListClient[cart.Item](c, "cart", ClearDelete).Fetch(context.Background(), "new@example.com")

	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClient_APIErrorCarriesMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "rating is required"})
	})

	_, err := NewReviewClient(c).CreateReview(context.Background(), reviews.Submission{})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "rating is required", apiErr.Message)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestClient_BreakerOpensOnServerErrors(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		assert.Error(t, c.Do(ctx, http.MethodGet, "/health", nil, nil, nil))
	}
	err := c.Do(ctx, http.MethodGet, "/health", nil, nil, nil)

	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Len(t, *calls, 2)
}

func TestClient_ClientErrorsDoNotTripBreaker(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for i := 0; i < 4; i++ {
		assert.ErrorIs(t, c.Do(context.Background(), http.MethodGet, "/api/orders/x", nil, nil, nil), ErrNotFound)
	}
	assert.Len(t, *calls, 4)
}

func TestClient_SendsBearerToken(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	c.SetToken("tok-123")

	require.NoError(t, NewCatalogClient(c).Delete(context.Background(), "p1"))

	assert.Equal(t, "Bearer tok-123", (*calls)[0].Header.Get("Authorization"))
}

func TestUserClient_UpsertPresentsProviderSecret(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"access_token": "a", "refresh_token": "r", "expires_in": 3600})
	})
	users := NewUserClient(c, "callback-secret")

	tok, err := users.Upsert(context.Background(), Profile{Email: "ada@example.com", Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "a", tok.AccessToken)

	_, err = users.Login(context.Background(), Credentials{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	require.Len(t, *calls, 2)
	assert.Equal(t, "/api/users", (*calls)[0].Path)
	assert.Equal(t, "callback-secret", (*calls)[0].Header.Get(ProviderSecretHeader))
	assert.Empty(t, (*calls)[1].Header.Get(ProviderSecretHeader))
}

func TestCatalogClient_ListNormalizesBothShapes(t *testing.T) {
	shapes := map[string]any{
		"wrapped": map[string]any{"products": []map[string]any{{"id": "p1", "name": "Camera", "image": "c.png", "price": 100}}},
		"bare":    []map[string]any{{"id": "p1", "name": "Camera", "image": "c.png", "price": 100}},
	}
	for name, payload := range shapes {
		t.Run(name, func(t *testing.T) {
			c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, payload)
			})

			products, err := NewCatalogClient(c).List(context.Background(), catalog.Query{Category: "Electronics", Brand: "Canon"})

			require.NoError(t, err)
			require.Len(t, products, 1)
			assert.Equal(t, "p1", products[0].ID)
			assert.Equal(t, "Camera", products[0].Title)
			assert.Equal(t, "c.png", products[0].ImageURL)
			assert.Equal(t, "category=Electronics&limit=100&page=1", (*calls)[0].Query)
		})
	}
}

func TestOrderClient_PlaceOrder(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]string{"orderId": "ord-1"})
	})

	id, err := NewOrderClient(c).PlaceOrder(context.Background(), checkout.OrderRequest{UserEmail: "ana@example.com", Total: 2100})

	require.NoError(t, err)
	assert.Equal(t, "ord-1", id)
	assert.Equal(t, "/api/orders", (*calls)[0].Path)
	assert.Contains(t, (*calls)[0].Body, `"userEmail":"ana@example.com"`)
}

func TestReviewClient_ProductReviewsQuery(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"reviews":    []map[string]any{{"_id": "r1", "rating": 5}},
			"stats":      map[string]any{"averageRating": 5, "totalReviews": 1, "distribution": map[string]int{"5": 1}},
			"pagination": map[string]any{"page": 1, "limit": 5, "total": 1, "totalPages": 1},
		})
	})

	p, err := NewReviewClient(c).ProductReviews(context.Background(), "p1", reviews.SortHighest, 2, 5)

	require.NoError(t, err)
	assert.Equal(t, "/api/reviews/product/p1", (*calls)[0].Path)
	assert.Equal(t, "limit=5&page=2&sort=highest", (*calls)[0].Query)
	assert.Equal(t, 1, p.Stats.Distribution[5])
	assert.Equal(t, "r1", p.Reviews[0].ID)
}
