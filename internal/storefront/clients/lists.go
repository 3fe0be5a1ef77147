package clients

import (
	"context"
	"errors"
	"net/http"
)

// ClearMode selects how a saved list is emptied remotely.
type ClearMode int

const (
	// ClearDelete sends DELETE to the list resource.
	ClearDelete ClearMode = iota
	// ClearPut replaces the list with an empty one.
	ClearPut
)

type listBody[T any] struct {
	Items []T `json:"items"`
}

// ListClient is the per-user saved list resource (/api/cart/:email,
// /api/wishlist/:email). It satisfies replica.Remote.
type ListClient[T any] struct {
	c     *Client
	base  string
	clear ClearMode
}

func NewListClient[T any](c *Client, resource string, clear ClearMode) *ListClient[T] {
	return &ListClient[T]{c: c, base: "/api/" + resource + "/", clear: clear}
}

// Fetch returns the stored list. A user without a stored list gets an
// empty one.
func (lc *ListClient[T]) Fetch(ctx context.Context, email string) ([]T, error) {
	var body listBody[T]
	err := lc.c.Do(ctx, http.MethodGet, lc.base+email, nil, nil, &body)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return body.Items, nil
}

func (lc *ListClient[T]) Replace(ctx context.Context, email string, items []T) error {
	if items == nil {
		items = []T{}
	}
	return lc.c.Do(ctx, http.MethodPut, lc.base+email, nil, listBody[T]{Items: items}, nil)
}

func (lc *ListClient[T]) Clear(ctx context.Context, email string) error {
	if lc.clear == ClearPut {
		return lc.Replace(ctx, email, nil)
	}
	return lc.c.Do(ctx, http.MethodDelete, lc.base+email, nil, nil, nil)
}
