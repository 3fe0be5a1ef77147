package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang-storefront/internal/storefront/catalog"
)

type CatalogClient struct{ c *Client }

func NewCatalogClient(c *Client) *CatalogClient { return &CatalogClient{c: c} }

// List fetches products for the server-side filters of q. The response is
// either {products: [...]} or a bare array; both are normalized.
func (cc *CatalogClient) List(ctx context.Context, q catalog.Query) ([]catalog.Product, error) {
	var raw json.RawMessage
	if err := cc.c.Do(ctx, http.MethodGet, "/api/products", q.ServerValues(), nil, &raw); err != nil {
		return nil, err
	}
	return decodeProducts(raw)
}

func (cc *CatalogClient) Get(ctx context.Context, id string) (catalog.Product, error) {
	var raw catalog.RawProduct
	if err := cc.c.Do(ctx, http.MethodGet, "/api/products/"+id, nil, nil, &raw); err != nil {
		return catalog.Product{}, err
	}
	return catalog.Normalize(raw), nil
}

// ByCreator lists the products a seller has listed.
func (cc *CatalogClient) ByCreator(ctx context.Context, email string) ([]catalog.Product, error) {
	var raw json.RawMessage
	if err := cc.c.Do(ctx, http.MethodGet, "/api/products/user/"+email, nil, nil, &raw); err != nil {
		return nil, err
	}
	return decodeProducts(raw)
}

func (cc *CatalogClient) Create(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	var raw catalog.RawProduct
	if err := cc.c.Do(ctx, http.MethodPost, "/api/products", nil, p, &raw); err != nil {
		return catalog.Product{}, err
	}
	return catalog.Normalize(raw), nil
}

func (cc *CatalogClient) Delete(ctx context.Context, id string) error {
	return cc.c.Do(ctx, http.MethodDelete, "/api/products/"+id, nil, nil, nil)
}

func decodeProducts(raw json.RawMessage) ([]catalog.Product, error) {
	var wrapped struct {
		Products []catalog.RawProduct `json:"products"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		return catalog.NormalizeAll(wrapped.Products), nil
	}
	var bare []catalog.RawProduct
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return catalog.NormalizeAll(bare), nil
}
