package clients

import (
	"context"
	"fmt"
	"net/http"

	"golang-storefront/internal/storefront/checkout"
	"golang-storefront/internal/storefront/dashboard"
)

type OrderClient struct{ c *Client }

func NewOrderClient(c *Client) *OrderClient { return &OrderClient{c: c} }

// PlaceOrder submits req and returns the new order id.
func (oc *OrderClient) PlaceOrder(ctx context.Context, req checkout.OrderRequest) (string, error) {
	var resp struct {
		OrderID string `json:"orderId"`
	}
	if err := oc.c.Do(ctx, http.MethodPost, "/api/orders", nil, req, &resp); err != nil {
		return "", err
	}
	if resp.OrderID == "" {
		return "", fmt.Errorf("place order: response has no orderId")
	}
	return resp.OrderID, nil
}

func (oc *OrderClient) UserOrders(ctx context.Context, email string) ([]dashboard.Order, error) {
	var orders []dashboard.Order
	if err := oc.c.Do(ctx, http.MethodGet, "/api/orders/user/"+email, nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (oc *OrderClient) Get(ctx context.Context, id string) (dashboard.Order, error) {
	var o dashboard.Order
	err := oc.c.Do(ctx, http.MethodGet, "/api/orders/"+id, nil, nil, &o)
	return o, err
}

func (oc *OrderClient) Cancel(ctx context.Context, id string) error {
	return oc.c.Do(ctx, http.MethodDelete, "/api/orders/"+id, nil, nil, nil)
}
