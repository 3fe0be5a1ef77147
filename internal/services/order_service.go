package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"golang-storefront/internal/models"
	"golang-storefront/internal/repositories"
	"golang-storefront/pkg/messaging"

	"github.com/google/uuid"
)

var ErrOrderNotCancellable = errors.New("only pending orders can be cancelled")

var paymentMethods = []string{"cod", "bkash", "nagad", "card"}

// ShippingRule is a flat fee waived at or above FreeThreshold.
type ShippingRule struct {
	FlatFee       float64
	FreeThreshold float64
}

func (r ShippingRule) Cost(subtotal float64) float64 {
	if subtotal >= r.FreeThreshold {
		return 0
	}
	return r.FlatFee
}

type OrderService struct {
	orderRepo repositories.OrderRepository
	events    EventPublisher
	shipping  ShippingRule
}

func NewOrderService(orderRepo repositories.OrderRepository, events EventPublisher, shipping ShippingRule) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		events:    events,
		shipping:  shipping,
	}
}

type CreateOrderRequest struct {
	UserEmail       string                 `json:"userEmail" binding:"required"`
	Items           []models.OrderLine     `json:"items" binding:"required"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	Subtotal        float64                `json:"subtotal"`
	Shipping        float64                `json:"shipping"`
	Total           float64                `json:"total"`
}

func (r *CreateOrderRequest) validate() error {
	if len(r.Items) == 0 {
		return fmt.Errorf("%w: order has no items", ErrInvalidInput)
	}
	for _, item := range r.Items {
		if item.ProductID == "" || item.Quantity < 1 || item.Price < 0 {
			return fmt.Errorf("%w: invalid line for product %q", ErrInvalidInput, item.ProductID)
		}
	}

	addr := r.ShippingAddress
	var missing []string
	for name, value := range map[string]string{
		"fullName": addr.FullName,
		"phone":    addr.Phone,
		"address":  addr.Address,
		"city":     addr.City,
		"district": addr.District,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("%w: missing shipping %s", ErrInvalidInput, strings.Join(missing, ", "))
	}

	if r.PaymentMethod == "" {
		r.PaymentMethod = "cod"
	}
	if !slices.Contains(paymentMethods, r.PaymentMethod) {
		return fmt.Errorf("%w: unsupported payment method %q", ErrInvalidInput, r.PaymentMethod)
	}
	return nil
}

// CreateOrder recomputes the totals from the lines and rejects the order if
// the submitted amounts disagree.
func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var subtotal float64
	for _, item := range req.Items {
		subtotal += item.Price * float64(item.Quantity)
	}
	shipping := s.shipping.Cost(subtotal)
	total := subtotal + shipping

	if !sameAmount(subtotal, req.Subtotal) || !sameAmount(shipping, req.Shipping) || !sameAmount(total, req.Total) {
		return nil, fmt.Errorf("%w: totals do not match (expected subtotal %.2f, shipping %.2f, total %.2f)",
			ErrInvalidInput, subtotal, shipping, total)
	}

	order := &models.Order{
		OrderID:         "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10]),
		UserEmail:       req.UserEmail,
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Subtotal:        subtotal,
		Shipping:        shipping,
		Total:           total,
		Status:          models.OrderStatusPending,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, messaging.EventOrderCreated, order)
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderID(ctx, orderID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound
	}
	return order, err
}

func (s *OrderService) GetUserOrders(ctx context.Context, email string) ([]models.Order, error) {
	orders, err := s.orderRepo.GetByUserEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// CancelOrder cancels a pending order.
func (s *OrderService) CancelOrder(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPending {
		return nil, ErrOrderNotCancellable
	}

	order.Status = models.OrderStatusCancelled
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, messaging.EventOrderCancelled, order)
	return order, nil
}

func (s *OrderService) publish(ctx context.Context, eventType string, order *models.Order) {
	event := messaging.OrderEvent{
		Type:      eventType,
		OrderID:   order.OrderID,
		UserEmail: order.UserEmail,
		Total:     order.Total,
		Items:     len(order.Items),
		Timestamp: time.Now(),
	}
	if err := s.events.Publish(ctx, messaging.TopicOrders, order.OrderID, event); err != nil {
		log.Printf("Error publishing %s for %s: %v", eventType, order.OrderID, err)
	}
}
