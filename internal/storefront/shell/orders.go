package shell

import (
	"context"
	"errors"
	"fmt"

	"golang-storefront/internal/storefront/checkout"
	"golang-storefront/internal/storefront/dashboard"
)

var errNotCancellable = errors.New("only pending orders can be cancelled")

func (s *Shell) checkout(ctx context.Context, args []string) error {
	v, err := pairs(args)
	if err != nil {
		return err
	}
	sess := s.currentSession()

	form := checkout.Prefill(sess)
	for key, field := range map[string]*string{
		"firstName":  &form.FirstName,
		"lastName":   &form.LastName,
		"email":      &form.Email,
		"phone":      &form.Phone,
		"address":    &form.Address,
		"city":       &form.City,
		"division":   &form.Division,
		"postalCode": &form.PostalCode,
	} {
		if v.Has(key) {
			*field = v.Get(key)
		}
	}
	if v.Has("payment") {
		form.PaymentMethod = checkout.PaymentMethod(v.Get("payment"))
	}

	orderID, err := s.Checkout.PlaceOrder(ctx, sess, form)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "order %s placed\n", orderID)
	return nil
}

func (s *Shell) orders(ctx context.Context, _ []string) error {
	sess, err := s.requireSession()
	if err != nil {
		return err
	}
	list, err := s.Orders.UserOrders(ctx, sess.Email)
	if err != nil {
		return err
	}

	stats := dashboard.Summarize(list)
	fmt.Fprintf(s.out, "%d orders, %d open, %d delivered, %s spent\n",
		stats.TotalOrders, stats.PendingOrders, stats.CompletedOrders, money(stats.TotalSpent))
	for _, o := range dashboard.Recent(list, 10) {
		fmt.Fprintf(s.out, "%s  %s  %-10s %12s\n", o.OrderID, o.CreatedAt.Format("2006-01-02"), o.Status, money(o.Total))
	}
	return nil
}

func (s *Shell) order(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	o, err := s.Orders.Get(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "%s  %s  %s\n", o.OrderID, o.Status, o.CreatedAt.Format("2006-01-02 15:04"))
	for _, line := range o.Items {
		fmt.Fprintf(s.out, "  %3d x %-40s %10s\n", line.Quantity, line.Title, money(line.Price))
	}
	addr := o.ShippingAddress
	fmt.Fprintf(s.out, "ship to %s, %s, %s, %s\n", addr.FullName, addr.Address, addr.City, addr.District)
	fmt.Fprintf(s.out, "subtotal %s  shipping %s  total %s  (%s)\n",
		money(o.Subtotal), money(o.Shipping), money(o.Total), o.PaymentMethod)
	return nil
}

func (s *Shell) cancel(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	o, err := s.Orders.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if !dashboard.CanCancel(o) {
		return errNotCancellable
	}
	if err := s.Orders.Cancel(ctx, o.OrderID); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "order %s cancelled\n", o.OrderID)
	return nil
}
