package shell

import (
	"context"
	"fmt"
	"strconv"

	"golang-storefront/internal/storefront/checkout"
)

func (s *Shell) add(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errUsage
	}
	quantity := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return errUsage
		}
		quantity = n
	}

	p, err := s.Catalog.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if err := s.Cart.Add(ctx, p, quantity); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "added %d x %s (%d in cart)\n", quantity, p.Title, s.Cart.Count())
	return nil
}

func (s *Shell) setQuantity(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return errUsage
	}
	return s.Cart.SetQuantity(ctx, args[0], n)
}

func (s *Shell) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	return s.Cart.Remove(ctx, args[0])
}

func (s *Shell) showCart(context.Context, []string) error {
	items := s.Cart.Items()
	phase, detail := s.Cart.Phase()
	if detail != "" {
		fmt.Fprintf(s.out, "[%s: %s]\n", phase, detail)
	}
	if len(items) == 0 {
		fmt.Fprintln(s.out, "cart is empty")
		return nil
	}

	for _, it := range items {
		fmt.Fprintf(s.out, "%s  %-40s %3d x %10s = %12s\n", it.ProductID, it.Title, it.Quantity, money(it.Price), money(it.LineTotal()))
	}
	subtotal := s.Cart.Total()
	shipping := checkout.ShippingCost(subtotal)
	fmt.Fprintf(s.out, "items %d  subtotal %s  shipping %s  total %s\n",
		s.Cart.Count(), money(subtotal), money(shipping), money(subtotal+shipping))
	return nil
}

func (s *Shell) clearCart(ctx context.Context, _ []string) error {
	if err := s.Cart.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "cart cleared")
	return nil
}

func (s *Shell) toggleWish(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	p, err := s.Catalog.Get(ctx, args[0])
	if err != nil {
		return err
	}
	result, err := s.Wishlist.Toggle(ctx, p)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s %s\n", p.Title, result)
	return nil
}

func (s *Shell) showWishlist(context.Context, []string) error {
	items := s.Wishlist.Items()
	if len(items) == 0 {
		fmt.Fprintln(s.out, "wishlist is empty")
		return nil
	}
	for _, it := range items {
		fmt.Fprintf(s.out, "%s  %-40s %12s\n", it.ProductID, it.Title, money(it.Price))
	}
	return nil
}
