package shell

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang-storefront/internal/storefront/catalog"
)

func (s *Shell) products(ctx context.Context, args []string) error {
	changes, err := pairs(args)
	if err != nil {
		return err
	}
	s.query = s.query.With(changes)

	all, err := s.Catalog.List(ctx, s.query)
	if err != nil {
		return err
	}
	page := catalog.Apply(all, s.query)

	if qs := s.query.Values().Encode(); qs != "" {
		fmt.Fprintf(s.out, "?%s\n", qs)
	}
	for _, p := range page.Products {
		fmt.Fprintf(s.out, "%s  %-40s %12s  %-12s %.1f★\n", p.ID, p.Title, money(p.Price), p.Brand, p.Rating)
	}
	fmt.Fprintf(s.out, "page %d of %d, %d products\n", page.Page, page.TotalPages, page.Total)
	return nil
}

func (s *Shell) product(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	p, err := s.Catalog.Get(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "%s\n%s", p.Title, money(p.Price))
	if d := p.Discount(); d > 0 {
		fmt.Fprintf(s.out, " (was %s, %d%% off)", money(*p.OriginalPrice), d)
	}
	fmt.Fprintf(s.out, "\n%s / %s / %s, %.1f★ from %d reviews\n", p.Category, p.Subcategory, p.Brand, p.Rating, p.ReviewCount)
	if p.FullDescription != "" {
		fmt.Fprintln(s.out, p.FullDescription)
	} else if p.ShortDescription != "" {
		fmt.Fprintln(s.out, p.ShortDescription)
	}

	keys := make([]string, 0, len(p.Specifications))
	for k := range p.Specifications {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(s.out, "  %s: %s\n", k, p.Specifications[k])
	}
	for _, f := range p.Features {
		fmt.Fprintf(s.out, "  - %s\n", f)
	}

	if q := s.Cart.Quantity(p.ID); q > 0 {
		fmt.Fprintf(s.out, "in cart: %d\n", q)
	}
	if s.Wishlist.Contains(p.ID) {
		fmt.Fprintln(s.out, "on wishlist")
	}
	return nil
}

// sell lists a new product under the signed-in seller.
func (s *Shell) sell(ctx context.Context, args []string) error {
	sess, err := s.requireSession()
	if err != nil {
		return err
	}
	v, err := pairs(args)
	if err != nil {
		return err
	}

	price, _ := strconv.ParseFloat(v.Get("price"), 64)
	draft := catalog.ProductDraft{
		Title:            v.Get("title"),
		ShortDescription: v.Get("short"),
		FullDescription:  v.Get("description"),
		Price:            price,
		ImageURL:         v.Get("image"),
		Category:         v.Get("category"),
		Subcategory:      v.Get("subcategory"),
		Brand:            v.Get("brand"),
		Specifications:   strings.ReplaceAll(v.Get("specs"), ";", "\n"),
		Features:         strings.ReplaceAll(v.Get("features"), ";", "\n"),
	}
	if original := v.Get("original"); original != "" {
		if op, err := strconv.ParseFloat(original, 64); err == nil {
			draft.OriginalPrice = &op
		}
	}

	p, err := draft.Build(sess.Email)
	if err != nil {
		return err
	}
	created, err := s.Catalog.Create(ctx, p)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "listed %s as %s\n", created.Title, created.ID)
	return nil
}

func (s *Shell) listings(ctx context.Context, _ []string) error {
	sess, err := s.requireSession()
	if err != nil {
		return err
	}
	mine, err := s.Catalog.ByCreator(ctx, sess.Email)
	if err != nil {
		return err
	}
	if len(mine) == 0 {
		fmt.Fprintln(s.out, "no listings")
	}
	for _, p := range mine {
		fmt.Fprintf(s.out, "%s  %-40s %12s\n", p.ID, p.Title, money(p.Price))
	}
	return nil
}

func (s *Shell) unlist(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if _, err := s.requireSession(); err != nil {
		return err
	}
	if err := s.Catalog.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "removed")
	return nil
}
