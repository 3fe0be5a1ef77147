package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang-storefront/internal/storefront/reviews"
)

func (s *Shell) feed(productID string) *reviews.Feed {
	f, ok := s.feeds[productID]
	if !ok {
		f = reviews.NewFeed(s.Reviews, productID)
		s.feeds[productID] = f
	}
	return f
}

func (s *Shell) reviews(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errUsage
	}
	f := s.feed(args[0])

	var err error
	if len(args) == 2 {
		err = f.SetSort(ctx, reviews.ParseSort(args[1]))
	} else {
		err = f.Load(ctx)
	}
	if err != nil {
		return err
	}
	if err := f.LoadMine(ctx, s.currentSession()); err != nil {
		return err
	}
	s.printFeed(f)
	return nil
}

func (s *Shell) moreReviews(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	f := s.feed(args[0])
	if !f.HasMore() {
		fmt.Fprintln(s.out, "no more reviews")
		return nil
	}
	if err := f.LoadMore(ctx); err != nil {
		return err
	}
	s.printFeed(f)
	return nil
}

func (s *Shell) printFeed(f *reviews.Feed) {
	stats := f.Stats()
	fmt.Fprintf(s.out, "%.1f★ from %d reviews (sorted by %s)\n", stats.AverageRating, stats.TotalReviews, f.Sort())
	for star := 5; star >= 1; star-- {
		fmt.Fprintf(s.out, "  %d★ %3.0f%%\n", star, stats.Share(star)*100)
	}
	for _, r := range f.Reviews() {
		badge := ""
		if r.Verified {
			badge = " [verified]"
		}
		if r.Edited() {
			badge += " (edited)"
		}
		fmt.Fprintf(s.out, "%s  %d★ %s by %s%s, %d found helpful\n", r.ID, r.Rating, r.Title, r.UserName, badge, r.Helpful)
		if r.Comment != "" {
			fmt.Fprintf(s.out, "    %s\n", r.Comment)
		}
	}
	if mine := f.Mine(); mine != nil {
		fmt.Fprintf(s.out, "your review: %d★ %s\n", mine.Rating, mine.Title)
	}
	if f.HasMore() {
		fmt.Fprintln(s.out, "more available")
	}
}

// review takes "<title words> | <comment words>" after the rating.
func (s *Shell) review(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	rating, err := strconv.Atoi(args[1])
	if err != nil {
		return errUsage
	}
	title, comment, _ := strings.Cut(strings.Join(args[2:], " "), "|")

	sess := s.currentSession()
	f := s.feed(args[0])
	if err := f.LoadMine(ctx, sess); err != nil {
		return err
	}
	saved, err := f.Submit(ctx, sess, reviews.Draft{
		Rating:  rating,
		Title:   strings.TrimSpace(title),
		Comment: strings.TrimSpace(comment),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "review %s saved\n", saved.ID)
	return nil
}

func (s *Shell) unreview(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	sess := s.currentSession()
	f := s.feed(args[0])
	if err := f.LoadMine(ctx, sess); err != nil {
		return err
	}
	if err := f.Delete(ctx, sess); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "review deleted")
	return nil
}

func (s *Shell) helpful(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	if err := s.feed(args[0]).MarkHelpful(ctx, s.currentSession(), args[1]); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "thanks for the feedback")
	return nil
}
