package services

import (
	"context"
	"errors"
	"fmt"

	"golang-storefront/internal/models"
	"golang-storefront/internal/repositories"
)

// ListService stores carts and wishlists as whole lists per user.
type ListService struct {
	listRepo repositories.SavedListRepository
}

func NewListService(listRepo repositories.SavedListRepository) *ListService {
	return &ListService{listRepo: listRepo}
}

// validList checks the list kind and returns the normalized owner email.
func validList(kind, email string) (string, error) {
	if kind != models.ListKindCart && kind != models.ListKindWishlist {
		return "", fmt.Errorf("%w: unknown list %q", ErrInvalidInput, kind)
	}
	email = normalizeEmail(email)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	return email, nil
}

// GetItems returns the stored items. A user with no saved list gets an
// empty one.
func (s *ListService) GetItems(ctx context.Context, kind, email string) (models.JSONArray, error) {
	email, err := validList(kind, email)
	if err != nil {
		return nil, err
	}
	list, err := s.listRepo.Get(ctx, kind, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.JSONArray{}, nil
	}
	if err != nil {
		return nil, err
	}
	if list.Items == nil {
		return models.JSONArray{}, nil
	}
	return list.Items, nil
}

// ReplaceItems overwrites the whole list.
func (s *ListService) ReplaceItems(ctx context.Context, kind, email string, items models.JSONArray) error {
	email, err := validList(kind, email)
	if err != nil {
		return err
	}
	for i, item := range items {
		if id, _ := item["_id"].(string); id == "" {
			return fmt.Errorf("%w: item %d has no _id", ErrInvalidInput, i)
		}
	}
	if items == nil {
		items = models.JSONArray{}
	}
	return s.listRepo.Upsert(ctx, &models.SavedList{Kind: kind, Email: email, Items: items})
}

func (s *ListService) ClearItems(ctx context.Context, kind, email string) error {
	email, err := validList(kind, email)
	if err != nil {
		return err
	}
	return s.listRepo.Delete(ctx, kind, email)
}
