package services

import (
	"context"
	"testing"

	"golang-storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListService_MissingListIsEmpty(t *testing.T) {
	svc := NewListService(newMemoryLists())

	items, err := svc.GetItems(context.Background(), models.ListKindCart, "a@example.com")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestListService_ReplaceAndClear(t *testing.T) {
	ctx := context.Background()
	svc := NewListService(newMemoryLists())

	items := models.JSONArray{
		{"_id": "p1", "title": "Headphones", "price": 1000.0, "quantity": 2.0},
	}
	require.NoError(t, svc.ReplaceItems(ctx, models.ListKindCart, "a@example.com", items))

	got, err := svc.GetItems(ctx, models.ListKindCart, "a@example.com")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0]["_id"])

	// Lists are keyed by kind as well as owner.
	wish, err := svc.GetItems(ctx, models.ListKindWishlist, "a@example.com")
	require.NoError(t, err)
	assert.Empty(t, wish)

	require.NoError(t, svc.ClearItems(ctx, models.ListKindCart, "a@example.com"))
	got, err = svc.GetItems(ctx, models.ListKindCart, "a@example.com")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListService_EmailCaseSharesOneList(t *testing.T) {
	ctx := context.Background()
	lists := newMemoryLists()
	svc := NewListService(lists)

	items := models.JSONArray{{"_id": "p1", "quantity": 1.0}}
	require.NoError(t, svc.ReplaceItems(ctx, models.ListKindCart, " Ada@X.com", items))

	got, err := svc.GetItems(ctx, models.ListKindCart, "ada@x.com")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, lists.lists, 1)

	require.NoError(t, svc.ClearItems(ctx, models.ListKindCart, "ADA@X.COM"))
	assert.Empty(t, lists.lists)
}

func TestListService_RejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	svc := NewListService(newMemoryLists())

	_, err := svc.GetItems(ctx, "basket", "a@example.com")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetItems(ctx, models.ListKindCart, " ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.ReplaceItems(ctx, models.ListKindWishlist, "a@example.com", models.JSONArray{{"title": "no id"}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
