package localstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"golang-storefront/internal/storefront/cart"
	"golang-storefront/pkg/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lines = []cart.Item{{ProductID: "p1", Title: "Headset", Price: 1000, Quantity: 2}}

func TestFile_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewFile[cart.Item](t.TempDir(), CartKey)

	items, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, store.Save(ctx, lines))
	items, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, lines, items)

	require.NoError(t, store.Save(ctx, nil))
	items, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFile_WritesCartJSONShape(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewFile[cart.Item](dir, CartKey).Save(context.Background(), lines))

	data, err := os.ReadFile(filepath.Join(dir, "cart.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"_id":"p1","title":"Headset","price":1000,"imageUrl":"","brand":"","quantity":2}]`, string(data))
}

func TestFile_CorruptData(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cart.json"), []byte("{not json"), 0o600))

	_, err := NewFile[cart.Item](dir, CartKey).Load(context.Background())
	assert.Error(t, err)
}

func TestRedis_RoundTrip(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	store := NewRedis[cart.Item](cache.NewRedisCacheWithClient(client), "device-1", CartKey)

	items, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, store.Save(ctx, lines))
	assert.True(t, mr.Exists("local:device-1:cart"))

	items, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, lines, items)
}
