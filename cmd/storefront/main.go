package main

import (
	"context"
	"io"
	"log"
	"os"

	"golang-storefront/configs"
	"golang-storefront/internal/storefront/cart"
	"golang-storefront/internal/storefront/checkout"
	"golang-storefront/internal/storefront/clients"
	"golang-storefront/internal/storefront/localstore"
	"golang-storefront/internal/storefront/replica"
	"golang-storefront/internal/storefront/session"
	"golang-storefront/internal/storefront/shell"
	"golang-storefront/internal/storefront/wishlist"
	"golang-storefront/pkg/auth"
	"golang-storefront/pkg/cache"
)

func main() {
	config := configs.LoadConfig()
	logger := log.New(os.Stderr, "storefront ", log.LstdFlags)

	ctx := context.Background()

	api, err := clients.NewClient("storefront-api", config.Storefront.APIBaseURL, clients.Options{
		Timeout:         config.Storefront.RequestTimeout,
		BreakerFailures: uint32(config.Storefront.BreakerFailures),
		BreakerCooldown: config.Storefront.BreakerCooldown,
		Logger:          logger,
	})
	if err != nil {
		log.Fatal("Failed to create API client:", err)
	}

	// Anonymous cart storage
	var local replica.Local[cart.Item]
	if config.Storefront.LocalStore == "redis" {
		redisCache, err := cache.NewRedisCache(config.Redis.URL, config.Redis.Password, config.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		defer redisCache.Close()
		local = localstore.NewRedis[cart.Item](redisCache, config.Storefront.DeviceID, localstore.CartKey)
	} else {
		local = localstore.NewFile[cart.Item](config.Storefront.LocalStore, localstore.CartKey)
	}

	opts := replica.Options{SyncTimeout: config.Storefront.SyncTimeout, Logger: logger}
	shopperCart := cart.New(local, clients.NewListClient[cart.Item](api, "cart", clients.ClearDelete), opts)
	shopperWishlist := wishlist.New(clients.NewListClient[wishlist.Item](api, "wishlist", clients.ClearPut), opts)
	defer shopperCart.Close()
	defer shopperWishlist.Close()

	if err := shopperCart.Start(ctx); err != nil {
		logger.Printf("Error loading saved cart: %v", err)
	}
	if err := shopperWishlist.Start(ctx); err != nil {
		logger.Printf("Error starting wishlist: %v", err)
	}

	sessions := session.NewManager()
	sessions.OnChange(shopperCart.SetSession)
	sessions.OnChange(shopperWishlist.SetSession)

	orders := clients.NewOrderClient(api)
	sh := shell.New(shell.Deps{
		Sessions: sessions,
		Bridge:   session.NewBridge(auth.NewJWTManager(config.JWT.SecretKey, config.JWT.ExpiryHours, config.JWT.RefreshExpiryDays)),
		Users:    clients.NewUserClient(api, config.OAuth.ProviderSecret),
		Tokens:   api,
		Catalog:  clients.NewCatalogClient(api),
		Cart:     shopperCart,
		Wishlist: shopperWishlist,
		Checkout: checkout.NewService(orders, shopperCart, logger),
		Orders:   orders,
		Reviews:  clients.NewReviewClient(api),
	}, os.Stdout)

	runAndFlush(ctx, sh, os.Stdin, logger, shopperCart, shopperWishlist)
}

type commandRunner interface {
	Run(ctx context.Context, in io.Reader) error
}

type flusher interface {
	Flush(ctx context.Context) error
}

// runAndFlush runs the shell until input ends, then lets queued cart and
// wishlist pushes reach the backend. A read error still flushes.
func runAndFlush(ctx context.Context, sh commandRunner, in io.Reader, logger *log.Logger, shopperCart, shopperWishlist flusher) {
	if err := sh.Run(ctx, in); err != nil {
		logger.Printf("Error reading commands: %v", err)
	}

	if err := shopperCart.Flush(ctx); err != nil {
		logger.Printf("Error syncing cart: %v", err)
	}
	if err := shopperWishlist.Flush(ctx); err != nil {
		logger.Printf("Error syncing wishlist: %v", err)
	}
}
