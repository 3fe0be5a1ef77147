package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-storefront/configs"
	"golang-storefront/internal/handlers"
	"golang-storefront/internal/middleware"
	"golang-storefront/internal/repositories"
	"golang-storefront/internal/services"
	"golang-storefront/pkg/auth"
	"golang-storefront/pkg/cache"
	"golang-storefront/pkg/database"
	"golang-storefront/pkg/messaging"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config := configs.LoadConfig()

	// Set Gin mode
	gin.SetMode(config.Server.Mode)

	// Initialize database connections
	db, err := database.NewDatabase(config.Database.PostgresURL, config.Database.MongoURL, config.Database.MongoDBName)
	if err != nil {
		log.Fatal("Failed to connect to databases:", err)
	}
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.Migrate(migrateCtx); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	cancel()

	// Initialize Redis cache
	redisCache, err := cache.NewRedisCache(config.Redis.URL, config.Redis.Password, config.Redis.DB)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisCache.Close()

	// Initialize Kafka
	kafkaProducer := messaging.NewKafkaProducer(config.Kafka.Brokers)
	defer kafkaProducer.Close()

	jwtManager := auth.NewJWTManager(config.JWT.SecretKey, config.JWT.ExpiryHours, config.JWT.RefreshExpiryDays)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db.Postgres)
	listRepo := repositories.NewSavedListRepository(db.Postgres)
	orderRepo := repositories.NewOrderRepository(db.Postgres)

	// MongoDB repositories
	productRepo := repositories.NewProductRepository(db.MongoDB)
	reviewRepo := repositories.NewReviewRepository(db.MongoDB)

	// Initialize services
	shipping := services.ShippingRule{
		FlatFee:       config.Checkout.FlatShipping,
		FreeThreshold: config.Checkout.FreeShippingThreshold,
	}
	userService := services.NewUserService(userRepo, jwtManager, redisCache)
	listService := services.NewListService(listRepo)
	productService := services.NewProductService(productRepo, redisCache)
	orderService := services.NewOrderService(orderRepo, kafkaProducer, shipping)
	reviewService := services.NewReviewService(reviewRepo, productRepo, orderRepo, redisCache, kafkaProducer)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	// Initialize Gin router
	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware(config.Server.CORSOrigins))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "golang-storefront",
		})
	})

	api := router.Group("/api")
	handlers.NewUserHandler(userService, config.OAuth.ProviderSecret).RegisterRoutes(api, authMiddleware)
	handlers.NewListHandler(listService).RegisterRoutes(api, authMiddleware)
	handlers.NewProductHandler(productService).RegisterRoutes(api, authMiddleware)
	handlers.NewOrderHandler(orderService).RegisterRoutes(api, authMiddleware)
	handlers.NewReviewHandler(reviewService).RegisterRoutes(api, authMiddleware)

	srv := &http.Server{
		Addr:    ":" + config.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped")
}
