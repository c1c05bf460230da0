package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ZattoxSan23/tienda-catalog/internal/config"
	"github.com/ZattoxSan23/tienda-catalog/internal/delivery/events"
	httpDelivery "github.com/ZattoxSan23/tienda-catalog/internal/delivery/http"
	"github.com/ZattoxSan23/tienda-catalog/internal/delivery/http/handler"
	"github.com/ZattoxSan23/tienda-catalog/internal/pkg/cache"
	"github.com/ZattoxSan23/tienda-catalog/internal/pkg/database"
	"github.com/ZattoxSan23/tienda-catalog/internal/pkg/logger"
	cacheRepo "github.com/ZattoxSan23/tienda-catalog/internal/repository/cache"
	"github.com/ZattoxSan23/tienda-catalog/internal/repository/postgres"
	"github.com/ZattoxSan23/tienda-catalog/internal/usecase/category"
	"github.com/ZattoxSan23/tienda-catalog/internal/usecase/product"
	"github.com/ZattoxSan23/tienda-catalog/internal/usecase/review"

	_ "github.com/ZattoxSan23/tienda-catalog/docs"
)

// @title Tienda Catalog API
// @version 1.0
// @description Product catalog service with categories, filtered product search and reviews.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/ZattoxSan23/tienda-catalog
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @tag.name Categories
// @tag.description Category management endpoints

// @tag.name Products
// @tag.description Product catalog endpoints

// @tag.name Reviews
// @tag.description Review endpoints

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Env)
	appLogger.Info("Starting Tienda Catalog API...")

	appLogger.Info("Connecting to PostgreSQL...")
	db, err := database.WaitForDB(cfg, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL successfully")

	appLogger.Info("Running database migrations...")
	if err := database.RunMigrations(db, cfg.Database.MigrationsDir); err != nil {
		appLogger.Fatal("Failed to run migrations", err)
	}

	appLogger.Info("Connecting to Redis...")
	redisClient, err := cache.WaitForRedis(cfg, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis successfully")

	appLogger.Info("Connecting to NATS...")
	publisher, err := events.NewPublisher(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create NATS publisher", err)
	}
	defer publisher.Close()

	categoryRepo := postgres.NewCategoryRepository(db)
	productRepo := postgres.NewProductRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	redisCache := cacheRepo.NewRedisCache(
		redisClient,
		cfg.Cache.ProductTTL,
		cfg.Cache.CategoryListTTL,
		cfg.Cache.ReviewsListTTL,
	)

	categoryService := category.NewService(categoryRepo, redisCache, publisher, appLogger)
	productService := product.NewService(productRepo, categoryRepo, redisCache, publisher, cfg.Catalog.FeaturedCount, appLogger)
	reviewService := review.NewService(reviewRepo, redisCache, publisher, appLogger)

	categoryHandler := handler.NewCategoryHandler(categoryService, appLogger)
	productHandler := handler.NewProductHandler(productService, appLogger)
	reviewHandler := handler.NewReviewHandler(reviewService, appLogger)

	router := httpDelivery.NewRouter(categoryHandler, productHandler, reviewHandler, cfg, appLogger)
	httpHandler := router.Setup()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Infof("HTTP server listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", err)
	}

	appLogger.Info("Server stopped gracefully")
}
