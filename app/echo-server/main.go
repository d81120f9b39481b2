package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"shopsmart/app/echo-server/router"
	"shopsmart/business/catalog"
	"shopsmart/business/events"
	"shopsmart/business/recommendation"
	"shopsmart/business/similarity"
	"shopsmart/business/trending"
	psqlRepo "shopsmart/internal/repository/postgres"
	redisRepo "shopsmart/internal/repository/redis"
	"shopsmart/internal/rest"
	"shopsmart/pkg/config"
	"shopsmart/pkg/database"
	redisdb "shopsmart/pkg/database/redis"
	"shopsmart/pkg/logger"
	"shopsmart/pkg/metrics"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting ShopSmart recommender", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Redis is optional at runtime. Every cache path degrades to a miss,
	// so a failed connection only costs latency.
	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	metrics.Init()

	// Init repo
	eventRepo := psqlRepo.NewEventRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	userRepo := psqlRepo.NewUserRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	trendingRepo := psqlRepo.NewTrendingRepository(db)
	similarityRepo := psqlRepo.NewSimilarityRepository(db)
	cacheRepo := redisRepo.NewCacheRepository(redisClient)

	// Init service
	eventService := events.NewService(eventRepo, productRepo, userRepo, cacheRepo)
	trendingService := trending.NewService(trendingRepo)
	similarityService := similarity.NewService(similarityRepo, productRepo)
	recommendationService := recommendation.NewService(
		similarityService,
		trendingService,
		userRepo,
		eventRepo,
		cacheRepo,
		cfg.Recommender.RecommendationTTL,
		cfg.Recommender.SimilarityTTL,
	)
	catalogService := catalog.NewService(productRepo, categoryRepo)

	// Init handler
	eventHandler := rest.NewEventHandler(eventService)
	recommendationHandler := rest.NewRecommendationHandler(recommendationService)
	catalogHandler := rest.NewCatalogHandler(catalogService)
	healthHandler := rest.NewHealthHandler(db, redisClient)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupEventRoutes(api, eventHandler)
	router.SetupRecommendationRoutes(api, recommendationHandler)
	router.SetupProductRoutes(api, catalogHandler)
	router.SetupCategoryRoutes(api, catalogHandler)

	e.GET("/health", healthHandler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if redisClient != nil {
		redisdb.CloseRedisClient(redisClient)
	}

	logger.Info("Server stopped")
}
