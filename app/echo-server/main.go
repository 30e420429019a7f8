package main

import (
	"comicSnap/app/echo-server/metrics"
	"comicSnap/app/echo-server/router"
	"comicSnap/business/catalog"
	"comicSnap/business/preference"
	"comicSnap/business/reading"
	"comicSnap/business/recommendation"
	"comicSnap/internal/middleware"
	"comicSnap/internal/repository/comicvine"
	psqlRepo "comicSnap/internal/repository/postgres"
	redisRepo "comicSnap/internal/repository/redis"
	"comicSnap/internal/rest"
	"comicSnap/pkg/config"
	"comicSnap/pkg/database"
	redisdb "comicSnap/pkg/database/redis"
	"comicSnap/pkg/logger"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting ComicSnap", "version", cfg.App.Version, "env", cfg.App.Environment)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	logger.Info("Database connected successfully")

	// search cache is optional; the service runs without it
	var searchCache catalog.SearchCache
	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, catalog search cache disabled", "error", err)
	} else {
		defer redisdb.CloseRedisClient(redisClient)
		searchCache = redisRepo.NewCatalogCacheRepository(redisClient)
	}

	// Init catalog gateway
	comicVine := comicvine.NewComicVineRepository(comicvine.ComicVineConfig{
		APIKey:    cfg.ComicVine.APIKey,
		BaseURL:   cfg.ComicVine.BaseURL,
		Timeout:   cfg.ComicVine.Timeout,
		UserAgent: cfg.ComicVine.UserAgent,
	})
	catalogGateway := comicvine.NewCircuitBreakerGateway(comicVine, comicvine.DefaultBreakerSettings())

	// Init validate
	validate := validator.New()

	// Init repo
	recoStore := psqlRepo.NewRecommendationStore(db)
	ratingRepo := psqlRepo.NewRatingRepository(db)
	preferenceRepo := psqlRepo.NewPreferenceRepository(db)

	// Init service
	recoService := recommendation.NewService(recoStore, catalogGateway, recommendation.Config{
		StrongEndorsementThreshold: cfg.Recommendation.StrongEndorsementThreshold,
		TopPublisherCount:          cfg.Recommendation.TopPublisherCount,
		CatalogLimit:               cfg.Recommendation.CatalogLimit,
		CatalogTimeout:             cfg.Recommendation.CatalogTimeout,
		FallbackQuery:              cfg.Recommendation.FallbackQuery,
		DefaultLimit:               cfg.Recommendation.DefaultLimit,
	})
	readingService := reading.NewReadingService(ratingRepo, validate)
	preferenceService := preference.NewPreferenceService(preferenceRepo)
	catalogService := catalog.NewCatalogService(catalogGateway, searchCache, cfg.Catalog.MaxSearchResults, cfg.Catalog.CacheTTL)

	// Init handler
	recoHandler := rest.NewRecommendationHandler(recoService)
	readingHandler := rest.NewReadingHandler(readingService)
	preferenceHandler := rest.NewPreferenceHandler(preferenceService)
	catalogHandler := rest.NewCatalogHandler(catalogService)

	metrics.Init()

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceID())
	e.Use(metrics.Middleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	authRequired := middleware.AuthMiddleware(cfg.JWT.SecretKey)

	// Setup routes
	router.SetOpsRoutes(e)
	api := e.Group("/api/v1")
	router.SetRecommendationRoutes(api, recoHandler, authRequired)
	router.SetReadingRoutes(api, readingHandler, authRequired)
	router.SetPreferenceRoutes(api, preferenceHandler, authRequired)
	router.SetCatalogRoutes(api, catalogHandler)

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

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("Server stopped")
}
