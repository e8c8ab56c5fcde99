package main

import (
	"context"
	"fmt"
	"fraudGuard/app/echo-server/metrics"
	"fraudGuard/app/echo-server/router"
	"fraudGuard/business/counterfeit"
	"fraudGuard/business/fraud"
	"fraudGuard/business/graph"
	"fraudGuard/business/review"
	"fraudGuard/business/rgcn"
	"fraudGuard/business/suspicion"
	"fraudGuard/internal/middleware"
	"fraudGuard/internal/repository/gemini"
	psqlRepo "fraudGuard/internal/repository/postgres"
	redisRepo "fraudGuard/internal/repository/redis"
	"fraudGuard/internal/repository/sidecar"
	"fraudGuard/internal/rest"
	"fraudGuard/pkg/config"
	"fraudGuard/pkg/database"
	redisdb "fraudGuard/pkg/database/redis"
	"fraudGuard/pkg/logger"
	fraudmetrics "fraudGuard/pkg/metrics"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting FraudGuard", "version", cfg.App.Version)

	fraudmetrics.Init()
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		// verdict caching is optional
		logger.Warn("Redis unavailable, suspicion cache disabled", "error", err)
		redisClient = nil
	}
	defer redisdb.CloseRedisClient(redisClient)

	model, err := rgcn.LoadFile(cfg.Model.WeightsPath)
	if err != nil {
		logger.Fatal("Failed to load model weights", "path", cfg.Model.WeightsPath, "error", err)
	}
	logger.Info("Model weights loaded", "path", cfg.Model.WeightsPath, "dims", fmt.Sprintf("%+v", model.Dims()))

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 60*time.Second)
	snapshot, err := psqlRepo.NewGraphRepository(db).LoadSnapshot(loadCtx)
	cancelLoad()
	if err != nil {
		logger.Fatal("Failed to load graph snapshot", "error", err)
	}

	g, err := graph.Assemble(snapshot.Input)
	if err != nil {
		logger.Fatal("Failed to assemble seller graph", "error", err)
	}
	logger.Info("Seller graph assembled", "nodes", g.NumNodes(), "edges", len(g.Edges), "sellers", g.NumSellers)

	sellerIndex, err := fraud.NewSellerIndex(g, snapshot.SellerNames)
	if err != nil {
		logger.Fatal("Failed to index sellers", "error", err)
	}

	geminiRepo, err := gemini.NewGeminiRepository(context.Background(), gemini.GeminiConfig{
		APIKey:      cfg.Gemini.APIKey,
		Model:       cfg.Gemini.Model,
		BaseURL:     cfg.Gemini.BaseURL,
		Temperature: cfg.Gemini.Temperature,
	})
	if err != nil {
		logger.Fatal("Failed to init gemini client", "error", err)
	}

	// Init repo
	suspicionRepo := psqlRepo.NewSuspicionRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	var verdictCache suspicion.VerdictCache
	if redisClient != nil {
		verdictCache = redisRepo.NewSuspicionCache(redisClient, cfg.Redis.SuspicionTTL)
	}
	reviewAnalyzer := sidecar.NewReviewAnalyzerRepository(sidecar.SidecarConfig{
		BaseURL:           cfg.Sidecar.ReviewAnalyzerURL,
		BasicAuthUsername: cfg.Sidecar.BasicAuthUsername,
		BasicAuthPassword: cfg.Sidecar.BasicAuthPassword,
	})
	imageMatcher := sidecar.NewImageMatchRepository(sidecar.SidecarConfig{
		BaseURL:           cfg.Sidecar.ImageMatchURL,
		BasicAuthUsername: cfg.Sidecar.BasicAuthUsername,
		BasicAuthPassword: cfg.Sidecar.BasicAuthPassword,
	})

	// Init service
	fraudService, err := fraud.NewService(model, g, sellerIndex)
	if err != nil {
		logger.Fatal("Failed to init fraud service", "error", err)
	}
	suspicionService := suspicion.NewSuspicionService(geminiRepo, verdictCache, suspicionRepo)
	reviewService := review.NewReviewService(reviewAnalyzer)
	counterfeitService := counterfeit.NewCounterfeitService(imageMatcher, productRepo, sidecar.NewImageFetcher(), cfg.Sidecar.SimilarityThreshold)

	// Init handler
	fraudHandler := rest.NewFraudHandler(fraudService)
	suspicionHandler := rest.NewSuspicionHandler(suspicionService)
	reviewHandler := rest.NewReviewHandler(reviewService)
	counterfeitHandler := rest.NewCounterfeitHandler(counterfeitService)
	healthHandler := rest.NewHealthHandler(cfg.App.Version, sellerIndex.Len())

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.Trace())
	e.Use(metrics.Middleware())
	e.Use(echomiddleware.BodyLimit("12M"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowOrigin,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderXRequestID},
	}))

	// Setup routes
	router.SetOpsRoutes(e, healthHandler)
	api := e.Group("/api/v1")
	router.SetSellerRoutes(api, fraudHandler, suspicionHandler)
	router.SetReviewRoutes(api, reviewHandler)
	router.SetProductRoutes(api, counterfeitHandler)

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

	logger.Info("Server stopped")
}
