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

	"scentMatch/app/echo-server/router"
	"scentMatch/business/enhancer"
	"scentMatch/business/experience"
	"scentMatch/business/explanation"
	"scentMatch/business/recommender"
	"scentMatch/internal/middleware"
	"scentMatch/internal/repository/openai"
	psqlRepo "scentMatch/internal/repository/postgres"
	redisRepo "scentMatch/internal/repository/redis"
	"scentMatch/internal/rest"
	"scentMatch/pkg/cache"
	"scentMatch/pkg/config"
	"scentMatch/pkg/database"
	redisdb "scentMatch/pkg/database/redis"
	"scentMatch/pkg/logger"
	"scentMatch/pkg/metrics"
	jsonres "scentMatch/pkg/response"

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
	logger.Info("Starting ScentMatch", "version", cfg.App.Version)

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}
	defer redisdb.CloseRedisClient(redisClient)

	// Init completion provider
	openaiRepo := openai.NewOpenAIRepository(openai.OpenAIConfig{
		BaseURL:   cfg.OpenAI.BaseURL,
		APIKey:    cfg.OpenAI.APIKey,
		Model:     cfg.OpenAI.Model,
		MaxTokens: cfg.OpenAI.MaxTokens,
	})

	// Init repo
	fragranceRepo := psqlRepo.NewFragranceRepository(db)
	signalRepo := psqlRepo.NewUserSignalRepository(db)
	interactionRepo := psqlRepo.NewInteractionRepository(db)
	sessionRepo := redisRepo.NewSessionRepository(redisClient)

	// In-process caches. Redis holds sessions; explanations and experience
	// profiles stay local because their reads sit on the request hot path.
	explanationCache := cache.New("explanation")
	experienceCache := cache.New("experience")

	// Init service
	experienceService := experience.NewService(signalRepo, experienceCache, cfg.Experience)
	generator := explanation.NewGenerator(openaiRepo, cfg.Explanation.MaxAttempts, cfg.Explanation.GenerationTimeout)
	batchEnhancer := enhancer.NewEnhancer(generator, explanationCache, cfg.Explanation)
	recommendService := recommender.NewService(
		fragranceRepo,
		experienceService,
		batchEnhancer,
		generator,
		sessionRepo,
		cfg.Explanation,
	)

	// Init handler
	recommendationHandler := rest.NewRecommendationHandler(recommendService, experienceService, interactionRepo, sessionRepo)
	cacheAdminHandler := rest.NewCacheAdminHandler(explanationCache, experienceCache)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetRecommendationRoutes(api, recommendationHandler)
	router.SetCacheAdminRoutes(api, cacheAdminHandler)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, jsonres.Success("OK", "service healthy", echo.Map{
			"name":    cfg.App.Name,
			"version": cfg.App.Version,
		}))
	})

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
