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

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"moviereview/docs"
	"moviereview/internal/auth"
	"moviereview/internal/cache"
	"moviereview/internal/config"
	"moviereview/internal/db"
	"moviereview/internal/events"
	"moviereview/internal/handler"
	"moviereview/internal/logging"
	"moviereview/internal/repository"
	"moviereview/internal/router"
	"moviereview/internal/service"
	"moviereview/internal/tmdb"
)

// @title Movie Review API
// @version 1.0
// @description Movie search via TMDb, local movie storage and user reviews with JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(!cfg.IsProduction())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("database init", zap.Error(err))
	}

	if cfg.ResetDB {
		logger.Warn("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			logger.Warn("drop tables", zap.Error(err))
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, logger)
	defer cacheClient.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		logger.Warn("redis unavailable, search results will not be cached", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	cancelPing()

	publisher := events.New(cfg.KafkaBrokers, cfg.KafkaReviewTopic, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("close event publisher", zap.Error(err))
		}
	}()

	jwtService, err := auth.NewJWTService(cfg.JWTSecret)
	if err != nil {
		logger.Fatal("jwt service", zap.Error(err))
	}

	if cfg.TMDBAPIKey == "" {
		logger.Warn("TMDB_API_KEY is empty, movie search will fail")
	}
	searcher := tmdb.NewClient(cfg.TMDBBaseURL, cfg.TMDBAPIKey, cfg.TMDBLanguage, nil)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	movieRepo := repository.NewMovieRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)

	// Services
	authService := service.NewAuthService(userRepo, jwtService)
	movieService := service.NewMovieService(searcher, movieRepo, reviewRepo, cacheClient, cfg.SearchCacheTTL)
	reviewService := service.NewReviewService(reviewRepo, publisher, logger)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.HideBanner = true
	if err := router.Register(
		e,
		logger,
		jwtService,
		handler.NewUserHandler(authService, logger),
		handler.NewMovieHandler(movieService, logger),
		handler.NewReviewHandler(reviewService, logger),
	); err != nil {
		logger.Fatal("router", zap.Error(err))
	}

	logger.Info("swagger documentation available", zap.String("url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html"))

	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
}
