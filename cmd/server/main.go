package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/course-marketplace/internal/config"
	"github.com/stemsi/course-marketplace/internal/database"
	"github.com/stemsi/course-marketplace/internal/handler"
	"github.com/stemsi/course-marketplace/internal/logger"
	"github.com/stemsi/course-marketplace/internal/middleware"
	"github.com/stemsi/course-marketplace/internal/model"
	"github.com/stemsi/course-marketplace/internal/repository"
	"github.com/stemsi/course-marketplace/internal/router"
	"github.com/stemsi/course-marketplace/internal/service"
	"github.com/stemsi/course-marketplace/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Course Marketplace Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis (optional) ───────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	adminRepo := repository.NewAdminRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	purchaseRepo := repository.NewPurchaseRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg)
	adminAccounts := service.NewAccountService(model.PrincipalAdmin, adminRepo, authService, log)
	userAccounts := service.NewAccountService(model.PrincipalUser, userRepo, authService, log)
	catalogCache := service.NewCatalogCache(rdb, cfg.CatalogCacheTTL, log)
	courseService := service.NewCourseService(courseRepo, catalogCache, log)
	purchaseService := service.NewPurchaseService(purchaseRepo, log)

	// ─── Prewarm Catalog Cache ────────────────────────────────────────
	if catalogCache.Enabled() {
		if _, err := courseService.ListAll(ctx); err != nil {
			log.Warn().Err(err).Msg("Catalog cache prewarm failed")
		}
	}

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		AdminAuth: handler.NewAuthHandler(adminAccounts, log),
		UserAuth:  handler.NewAuthHandler(userAccounts, log),
		Course:    handler.NewCourseHandler(courseService, adminAccounts, log),
		Purchase:  handler.NewPurchaseHandler(purchaseService, userAccounts, log),
		Health:    handler.NewHealthHandler(pool, log),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	authLimiter := middleware.NewRateLimiter(cfg.AuthRateLimit, time.Minute)
	defer authLimiter.Stop()

	r := router.SetupRouter(authService, handlers, authLimiter, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
