package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/DSEENAIAH/campus-preparation-backend/internal/config"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/database"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/handler"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/identity"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/logger"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/repository"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/router"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/service"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/validator"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Campus Preparation Backend")

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

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Identity Provider ──────────────────────────────────
	idp := identity.NewClient(cfg)

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	testRepo := repository.NewTestRepository(pool)
	resultRepo := repository.NewResultRepository(pool)
	progressRepo := repository.NewProgressRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb, idp)
	studentService := service.NewStudentService(userRepo)
	testService := service.NewTestService(testRepo, rdb, log)
	resultService := service.NewResultService(resultRepo, progressRepo, testService, studentService, rdb, log)
	exportService := service.NewExportService(resultService, log)
	progressService := service.NewProgressService(progressRepo)
	dashboardService := service.NewDashboardService(dashboardRepo, resultRepo, testService)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:          handler.NewAuthHandler(authService, studentService),
		StudentPortal: handler.NewStudentPortalHandler(testService, resultService, progressService),
		StudentMgmt:   handler.NewStudentManagementHandler(studentService, authService),
		Test:          handler.NewTestHandler(testService),
		Result:        handler.NewResultHandler(resultService, exportService),
		Dashboard:     handler.NewDashboardHandler(dashboardService, progressService),
		WS:            handler.NewWSHandler(rdb, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	breakdownWorker := worker.NewBreakdownWorker(resultService, rdb, log)
	go breakdownWorker.Start(workerCtx)

	// ─── Prewarm Redis Caches ─────────────────────────────────────────
	// Load all test definitions into Redis BEFORE accepting traffic.
	// This avoids race conditions from lazy loading under thundering herd.
	if err := testService.PrewarmCache(ctx); err != nil {
		log.Warn().Err(err).Msg("Cache prewarm failed")
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
