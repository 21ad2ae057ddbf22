package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/RisaRezaei/temperature-timeseries/internal/api/http"
	"github.com/RisaRezaei/temperature-timeseries/internal/config"
	"github.com/RisaRezaei/temperature-timeseries/internal/extract"
	"github.com/RisaRezaei/temperature-timeseries/internal/logging"
	"github.com/RisaRezaei/temperature-timeseries/internal/platform"
	"github.com/RisaRezaei/temperature-timeseries/internal/scheduler"
	"github.com/RisaRezaei/temperature-timeseries/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	slog.SetDefault(logging.New(cfg.AppEnv, "temperature-timeseries"))

	// Shared HTTP client for outbound platform calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	client := platform.NewClient(httpClient, cfg.PlatformBaseURL, cfg.PlatformAPIKey)

	// In-memory run store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxRuns, cfg.StoreMaxAge)

	// Core service orchestrating the platform and the run store.
	service := extract.NewService(client, memStore, extract.Params{
		Collection:     cfg.Collection,
		Band:           cfg.Band,
		StationAsset:   cfg.StationAsset,
		RangeStart:     cfg.RangeStart,
		IntervalCount:  cfg.IntervalCount,
		IntervalEvery:  cfg.IntervalEvery,
		IntervalUnit:   cfg.IntervalUnit,
		ScaleMeters:    cfg.ScaleMeters,
		BoundsPadDeg:   cfg.BoundsPadDeg,
		Policy:         cfg.CollisionPolicy,
		ExportFolder:   cfg.ExportFolder,
		FilenamePrefix: cfg.FilenamePrefix,
	})

	// One extraction on startup; further runs come from the scheduler or the
	// API.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RunTimeout)
		defer cancel()

		if run, err := service.Extract(ctx); err != nil {
			slog.Error("startup extraction failed", "run", run.ID, "error", err)
		}
	}()

	// Optional periodic re-extraction.
	sched := scheduler.New(service, cfg.ScheduleInterval, cfg.RunTimeout)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "temperature-timeseries",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "temperature-timeseries",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, cfg.RunTimeout)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("error during shutdown", "error", err)
	}
}
