package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/aiabusehotline/hotline-core/internal/config"
	"github.com/aiabusehotline/hotline-core/internal/database"
	"github.com/aiabusehotline/hotline-core/internal/handlers"
	"github.com/aiabusehotline/hotline-core/internal/logging"
	"github.com/aiabusehotline/hotline-core/internal/middleware"
	"github.com/aiabusehotline/hotline-core/internal/notify"
	"github.com/aiabusehotline/hotline-core/internal/responses"
	"github.com/aiabusehotline/hotline-core/internal/routes"
	"github.com/aiabusehotline/hotline-core/internal/screening"
	"github.com/aiabusehotline/hotline-core/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.AdminToken == "" {
		slog.Error("ADMIN_TOKEN environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Canned-response catalog: seed missing defaults, then snapshot the
	// full catalog for in-memory resolution.
	if err := database.SeedResponseTemplates(database.DB); err != nil {
		slog.Error("response template seeding failed", "error", err)
		os.Exit(1)
	}
	templates, err := database.LoadResponseTemplates(database.DB)
	if err != nil {
		slog.Error("response template load failed", "error", err)
		os.Exit(1)
	}
	slog.Info("response templates loaded", "count", len(templates))

	// Database log handler (ERROR+ async batch)
	storeLogHandler := logging.NewStoreHandler(database.DB)
	slog.SetDefault(slog.New(logging.Fanout(logging.StdoutHandler(), storeLogHandler)))

	// Log retention sweeper
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Services
	notifier := notify.New(cfg.NtfyBaseURL, cfg.NtfyTopic, cfg.NtfyTimeout)
	reportService := services.NewReportService(database.DB, responses.NewResolver(templates), notifier)
	adminService := services.NewAdminService(database.DB)

	// Handlers
	reportHandler := handlers.NewReportHandler(reportService)
	adminHandler := handlers.NewAdminHandler(adminService)
	healthHandler := handlers.NewHealthHandler()

	// Background spam screening worker. Without an API key the worker
	// never runs; reports simply stay UNSCREENED.
	var worker *screening.Worker
	if cfg.OpenRouterAPIKey != "" {
		cls := screening.NewOpenRouterClassifier(
			cfg.OpenRouterAPIKey, cfg.OpenRouterBaseURL, cfg.OpenRouterModel, cfg.ScreeningTimeout)
		worker = screening.NewWorker(screening.NewGormStore(database.DB), cls, cfg.WorkerInterval, cfg.WorkerBatchSize)
		worker.Start()
	} else {
		slog.Warn("no OpenRouter API key - spam screening worker disabled")
	}

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, reportHandler, adminHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if worker != nil {
		worker.Stop()
	}
	close(cleanupDone)
	storeLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
