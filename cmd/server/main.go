package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/analytics"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/cache"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/classifier"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/config"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/database"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/logging"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/routes"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/services"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/store"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Static analytics tables (stop words, risk scores, location issues)
	tables, err := analytics.LoadTables(cfg.AnalyticsTablesPath)
	if err != nil {
		slog.Error("failed to load analytics tables", "path", cfg.AnalyticsTablesPath, "error", err)
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.WithDatabase(database.DB)

	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetentionDays, cleanupDone)

	// Report cache (optional)
	var reportCache *cache.ReportCache
	var cachePinger handlers.Pinger
	if cfg.RedisURL != "" {
		reportCache, err = cache.Connect(cfg.RedisURL, cfg.ReportCacheTTL)
		if err != nil {
			slog.Warn("report cache disabled", "error", err)
			reportCache = nil
		} else {
			cachePinger = reportCache
			slog.Info("report cache enabled", "ttl", cfg.ReportCacheTTL.String())
		}
	}

	// Stores
	flaggedStore := store.NewFlaggedStore(database.DB)
	postStore := store.NewPostStore(database.DB)
	analysisStore := store.NewAnalysisStore(database.DB)
	alertStore := store.NewAlertStore(database.DB)

	classifierClient := classifier.New(classifier.Config{
		BaseURL:     cfg.ClassifierBaseURL,
		HatePath:    cfg.ClassifierHatePath,
		MisinfoPath: cfg.ClassifierMisinfoPath,
		Timeout:     cfg.ClassifierTimeout,
		RPM:         cfg.ClassifierRPM,
	})

	// Services
	reportService := services.NewReportService(flaggedStore, analytics.NewAggregator(tables), reportCache)
	intakeService := services.NewIntakeService(flaggedStore)
	ingestService := services.NewIngestService(
		services.NewFixtureSource(cfg.PostsFixturePath),
		postStore, analysisStore, alertStore,
		classifierClient,
		cfg.AlertConfidenceThreshold,
	)
	alertService := services.NewAlertService(alertStore)
	dashboardService := services.NewDashboardService(services.DashboardSources{
		PostCount:         postStore.Count,
		ActiveAlerts:      alertStore.CountActive,
		AverageConfidence: analysisStore.AverageConfidence,
		Platforms:         flaggedStore.DistinctPlatforms,
		PostUpdated:       postStore.LatestUpdate,
		AlertUpdated:      alertStore.LatestUpdate,
	})

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
	app.Use(metrics.Middleware())
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, cfg, routes.Handlers{
		Health:    handlers.NewHealthHandler(database.Ping, cachePinger),
		Reports:   handlers.NewReportHandler(reportService),
		Content:   handlers.NewContentHandler(intakeService),
		Posts:     handlers.NewPostHandler(ingestService),
		Classify:  handlers.NewClassifyHandler(classifierClient),
		Alerts:    handlers.NewAlertHandler(alertService),
		Dashboard: handlers.NewDashboardHandler(dashboardService),
	})

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

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := reportCache.Close(); err != nil {
		slog.Error("cache close error", "error", err)
	}
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
