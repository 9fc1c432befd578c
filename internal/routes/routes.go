package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/config"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/middleware"
)

type Handlers struct {
	Health    *handlers.HealthHandler
	Reports   *handlers.ReportHandler
	Content   *handlers.ContentHandler
	Posts     *handlers.PostHandler
	Classify  *handlers.ClassifyHandler
	Alerts    *handlers.AlertHandler
	Dashboard *handlers.DashboardHandler
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Reports
	api.Post("/reports/generate", h.Reports.Generate)
	api.Get("/reports/analytics", h.Reports.Analytics)
	api.Get("/dashboard/kpis", h.Dashboard.KPIs)

	// Public intake: stricter limit, it writes to the database
	api.Post("/suspicious-content", limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}), h.Content.Submit)

	// Posts and classifier
	api.Post("/posts/ingest", h.Posts.Ingest)
	api.Get("/posts", h.Posts.List)
	api.Post("/classify/hate-speech", h.Classify.HateSpeech)
	api.Post("/classify/misinformation", h.Classify.Misinformation)

	// Alerts
	api.Get("/alerts", h.Alerts.List)
	api.Put("/alerts/:id/status", h.Alerts.UpdateStatus)

	// Admin (X-Admin-Token)
	admin := api.Group("/admin", middleware.AdminRequired(cfg))
	admin.Get("/suspicious-content", h.Content.List)
	admin.Delete("/posts", h.Posts.Clear)
}
