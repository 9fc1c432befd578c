package handlers

import (
	"errors"
	"log/slog"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/analytics"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/dto"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Generate handles POST /api/reports/generate. An empty body is a daily
// report with no filters.
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateReportRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ReportErrorResponse{
				Success: false, Error: "Invalid request body",
			})
		}
	}

	report, err := h.reportService.Generate(c.UserContext(), req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ReportErrorResponse{
			Success: false, Error: reportFailure(c, err),
		})
	}

	return c.JSON(dto.RangeReportResponse{Success: true, Data: report})
}

// Analytics handles GET /api/reports/analytics.
func (h *ReportHandler) Analytics(c *fiber.Ctx) error {
	report, err := h.reportService.Analytics(c.UserContext(), c.Query("period", "24h"), c.Query("content_types"))
	if err != nil {
		var verr *analytics.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{
				Success: false, Message: verr.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ReportErrorResponse{
			Success: false, Error: reportFailure(c, err),
		})
	}

	return c.JSON(dto.AnalyticsReportResponse{Success: true, Report: report})
}

// reportFailure logs and reports a failed report and returns the message
// shown to the client. Store and internal details stay server-side.
func reportFailure(c *fiber.Ctx, err error) string {
	slog.Error("report generation failed",
		"component", "reports",
		"request_id", requestID(c),
		"path", c.Path(),
		"error", err.Error(),
	)
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}

	var cerr *services.ComputationError
	if errors.As(err, &cerr) {
		return "Failed to generate report: " + cerr.Op + " step failed"
	}
	return "Failed to generate report"
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
