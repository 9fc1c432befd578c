package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/dto"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) KPIs(c *fiber.Ctx) error {
	kpis, err := h.dashboardService.KPIs(c.UserContext())
	if err != nil {
		slog.Error("failed to compute dashboard kpis", "component", "dashboard", "request_id", requestID(c), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load dashboard",
		})
	}
	return c.JSON(kpis)
}
