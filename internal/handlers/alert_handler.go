package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/dto"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/services"
)

type AlertHandler struct {
	alertService *services.AlertService
}

func NewAlertHandler(alertService *services.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

func (h *AlertHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c, 20, 100)

	alerts, total, err := h.alertService.List(c.UserContext(), c.Query("status"), limit, offset)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAlertStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch alerts",
		})
	}

	return c.JSON(dto.AlertListResponse{
		Success: true, Alerts: alerts, Total: total, Limit: limit, Offset: offset,
	})
}

func (h *AlertHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{
			Success: false, Message: "Invalid alert ID",
		})
	}

	var req dto.UpdateAlertStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	switch err := h.alertService.UpdateStatus(c.UserContext(), id, req.Status); {
	case errors.Is(err, services.ErrInvalidAlertStatus):
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{
			Success: false, Message: err.Error(),
		})
	case errors.Is(err, services.ErrAlertNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.MessageResponse{
			Success: false, Message: "Alert not found",
		})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update alert",
		})
	}

	return c.JSON(dto.MessageResponse{Success: true, Message: "Alert status updated"})
}
