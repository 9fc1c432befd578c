package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/dto"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/services"
)

type ContentHandler struct {
	intakeService *services.IntakeService
}

func NewContentHandler(intakeService *services.IntakeService) *ContentHandler {
	return &ContentHandler{intakeService: intakeService}
}

func (h *ContentHandler) Submit(c *fiber.Ctx) error {
	var req dto.SuspiciousContentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	record, err := h.intakeService.Submit(c.UserContext(), &req)
	if err != nil {
		var ferr services.FieldErrors
		if errors.As(err, &ferr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{
				Success: false, Message: "Validation failed", Errors: ferr,
			})
		}
		slog.Error("failed to save suspicious content", "component", "intake", "request_id", requestID(c), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageResponse{
			Success: false, Message: "Failed to submit report",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{
		Success: true,
		Message: "Report submitted successfully",
		ID:      record.ID.String(),
	})
}

// List handles GET /api/admin/suspicious-content.
func (h *ContentHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c, 20, 100)

	items, total, err := h.intakeService.List(c.UserContext(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch reports",
		})
	}

	return c.JSON(dto.FlaggedContentListResponse{
		Success: true, Items: items, Total: total, Limit: limit, Offset: offset,
	})
}
