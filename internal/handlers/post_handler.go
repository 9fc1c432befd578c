package handlers

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/dto"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/services"
)

type PostHandler struct {
	ingestService *services.IngestService
}

func NewPostHandler(ingestService *services.IngestService) *PostHandler {
	return &PostHandler{ingestService: ingestService}
}

// Ingest handles POST /api/posts/ingest?limit=N (at most 10).
func (h *PostHandler) Ingest(c *fiber.Ctx) error {
	limit, _ := pagination(c, 5, 10)

	res, err := h.ingestService.Ingest(c.UserContext(), limit)
	if err != nil {
		slog.Error("post ingest failed", "component", "ingest", "request_id", requestID(c), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageResponse{
			Success: false, Message: "Failed to ingest posts",
		})
	}

	return c.JSON(dto.IngestResponse{
		Success:  true,
		Message:  fmt.Sprintf("Saved %d of %d fetched posts", res.Saved, res.Fetched),
		Fetched:  res.Fetched,
		Saved:    res.Saved,
		Skipped:  res.Skipped,
		Analyses: res.Analyses,
		Alerts:   res.Alerts,
	})
}

func (h *PostHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c, 10, 50)

	posts, total, err := h.ingestService.List(c.UserContext(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch posts",
		})
	}

	return c.JSON(dto.PostListResponse{
		Success: true,
		Posts:   posts,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasNext: int64(offset+limit) < total,
	})
}

// Clear handles DELETE /api/admin/posts.
func (h *PostHandler) Clear(c *fiber.Ctx) error {
	n, err := h.ingestService.Clear(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to clear posts",
		})
	}

	return c.JSON(dto.MessageResponse{
		Success: true, Message: fmt.Sprintf("Deleted %d posts", n),
	})
}
