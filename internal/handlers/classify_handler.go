package handlers

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/classifier"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/dto"
)

// RawClassifier is satisfied by *classifier.Client.
type RawClassifier interface {
	Raw(ctx context.Context, kind classifier.Kind, text string) (json.RawMessage, error)
}

type ClassifyHandler struct {
	client RawClassifier
}

func NewClassifyHandler(client RawClassifier) *ClassifyHandler {
	return &ClassifyHandler{client: client}
}

func (h *ClassifyHandler) HateSpeech(c *fiber.Ctx) error {
	return h.forward(c, classifier.KindHate)
}

func (h *ClassifyHandler) Misinformation(c *fiber.Ctx) error {
	return h.forward(c, classifier.KindMisinformation)
}

// forward relays the model response unchanged.
func (h *ClassifyHandler) forward(c *fiber.Ctx, kind classifier.Kind) error {
	var req dto.ClassifyRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ClassifyErrorResponse{Error: "No text provided."})
	}

	raw, err := h.client.Raw(c.UserContext(), kind, req.Text)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ClassifyErrorResponse{
			Error:   "Model service unavailable.",
			Details: err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}
