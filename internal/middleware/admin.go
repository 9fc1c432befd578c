package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/config"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/dto"
)

const AdminTokenHeader = "X-Admin-Token"

// AdminRequired admits requests carrying the configured admin token. With
// no token configured every admin route is closed.
func AdminRequired(cfg *config.Config) fiber.Handler {
	want := []byte(cfg.AdminToken)

	return func(c *fiber.Ctx) error {
		got := c.Get(AdminTokenHeader)
		if got == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if len(want) == 0 || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}
		return c.Next()
	}
}
