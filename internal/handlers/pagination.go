package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// pagination reads limit and offset, clamping limit to [1, max].
func pagination(c *fiber.Ctx, def, max int) (limit, offset int) {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		limit = def
	}
	if limit > max {
		limit = max
	}
	offset, err = strconv.Atoi(c.Query("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
