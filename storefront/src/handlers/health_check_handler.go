package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

func (h *StorefrontHandler) HealthCheck(c *fiber.Ctx) error {
	h.logger.DebugContext(c.UserContext(), "Health check requested",
		slog.String("component", "storefront_handler"),
		slog.String("operation", "health_check"))

	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "ok"})
}
