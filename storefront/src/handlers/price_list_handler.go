package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *StorefrontHandler) DownloadPriceList(c *fiber.Ctx) error {
	ctx := c.UserContext()

	file, appErr := h.catalog.PriceList(ctx)
	if appErr != nil {
		return appErr
	}

	h.logger.InfoContext(ctx, "Serving price list",
		slog.String("file", file.Name),
		slog.Int("bytes", len(file.Content)))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.Name+`"`)
	return c.Send(file.Content)
}
