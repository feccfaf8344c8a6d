package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	apierrors "github.com/gaolamthuy/storefront/common/apierrors"
	apirequests "github.com/gaolamthuy/storefront/common/apirequests"
	commonvalidator "github.com/gaolamthuy/storefront/common/validator"
	"github.com/gaolamthuy/storefront/storefront/src/models"
)

func (h *StorefrontHandler) GetProductBySlug(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req apirequests.ProductDetailRequest
	if err := c.ParamsParser(&req); err != nil {
		return apierrors.NewApplicationError(apierrors.ErrCodeRequestValidation, "Invalid path parameters", err)
	}
	if err := c.QueryParser(&req); err != nil {
		return apierrors.NewApplicationError(apierrors.ErrCodeRequestValidation, "Invalid query parameters", err)
	}
	if appErr := commonvalidator.ValidateRequest(req); appErr != nil {
		h.logger.WarnContext(ctx, "Rejected product detail request",
			slog.String("slug", req.Slug),
			slog.String("error", appErr.Message))
		return appErr
	}

	h.logger.InfoContext(ctx, "Product detail requested",
		slog.String("operation", "get_product_by_slug"),
		slog.String("slug", req.Slug),
		slog.String("variant", req.Variant))

	detail, appErr := h.catalog.ProductDetail(ctx, req.Slug, models.VariantKey(req.Variant))
	if appErr != nil {
		return appErr
	}
	return respond(c, detail, nil)
}
