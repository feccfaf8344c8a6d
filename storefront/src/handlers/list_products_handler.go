package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	apierrors "github.com/gaolamthuy/storefront/common/apierrors"
	apirequests "github.com/gaolamthuy/storefront/common/apirequests"
	commonvalidator "github.com/gaolamthuy/storefront/common/validator"
	"github.com/gaolamthuy/storefront/storefront/src/catalog"
)

func (h *StorefrontHandler) ListProducts(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req apirequests.ListProductsRequest
	if err := c.QueryParser(&req); err != nil {
		return apierrors.NewApplicationError(apierrors.ErrCodeRequestValidation, "Invalid query parameters", err)
	}
	if appErr := commonvalidator.ValidateRequest(req); appErr != nil {
		h.logger.WarnContext(ctx, "Rejected product list query", slog.String("error", appErr.Message))
		return appErr
	}
	key, err := catalog.ParseSecondaryKey(req.Sort)
	if err != nil {
		return apierrors.NewApplicationError(apierrors.ErrCodeRequestValidation, err.Error(), err)
	}

	filter := catalog.Filter{Categories: req.Categories, Text: req.Query, Featured: req.Featured}
	for _, raw := range req.Attributes {
		attr, err := catalog.ParseAttributeFilter(raw)
		if err != nil {
			return apierrors.NewApplicationError(apierrors.ErrCodeRequestValidation, err.Error(), err)
		}
		filter.Attributes = append(filter.Attributes, attr)
	}

	h.logger.InfoContext(ctx, "Product list requested",
		slog.String("operation", "list_products"),
		slog.String("sort", key.String()),
		slog.Any("categories", req.Categories),
		slog.String("q", req.Query))

	result, appErr := h.catalog.ListProducts(ctx, key, filter)
	if appErr != nil {
		return appErr
	}
	return respond(c, result.Data, result.Degraded)
}

func (h *StorefrontHandler) GroupedProducts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	h.logger.InfoContext(ctx, "Grouped product list requested", slog.String("operation", "grouped_products"))

	result, appErr := h.catalog.GroupedProducts(ctx)
	if appErr != nil {
		return appErr
	}
	return respond(c, result.Data, result.Degraded)
}

func (h *StorefrontHandler) VisibleProducts(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req apirequests.VisibleProductsRequest
	if err := c.QueryParser(&req); err != nil {
		return apierrors.NewApplicationError(apierrors.ErrCodeRequestValidation, "Invalid query parameters", err)
	}
	if appErr := commonvalidator.ValidateRequest(req); appErr != nil {
		return appErr
	}

	result, appErr := h.catalog.VisibleProducts(ctx, req.Categories)
	if appErr != nil {
		return appErr
	}
	return respond(c, result.Data, result.Degraded)
}

func (h *StorefrontHandler) ListCategories(c *fiber.Ctx) error {
	result, appErr := h.catalog.Categories(c.UserContext())
	if appErr != nil {
		return appErr
	}
	return respond(c, result.Data, result.Degraded)
}
