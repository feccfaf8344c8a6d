package handlers

import (
	"github.com/gofiber/fiber/v2"

	apierrors "github.com/gaolamthuy/storefront/common/apierrors"
	apirequests "github.com/gaolamthuy/storefront/common/apirequests"
	commonvalidator "github.com/gaolamthuy/storefront/common/validator"
)

func (h *StorefrontHandler) GetCustomer(c *fiber.Ctx) error {
	var req apirequests.CustomerLookupRequest
	if err := c.ParamsParser(&req); err != nil {
		return apierrors.NewApplicationError(apierrors.ErrCodeRequestValidation, "Invalid path parameters", err)
	}
	if appErr := commonvalidator.ValidateRequest(req); appErr != nil {
		return appErr
	}

	customer, appErr := h.customers.GetByCode(c.UserContext(), req.Code)
	if appErr != nil {
		return appErr
	}
	return respond(c, customer, nil)
}
