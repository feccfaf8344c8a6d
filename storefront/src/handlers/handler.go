package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	apierrors "github.com/gaolamthuy/storefront/common/apierrors"
	apiresponses "github.com/gaolamthuy/storefront/common/apiresponses"
	"github.com/gaolamthuy/storefront/common/globals"
	"github.com/gaolamthuy/storefront/common/middleware"
	"github.com/gaolamthuy/storefront/storefront/src/services"
)

// degradedMessage is shown when the catalog could not be loaded.
const degradedMessage = "Không tải được dữ liệu sản phẩm. Vui lòng thử lại."

type StorefrontHandler struct {
	catalog   services.CatalogService
	customers services.CustomerService
	logger    *slog.Logger
}

func NewStorefrontHandler(catalog services.CatalogService, customers services.CustomerService) *StorefrontHandler {
	return &StorefrontHandler{
		catalog:   catalog,
		customers: customers,
		logger:    globals.Logger(),
	}
}

// RegisterRoutes mounts every storefront route on r.
func RegisterRoutes(r fiber.Router, h *StorefrontHandler) {
	r.Get("/health", h.HealthCheck)
	r.Get("/products", h.ListProducts)
	r.Get("/products/grouped", h.GroupedProducts)
	r.Get("/products/visible", h.VisibleProducts)
	r.Get("/products/:slug", h.GetProductBySlug)
	r.Get("/categories", h.ListCategories)
	r.Get("/price-list.xlsx", h.DownloadPriceList)
	r.Get("/customers/:code", h.GetCustomer)
}

// respond writes a success envelope, attaching a retry notice when the
// catalog source was unavailable.
func respond(c *fiber.Ctx, data interface{}, degraded *apierrors.AppError) error {
	response := apiresponses.NewSuccessResponse(data).WithRequestID(middleware.RequestID(c))
	if degraded != nil {
		response = response.WithNotice(&apiresponses.Notice{
			Code:      degraded.Code,
			Message:   degradedMessage,
			Retryable: degraded.Retryable(),
		})
	}
	return c.Status(http.StatusOK).JSON(response)
}
