package services

import (
	"context"
	"log/slog"

	apierrors "github.com/gaolamthuy/storefront/common/apierrors"
	"github.com/gaolamthuy/storefront/common/telemetry/attributes"
	commonmetric "github.com/gaolamthuy/storefront/common/telemetry/metric"
	commontrace "github.com/gaolamthuy/storefront/common/telemetry/trace"
	"github.com/gaolamthuy/storefront/storefront/src/models"
)

func (s *customerService) GetByCode(ctx context.Context, code string) (customer models.Customer, appErr *apierrors.AppError) {
	timer := commonmetric.StartMetricsTimer(layer, "get_customer")
	ctx, span := commontrace.StartSpan(ctx, attributes.AttrCustomerCodeKey.String(code))
	defer func() { finish(ctx, span, timer, appErr) }()

	if s.repo == nil {
		return customer, apierrors.NewApplicationError(apierrors.ErrCodeConfiguration,
			"Customer lookup is not configured (set DATABASE_URL)", nil)
	}

	customer, appErr = s.repo.GetByCode(ctx, code)
	if appErr != nil {
		return models.Customer{}, appErr
	}
	customer.TotalPurchaseDisplay = s.prices.Currency(int64(customer.TotalPurchaseAmount))

	s.logger.InfoContext(ctx, "Customer lookup completed",
		slog.String("code", code),
		slog.Int("recent_invoices", len(customer.RecentInvoices)))
	return customer, nil
}
