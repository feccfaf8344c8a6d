package services

import (
	"context"
	"log/slog"

	apierrors "github.com/gaolamthuy/storefront/common/apierrors"
	"github.com/gaolamthuy/storefront/common/telemetry/attributes"
	commonmetric "github.com/gaolamthuy/storefront/common/telemetry/metric"
	commontrace "github.com/gaolamthuy/storefront/common/telemetry/trace"
	"github.com/gaolamthuy/storefront/storefront/src/catalog"
	"github.com/gaolamthuy/storefront/storefront/src/models"
)

// ProductDetail resolves one product page. An empty variant selects the
// product's default. Nothing is kept between requests.
func (s *catalogService) ProductDetail(ctx context.Context, slug string, variant models.VariantKey) (detail models.ProductDetail, appErr *apierrors.AppError) {
	timer := commonmetric.StartMetricsTimer(layer, "product_detail")
	ctx, span := commontrace.StartSpan(ctx, attributes.AttrProductSlugKey.String(slug))
	defer func() { finish(ctx, span, timer, appErr) }()

	snap, appErr := s.load(ctx)
	if appErr != nil {
		return detail, appErr
	}
	if snap.degraded != nil {
		// nothing to show without the catalog
		return detail, snap.degraded
	}

	product, ok := catalog.FindBySlug(snap.records, slug)
	if !ok {
		s.logger.InfoContext(ctx, "Product not found", slog.String("slug", slug))
		return detail, apierrors.NewBusinessError(apierrors.ErrCodeProductNotFound,
			"Product '"+slug+"' not found", nil)
	}

	key := catalog.ChooseVariant(product, variant)

	resolver := catalog.NewResolver(s.prices, s.images.Pool(ctx), s.links)
	detail = models.ProductDetail{
		Product:         product,
		View:            resolver.Resolve(product, key),
		AttributeGroups: catalog.GroupAttributes(product.FamilyAttributes),
		Family:          resolver.Family(product, snap.records),
	}

	span.SetAttributes(
		attributes.AttrProductIDKey.String(product.ID),
		attributes.AttrVariantKey.String(string(key)),
	)
	s.logger.InfoContext(ctx, "Resolved product detail",
		slog.String("product_id", product.ID),
		slog.String("variant", string(key)))
	return detail, nil
}
