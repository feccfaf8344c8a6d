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

// ListProducts returns master products in category order, narrowed by the
// filter. The featured cut runs last so it sees the final order.
func (s *catalogService) ListProducts(ctx context.Context, key catalog.SecondaryKey, filter catalog.Filter) (result Result[[]models.Product], appErr *apierrors.AppError) {
	timer := commonmetric.StartMetricsTimer(layer, "list_products")
	ctx, span := commontrace.StartSpan(ctx,
		attributes.AttrSortModeKey.String(key.String()),
		attributes.AttrSearchQueryKey.String(filter.Text))
	defer func() { finish(ctx, span, timer, appErr) }()

	snap, appErr := s.load(ctx)
	if appErr != nil {
		return result, appErr
	}

	products := catalog.SortByCategory(filter.Apply(snap.masters), s.opts.CategoryOrder, key)
	if filter.Featured > 0 {
		products = catalog.Featured(products, filter.Featured)
	}
	result = Result[[]models.Product]{
		Data:     products,
		Degraded: snap.degraded,
	}

	span.SetAttributes(attributes.AttrProductCountKey.Int(len(result.Data)))
	s.logger.InfoContext(ctx, "Listed products",
		slog.Int("count", len(result.Data)),
		slog.String("sort", key.String()),
		slog.Any("categories", filter.Categories),
		slog.String("q", filter.Text),
		slog.Int("attribute_filters", len(filter.Attributes)))
	return result, nil
}

// GroupedProducts buckets the master products by category.
func (s *catalogService) GroupedProducts(ctx context.Context) (result Result[[]models.CategoryGroup], appErr *apierrors.AppError) {
	timer := commonmetric.StartMetricsTimer(layer, "grouped_products")
	ctx, span := commontrace.StartSpan(ctx)
	defer func() { finish(ctx, span, timer, appErr) }()

	snap, appErr := s.load(ctx)
	if appErr != nil {
		return result, appErr
	}

	result = Result[[]models.CategoryGroup]{
		Data:     catalog.GroupByCategory(snap.masters, s.opts.CategoryOrder),
		Degraded: snap.degraded,
	}
	span.SetAttributes(attributes.AttrCategoryCountKey.Int(len(result.Data)))
	s.logger.InfoContext(ctx, "Grouped products", slog.Int("groups", len(result.Data)))
	return result, nil
}

// VisibleProducts answers the category filter: which products stay shown.
func (s *catalogService) VisibleProducts(ctx context.Context, categories []string) (result Result[VisibleProducts], appErr *apierrors.AppError) {
	timer := commonmetric.StartMetricsTimer(layer, "visible_products")
	ctx, span := commontrace.StartSpan(ctx)
	defer func() { finish(ctx, span, timer, appErr) }()

	snap, appErr := s.load(ctx)
	if appErr != nil {
		return result, appErr
	}

	sorted := catalog.SortByCategory(snap.masters, s.opts.CategoryOrder, catalog.SortNone)
	visible := catalog.Visible(sorted, categories)
	result = Result[VisibleProducts]{
		Data: VisibleProducts{
			IDs:      catalog.VisibleIDs(sorted, categories),
			Products: visible,
		},
		Degraded: snap.degraded,
	}
	span.SetAttributes(attributes.AttrProductCountKey.Int(len(visible)))
	s.logger.DebugContext(ctx, "Resolved visible products",
		slog.Int("visible", len(visible)),
		slog.Int("total", len(sorted)))
	return result, nil
}

// Categories returns the active categories.
func (s *catalogService) Categories(ctx context.Context) (result Result[[]models.Category], appErr *apierrors.AppError) {
	timer := commonmetric.StartMetricsTimer(layer, "categories")
	ctx, span := commontrace.StartSpan(ctx)
	defer func() { finish(ctx, span, timer, appErr) }()

	snap, appErr := s.load(ctx)
	if appErr != nil {
		return result, appErr
	}
	result = Result[[]models.Category]{Data: snap.categories, Degraded: snap.degraded}
	span.SetAttributes(attributes.AttrCategoryCountKey.Int(len(snap.categories)))
	return result, nil
}
