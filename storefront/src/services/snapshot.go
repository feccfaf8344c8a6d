package services

import (
	"context"
	"log/slog"

	apierrors "github.com/gaolamthuy/storefront/common/apierrors"
	"github.com/gaolamthuy/storefront/common/telemetry/attributes"
	commontrace "github.com/gaolamthuy/storefront/common/telemetry/trace"
	"github.com/gaolamthuy/storefront/storefront/src/catalog"
	"github.com/gaolamthuy/storefront/storefront/src/models"
)

// snapshot is one normalized read of the catalog source.
type snapshot struct {
	records    []models.Product
	masters    []models.Product
	categories []models.Category
	degraded   *apierrors.AppError
}

// load fetches and normalizes the catalog. Transient source failures yield
// an empty degraded snapshot; anything else is returned as an error.
func (s *catalogService) load(ctx context.Context) (snap snapshot, appErr *apierrors.AppError) {
	ctx, span := commontrace.StartSpan(ctx, attributes.AttrCatalogSourceKey.String(s.repo.Source()))
	defer func() {
		var telemetryErr error
		if appErr != nil {
			telemetryErr = appErr
		}
		commontrace.EndSpan(span, &telemetryErr, nil)
	}()

	payload, fetchErr := s.repo.Fetch(ctx)
	if fetchErr != nil {
		if fetchErr.Retryable() {
			s.logger.WarnContext(ctx, "Catalog source unavailable, serving empty catalog",
				slog.String("error_code", fetchErr.Code),
				slog.String("error", fetchErr.Error()))
			return snapshot{
				records:    []models.Product{},
				masters:    []models.Product{},
				categories: []models.Category{},
				degraded:   fetchErr,
			}, nil
		}
		return snapshot{}, fetchErr
	}

	raws, decodeErrs := models.DecodeRawProducts(payload.Products)
	for _, err := range decodeErrs {
		s.logger.WarnContext(ctx, "Skipping malformed product record", slog.String("error", err.Error()))
	}
	records, unidentified := catalog.NormalizeRecords(raws)
	if unidentified > 0 {
		s.logger.WarnContext(ctx, "Skipping product records without identifier", slog.Int("count", unidentified))
	}

	rawCats, catErrs := models.DecodeRawCategories(payload.Categories)
	for _, err := range catErrs {
		s.logger.WarnContext(ctx, "Skipping malformed category record", slog.String("error", err.Error()))
	}

	snap = snapshot{
		records:    records,
		masters:    catalog.MastersOf(records),
		categories: catalog.NormalizeCategories(rawCats),
	}
	for i := range snap.categories {
		snap.categories[i].URL = s.links.CategoryURL(snap.categories[i].Name)
	}

	skipped := len(decodeErrs) + unidentified
	if s.metrics != nil {
		s.metrics.RecordsSkipped.Add(float64(skipped))
		s.metrics.CatalogSize.Set(float64(len(snap.masters)))
	}
	span.SetAttributes(
		attributes.AttrProductCountKey.Int(len(snap.masters)),
		attributes.AttrSkippedCountKey.Int(skipped),
		attributes.AttrCategoryCountKey.Int(len(snap.categories)),
	)
	return snap, nil
}
