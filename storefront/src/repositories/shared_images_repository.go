package repositories

import (
	"context"
	"log/slog"

	"github.com/gaolamthuy/storefront/common/cache"
	"github.com/gaolamthuy/storefront/common/telemetry/attributes"
	commontrace "github.com/gaolamthuy/storefront/common/telemetry/trace"
	"github.com/gaolamthuy/storefront/storefront/src/catalog"
	"github.com/gaolamthuy/storefront/storefront/src/models"
)

func (r *sharedImageRepository) Pool(ctx context.Context) catalog.SharedImagePool {
	ctx, span := commontrace.StartSpan(ctx)
	var spanErr error
	defer func() { commontrace.EndSpan(span, &spanErr, nil) }()

	if r.url == "" {
		r.logger.DebugContext(ctx, "Shared images URL not configured, using empty pool")
		return catalog.SharedImagePool{}
	}

	images, hit, err := cache.GetOrLoad(ctx, r.store, sharedImagesCacheKey, r.load)
	if r.metrics != nil {
		r.metrics.RecordCacheLookup(sharedImagesCacheKey, hit)
	}
	span.SetAttributes(attributes.AttrCacheHitKey.Bool(hit))
	if err != nil {
		// missing shared images only lose fallbacks
		r.logger.WarnContext(ctx, "Failed to fetch shared images", slog.Any("error", err))
		return catalog.SharedImagePool{}
	}

	span.SetAttributes(attributes.AttrSharedImageCount.Int(len(images)))
	return catalog.NewSharedImagePool(images)
}

func (r *sharedImageRepository) load(ctx context.Context) ([]models.Image, error) {
	var payload models.SharedImagesPayload
	if err := r.client.GetJSON(ctx, r.url, &payload); err != nil {
		return nil, err
	}
	images := catalog.SharedImageRoles(payload.Images)
	r.logger.DebugContext(ctx, "Shared images loaded",
		slog.Int("listed", len(payload.Images)),
		slog.Int("tagged", len(images)))
	return images, nil
}
