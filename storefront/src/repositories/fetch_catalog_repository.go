package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"

	apierrors "github.com/gaolamthuy/storefront/common/apierrors"
	"github.com/gaolamthuy/storefront/common/httpclient"
	"github.com/gaolamthuy/storefront/common/telemetry/attributes"
	commontrace "github.com/gaolamthuy/storefront/common/telemetry/trace"
	"github.com/gaolamthuy/storefront/storefront/src/models"
)

func (r *upstreamCatalogRepository) Source() string { return SourceUpstream }

func (r *upstreamCatalogRepository) Fetch(ctx context.Context) (payload models.CatalogPayload, appErr *apierrors.AppError) {
	ctx, span := commontrace.StartSpan(ctx, attributes.AttrCatalogSourceKey.String(SourceUpstream))
	defer func() {
		var telemetryErr error
		if appErr != nil {
			telemetryErr = appErr
		}
		commontrace.EndSpan(span, &telemetryErr, nil)
	}()

	if r.url == "" {
		r.logger.ErrorContext(ctx, "Catalog API URL is not configured")
		return payload, apierrors.NewApplicationError(apierrors.ErrCodeConfiguration,
			"Catalog API URL is not configured (set CATALOG_API_URL)", nil)
	}

	r.logger.DebugContext(ctx, "Fetching catalog from upstream")
	if err := r.client.GetJSON(ctx, r.url, &payload); err != nil {
		appErr = httpclient.ToAppError(err, "catalog")
		r.logger.WarnContext(ctx, "Catalog fetch failed",
			slog.String("error_code", appErr.Code),
			slog.Any("error", err))
		return models.CatalogPayload{}, appErr
	}

	span.SetAttributes(attributes.AttrProductCountKey.Int(len(payload.Products)))
	r.logger.InfoContext(ctx, "Catalog fetched",
		slog.Int("products", len(payload.Products)),
		slog.Int("categories", len(payload.Categories)))
	return payload, nil
}

func (r *fileCatalogRepository) Source() string { return SourceFile }

func (r *fileCatalogRepository) Fetch(ctx context.Context) (payload models.CatalogPayload, appErr *apierrors.AppError) {
	ctx, span := commontrace.StartSpan(ctx,
		attributes.AttrCatalogSourceKey.String(SourceFile),
		attributes.AttrDBFilePathKey.String(r.database.FilePath()))
	defer func() {
		var telemetryErr error
		if appErr != nil {
			telemetryErr = appErr
		}
		commontrace.EndSpan(span, &telemetryErr, nil)
	}()

	err := r.database.Read(ctx, &payload)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		return models.CatalogPayload{}, apierrors.NewApplicationError(apierrors.ErrCodeConfiguration,
			"Catalog data file does not exist", err)
	case isSyntaxError(err):
		return models.CatalogPayload{}, apierrors.NewApplicationError(apierrors.ErrCodeMalformedData,
			"Catalog data file is not valid JSON", err)
	default:
		return models.CatalogPayload{}, apierrors.NewApplicationError(apierrors.ErrCodeDatabaseAccess,
			"Failed to read catalog data file", err)
	}

	span.SetAttributes(attributes.AttrProductCountKey.Int(len(payload.Products)))
	r.logger.DebugContext(ctx, "Catalog loaded from file",
		slog.String("file_path", r.database.FilePath()),
		slog.Int("products", len(payload.Products)))
	return payload, nil
}

func isSyntaxError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
