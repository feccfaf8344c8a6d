package services

import (
	"context"

	apierrors "github.com/gaolamthuy/storefront/common/apierrors"
	commonmetric "github.com/gaolamthuy/storefront/common/telemetry/metric"
	commontrace "github.com/gaolamthuy/storefront/common/telemetry/trace"
	"go.opentelemetry.io/otel/trace"
)

const layer = "service"

// finish ends the span and the operation timer of a service call.
func finish(ctx context.Context, span trace.Span, timer commonmetric.MetricsController, appErr *apierrors.AppError) {
	var telemetryErr error
	if appErr != nil {
		telemetryErr = appErr
	}
	commontrace.EndSpan(span, &telemetryErr, nil)
	timer.End(ctx, &telemetryErr)
}
