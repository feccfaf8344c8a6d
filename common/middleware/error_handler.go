package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/gaolamthuy/storefront/common/apierrors"
	"github.com/gaolamthuy/storefront/common/apiresponses"
	commonlog "github.com/gaolamthuy/storefront/common/log"
)

// ErrorHandler renders every error as an apiresponses.ErrorResponse.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		ctx := c.UserContext()
		logger := commonlog.FromContext(ctx)
		appErr := classify(err)
		statusCode := appErr.StatusCode()

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			statusCode = fiberErr.Code
		}

		if span := oteltrace.SpanFromContext(ctx); span.IsRecording() {
			span.RecordError(err)
			span.SetAttributes(
				attribute.String("error.code", appErr.Code),
				attribute.String("error.category", string(appErr.Category)),
			)
			if statusCode >= 500 {
				span.SetStatus(codes.Error, appErr.Message)
			}
		}

		attrs := []slog.Attr{
			slog.String("error_code", appErr.Code),
			slog.String("category", string(appErr.Category)),
			slog.String("message", appErr.Message),
			slog.Int("status_code", statusCode),
			slog.String("path", c.Path()),
		}
		if cause := appErr.Unwrap(); cause != nil {
			attrs = append(attrs, slog.String("cause", cause.Error()))
		}
		if appErr.Category == apierrors.CategoryBusiness && statusCode < 500 {
			logger.LogAttrs(ctx, slog.LevelWarn, "Business rule violation", attrs...)
		} else {
			logger.LogAttrs(ctx, slog.LevelError, "Error occurred", attrs...)
		}

		resp := apiresponses.NewErrorResponse(appErr.Code, appErr.Message, appErr.Retryable()).
			WithRequestID(RequestID(c))
		return c.Status(statusCode).JSON(resp)
	}
}

// classify maps any error onto the AppError taxonomy.
func classify(err error) *apierrors.AppError {
	if appErr, ok := apierrors.As(err); ok {
		return appErr
	}

	var fiberErr *fiber.Error
	var netErr net.Error
	var jsonErr *json.SyntaxError
	switch {
	case errors.As(err, &fiberErr):
		code := apierrors.ErrCodeUnknown
		switch {
		case fiberErr.Code == http.StatusNotFound:
			code = apierrors.ErrCodeRouteNotFound
		case fiberErr.Code < 500:
			code = apierrors.ErrCodeRequestValidation
		}
		return apierrors.NewApplicationError(code, fiberErr.Message, err)
	case errors.As(err, &netErr):
		return apierrors.NewApplicationError(apierrors.ErrCodeNetworkError,
			"Network connectivity issue occurred", err)
	case errors.As(err, &jsonErr):
		return apierrors.NewApplicationError(apierrors.ErrCodeMalformedData,
			"Invalid data format", err)
	case errors.Is(err, context.DeadlineExceeded):
		return apierrors.NewApplicationError(apierrors.ErrCodeRequestTimeout,
			"The request timed out", err)
	default:
		return apierrors.NewApplicationError(apierrors.ErrCodeUnknown,
			"An unexpected error occurred. Please try again later.", err)
	}
}
