package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/trace"

	commonlog "github.com/gaolamthuy/storefront/common/log"
	"github.com/gaolamthuy/storefront/common/metrics"
)

// RequestLogger stores a request-scoped slog logger in the user context and
// logs one line per request. reg may be nil.
func RequestLogger(base *slog.Logger, reg *metrics.Registry) fiber.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()
		ctx := c.UserContext()

		logger := base.With(slog.String("request_id", RequestID(c)))
		if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
			logger = logger.With(
				slog.String("trace_id", spanCtx.TraceID().String()),
				slog.String("span_id", spanCtx.SpanID().String()),
			)
		}
		ctx = commonlog.NewContext(ctx, logger)
		c.SetUserContext(ctx)

		err := c.Next()
		if err != nil {
			// Render now so the logged status matches what the client sees.
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		duration := time.Since(start)
		statusCode := c.Response().StatusCode()
		route := c.Route().Path

		if reg != nil {
			reg.RecordRequest(c.Method(), route, statusCode, duration)
		}

		level := slog.LevelInfo
		switch {
		case statusCode >= 500:
			level = slog.LevelError
		case statusCode >= 400:
			level = slog.LevelWarn
		}
		logger.LogAttrs(ctx, level, "Request completed",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("route", route),
			slog.Int("status_code", statusCode),
			slog.Duration("duration", duration),
			slog.String("ip", c.IP()),
			slog.String("user_agent", string(c.Request().Header.UserAgent())),
		)
		return nil
	}
}
