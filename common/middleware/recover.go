package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"

	"github.com/gaolamthuy/storefront/common/apierrors"
	commonlog "github.com/gaolamthuy/storefront/common/log"
)

// RecoverMiddleware turns a panic into a SYSTEM_PANIC AppError for the error handler.
func RecoverMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				cause, ok := r.(error)
				if !ok {
					cause = fmt.Errorf("panic: %v", r)
				}

				commonlog.FromContext(c.UserContext()).ErrorContext(c.UserContext(), "CRITICAL: Unhandled panic recovered",
					slog.String("error", cause.Error()),
					slog.String("stack", string(debug.Stack())),
					slog.String("path", c.Path()),
					slog.String("method", c.Method()),
				)

				err = apierrors.NewApplicationError(
					apierrors.ErrCodeSystemPanic,
					"A critical system error occurred. Our team has been notified.",
					cause)
			}
		}()
		return c.Next()
	}
}
