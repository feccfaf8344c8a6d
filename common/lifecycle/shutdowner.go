package lifecycle

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Shutdowner is anything with a context-aware Shutdown.
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

// FiberShutdownAdapter adapts a *fiber.App to Shutdowner.
type FiberShutdownAdapter struct {
	App *fiber.App
}

func (a *FiberShutdownAdapter) Shutdown(ctx context.Context) error {
	if a.App == nil {
		return nil
	}
	return a.App.ShutdownWithContext(ctx)
}

// CloserAdapter lets plain Close methods (redis clients, sql.DB) join the shutdown sequence.
type CloserAdapter func() error

func (c CloserAdapter) Shutdown(context.Context) error {
	return c()
}
