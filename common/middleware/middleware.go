package middleware

import (
	"log/slog"
	"strings"

	otelfiber "github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofrs/uuid"

	"github.com/gaolamthuy/storefront/common/metrics"
)

const requestIDKey = "requestid"

// Config selects the middleware stack installed by Register.
type Config struct {
	Metrics      *metrics.Registry
	AllowOrigins []string
	Logger       *slog.Logger
}

// Register installs tracing, request id, CORS, the request logger and panic
// recovery, outermost first. Recovery sits inside the logger so a panic is
// still logged with its final status.
func Register(app *fiber.App, cfg Config) {
	app.Use(otelfiber.Middleware(
		otelfiber.WithNext(func(c *fiber.Ctx) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		}),
	))
	app.Use(requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  NewRequestID,
		ContextKey: requestIDKey,
	}))
	origins := "*"
	if len(cfg.AllowOrigins) > 0 {
		origins = strings.Join(cfg.AllowOrigins, ",")
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,HEAD,OPTIONS",
	}))
	app.Use(RequestLogger(cfg.Logger, cfg.Metrics))
	app.Use(RecoverMiddleware())
}

// NewRequestID returns a random UUIDv4 string.
func NewRequestID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil.String()
	}
	return id.String()
}

// RequestID returns the id assigned by the requestid middleware, if any.
func RequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestIDKey).(string); ok {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
