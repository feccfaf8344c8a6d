package log

import (
	"log/slog"
	"os"
	"strings"

	"github.com/gaolamthuy/storefront/common/config"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

// L is the request-path logger. It stays nil until Init runs.
var L *slog.Logger

// ParseLevel maps a config level string to slog; unknown values fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init builds L from cfg and installs it as the slog default. With OTel
// export enabled records go through the otelslog bridge, otherwise to stdout
// in the configured format.
func Init(cfg *config.Config) error {
	if L != nil {
		slog.Warn("Logger already initialized")
		return nil
	}

	level := ParseLevel(cfg.LogLevel)
	handlerOpts := &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	}

	var handler slog.Handler
	switch {
	case cfg.OtelEnabled:
		handler = otelslog.NewHandler(cfg.ServiceName)
	case strings.ToLower(cfg.LogFormat) == "json":
		handler = slog.NewJSONHandler(os.Stdout, handlerOpts)
	default:
		handler = slog.NewTextHandler(os.Stdout, handlerOpts)
	}

	L = slog.New(handler).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)
	slog.SetDefault(L)

	L.Info("Logger initialized and set as default",
		slog.String("level", level.String()),
		slog.Bool("otel", cfg.OtelEnabled),
	)
	return nil
}
