package globals

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gaolamthuy/storefront/common/config"
	"github.com/gaolamthuy/storefront/common/log"
	"github.com/gaolamthuy/storefront/common/logging"
	"github.com/gaolamthuy/storefront/common/telemetry"
	"github.com/sirupsen/logrus"
)

var (
	cfg       *config.Config
	logger    *slog.Logger
	bootstrap *logrus.Logger
	shutdown  func(context.Context) error
	// once ensures that initialization logic runs exactly once.
	once sync.Once
	err  error
)

// Init loads configuration, then sets up logrus, telemetry and the slog
// request logger in that order. Only the first call does any work.
func Init(ctx context.Context) error {
	once.Do(func() {
		cfg, err = config.LoadConfig()
		if err != nil {
			err = fmt.Errorf("failed to load config during init: %w", err)
			return
		}

		bootstrap = logging.SetupLogrus(cfg)
		cfg.Log()

		shutdown, err = telemetry.InitTelemetry(ctx, cfg, bootstrap)
		if err != nil {
			err = fmt.Errorf("failed to initialize telemetry setup during init: %w", err)
			return
		}

		if initErr := log.Init(cfg); initErr != nil {
			err = fmt.Errorf("failed to initialize logger during init: %w", initErr)
			return
		}
		logger = log.L
	})

	return err
}

// Cfg returns the loaded configuration, panicking if Init hasn't been successfully called.
func Cfg() *config.Config {
	if cfg == nil {
		panic("configuration not initialized: call globals.Init() first and check error")
	}
	return cfg
}

// Logger returns the request-path logger. Before Init it returns slog.Default
// so packages stay usable in tests.
func Logger() *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// Bootstrap returns the logrus logger used for lifecycle events.
func Bootstrap() *logrus.Logger {
	if bootstrap == nil {
		return logrus.StandardLogger()
	}
	return bootstrap
}

// ShutdownTelemetry flushes OTel providers. It is a no-op before Init.
func ShutdownTelemetry(ctx context.Context) error {
	if shutdown == nil {
		return nil
	}
	return shutdown(ctx)
}
