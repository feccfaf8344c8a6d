package logging

import (
	"os"
	"strings"
	"time"

	"github.com/gaolamthuy/storefront/common/config"
	"github.com/sirupsen/logrus"
)

// SetupLogrus configures the bootstrap logger used for startup, shutdown and
// background jobs. The package-level logrus logger is aligned with it.
func SetupLogrus(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s', defaulting to 'info': %v", cfg.LogLevel, err)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	switch strings.ToLower(cfg.LogFormat) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339Nano,
		})
	}
	logger.SetOutput(os.Stderr)

	if cfg.OtelEnabled {
		logger.AddHook(NewOtelHook())
	}

	logrus.SetLevel(logger.GetLevel())
	logrus.SetFormatter(logger.Formatter)
	logrus.SetOutput(logger.Out)

	logger.Debugf("Logrus initialized with level '%s' and format '%s'.", logger.GetLevel(), cfg.LogFormat)
	return logger
}
