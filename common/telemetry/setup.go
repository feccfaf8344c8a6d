package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gaolamthuy/storefront/common/config"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/host"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type shutdownFunc func(context.Context) error

// InitTelemetry wires tracing, metrics and logs to the OTLP collector and
// returns a shutdown function that flushes every provider in reverse order.
// When telemetry is disabled only the propagators are installed.
func InitTelemetry(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (shutdown func(context.Context) error, err error) {
	var shutdownFuncs []shutdownFunc

	shutdown = func(ctx context.Context) error {
		var shutdownErr error
		for i := len(shutdownFuncs) - 1; i >= 0; i-- {
			shutdownErr = errors.Join(shutdownErr, shutdownFuncs[i](ctx))
		}
		shutdownFuncs = nil
		logger.Debug("OpenTelemetry resources shutdown sequence completed.")
		return shutdownErr
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	if !cfg.OtelEnabled {
		logger.Info("OpenTelemetry export disabled, using no-op providers.")
		return shutdown, nil
	}

	defer func() {
		if err != nil {
			logger.WithError(err).Error("OpenTelemetry SDK initialization failed")
			if shutdownErr := shutdown(context.Background()); shutdownErr != nil {
				logger.WithError(shutdownErr).Error("Error during OTel cleanup after setup failure")
			}
		}
	}()

	res, err := newResource(ctx, cfg)
	if err != nil {
		return shutdown, fmt.Errorf("failed to create resource: %w", err)
	}

	traceExporter, err := newTraceExporter(ctx, cfg)
	if err != nil {
		return shutdown, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.OtelSampleRatio))),
		sdktrace.WithBatcher(traceExporter, sdktrace.WithBatchTimeout(5*time.Second)),
	)
	otel.SetTracerProvider(tp)
	shutdownFuncs = append(shutdownFuncs, tp.Shutdown)
	logger.Debug("TracerProvider initialized and set globally.")

	metricExporter, err := newMetricExporter(ctx, cfg)
	if err != nil {
		return shutdown, fmt.Errorf("failed to create OTLP metric exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(15*time.Second))),
	)
	otel.SetMeterProvider(mp)
	shutdownFuncs = append(shutdownFuncs, mp.Shutdown)
	logger.Debug("MeterProvider initialized and set globally.")

	if err = runtime.Start(runtime.WithMeterProvider(mp)); err != nil {
		return shutdown, fmt.Errorf("failed to start runtime instrumentation: %w", err)
	}
	if err = host.Start(host.WithMeterProvider(mp)); err != nil {
		return shutdown, fmt.Errorf("failed to start host instrumentation: %w", err)
	}

	logExporter, err := newLogExporter(ctx, cfg)
	if err != nil {
		return shutdown, fmt.Errorf("failed to create OTLP log exporter: %w", err)
	}
	lp := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
	)
	global.SetLoggerProvider(lp)
	shutdownFuncs = append(shutdownFuncs, lp.Shutdown)

	logger.WithFields(logrus.Fields{
		"endpoint":     cfg.OtelEndpoint,
		"insecure":     cfg.OtelInsecure,
		"sample_ratio": cfg.OtelSampleRatio,
	}).Info("OpenTelemetry SDK initialized successfully (Traces, Metrics and Logs).")

	return shutdown, nil
}
