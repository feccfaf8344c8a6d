package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

// Timeouts bounds the whole shutdown and each of its steps.
type Timeouts struct {
	Total  time.Duration
	Server time.Duration
	Otel   time.Duration
}

// Task is one named shutdown step.
type Task struct {
	Name     string
	Timeout  time.Duration
	Shutdown func(context.Context) error
}

// WaitForGracefulShutdown blocks until SIGINT or SIGTERM, then shuts down the
// server, then the extra tasks, then telemetry so in-flight requests are
// still exported.
func WaitForGracefulShutdown(logger *logrus.Logger, timeouts Timeouts, server Shutdowner, telemetryShutdown func(context.Context) error, extra ...Task) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.WithField("signal", sig.String()).Info("Received shutdown signal, initiating graceful shutdown...")

	var serverShutdown func(context.Context) error
	if server != nil {
		serverShutdown = server.Shutdown
	}
	tasks := []Task{{Name: "server", Timeout: timeouts.Server, Shutdown: serverShutdown}}
	tasks = append(tasks, extra...)
	tasks = append(tasks, Task{Name: "telemetry", Timeout: timeouts.Otel, Shutdown: telemetryShutdown})
	return RunShutdown(logger, timeouts.Total, tasks...)
}

// RunShutdown runs tasks in order, each under its own timeout derived from
// the overall deadline. Remaining tasks are skipped once the deadline passes.
func RunShutdown(logger *logrus.Logger, total time.Duration, tasks ...Task) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), total)
	defer cancel()

	var shutdownErrs error
	for _, task := range tasks {
		if task.Shutdown == nil {
			logger.Debugf("Skipping shutdown for %s (nil function)", task.Name)
			continue
		}

		taskCtx, taskCancel := context.WithTimeout(shutdownCtx, task.Timeout)
		logger.Infof("Attempting to shut down %s (timeout: %s)...", task.Name, task.Timeout)
		if err := task.Shutdown(taskCtx); err != nil {
			logger.WithError(err).Errorf("Error during %s shutdown", task.Name)
			shutdownErrs = errors.Join(shutdownErrs, fmt.Errorf("%s shutdown error: %w", task.Name, err))
			if errors.Is(err, context.DeadlineExceeded) {
				logger.Warnf("%s shutdown timed out after %s", task.Name, task.Timeout)
			}
		} else {
			logger.Infof("%s shutdown complete", task.Name)
		}
		taskCancel()

		if shutdownCtx.Err() != nil {
			logger.Warnf("Overall shutdown timeout (%s) exceeded during %s shutdown. Aborting further steps.", total, task.Name)
			if !errors.Is(shutdownErrs, context.DeadlineExceeded) {
				shutdownErrs = errors.Join(shutdownErrs, fmt.Errorf("overall shutdown timeout exceeded: %w", shutdownCtx.Err()))
			}
			break
		}
	}

	if shutdownErrs != nil {
		logger.WithError(shutdownErrs).Error("Application shutdown completed with errors")
		return shutdownErrs
	}
	logger.Info("Application shutdown completed successfully")
	return nil
}
