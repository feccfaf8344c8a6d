// Entry point for the storefront catalog service
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/gaolamthuy/storefront/common/cache"
	"github.com/gaolamthuy/storefront/common/config"
	"github.com/gaolamthuy/storefront/common/globals"
	"github.com/gaolamthuy/storefront/common/httpclient"
	"github.com/gaolamthuy/storefront/common/lifecycle"
	"github.com/gaolamthuy/storefront/common/metrics"
	"github.com/gaolamthuy/storefront/common/middleware"

	"github.com/gaolamthuy/storefront/storefront/src/handlers"
	"github.com/gaolamthuy/storefront/storefront/src/models"
	"github.com/gaolamthuy/storefront/storefront/src/repositories"
	"github.com/gaolamthuy/storefront/storefront/src/services"
)

const redisKeyPrefix = "storefront:"

func main() {
	ctx := context.Background()

	// --- Initialize Globals (Config & Logger/Telemetry) ---
	if err := globals.Init(ctx); err != nil {
		fmt.Printf("Failed to initialize application globals: %v\n", err)
		panic(err)
	}
	cfg := globals.Cfg()
	logger := globals.Logger()
	reg := metrics.NewRegistry()

	// --- Upstream client and caches ---
	client := httpclient.New(httpclient.Options{
		Timeout:       cfg.APITimeout,
		Retries:       cfg.APIRetries,
		RetryDelay:    cfg.APIRetryDelay,
		MaxRetryDelay: cfg.APIMaxRetryDelay,
		RateLimit:     cfg.APIRateLimitRPS,
		Burst:         cfg.APIRateBurst,
	}, reg)

	var extra []lifecycle.Task
	var imageStore cache.Store[[]models.Image]
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		imageStore = cache.NewRedisStore[[]models.Image](rdb, redisKeyPrefix, cfg.SharedImagesCacheTTL)
		extra = append(extra, lifecycle.Task{
			Name:     "redis",
			Timeout:  cfg.ShutdownServerTimeout,
			Shutdown: lifecycle.CloserAdapter(rdb.Close).Shutdown,
		})
		logger.Info("Shared image cache backed by redis", slog.String("addr", cfg.RedisAddr))
	} else {
		imageStore = cache.NewMemoryStore[[]models.Image](cfg.SharedImagesCacheTTL)
	}

	// --- Customer lookups are optional ---
	var customerRepo repositories.CustomerRepository
	if cfg.DatabaseURL != "" {
		database, err := openDatabase(ctx, cfg)
		if err != nil {
			logger.Error("Failed to open customer database", slog.Any("error", err))
			os.Exit(1)
		}
		customerRepo = repositories.NewCustomerRepository(database)
		extra = append(extra, lifecycle.Task{
			Name:     "database",
			Timeout:  cfg.ShutdownServerTimeout,
			Shutdown: lifecycle.CloserAdapter(database.Close).Shutdown,
		})
	}

	// --- Service and Handler Initialization ---
	catalogRepo := repositories.NewCatalogRepository(client, cfg.CatalogAPIURL, cfg.CatalogDataFilePath)
	images := repositories.NewSharedImageRepository(client, cfg.SharedImagesAPIURL, imageStore, reg)
	catalogService := services.NewCatalogService(catalogRepo, images, services.Options{
		CategoryOrder: cfg.CategoryOrder,
		PriceLocale:   cfg.PriceLocale,
		ShopBaseURL:   cfg.KiotvietBaseURL,
		ContactURL:    cfg.ZaloURL,
	}, reg)
	customerService := services.NewCustomerService(customerRepo, cfg.PriceLocale)
	handler := handlers.NewStorefrontHandler(catalogService, customerService)

	logger.Info("Starting storefront", slog.String("catalog_source", catalogRepo.Source()))

	// --- Fiber App Initialization with Error Handler ---
	app := fiber.New(fiber.Config{
		AppName:      cfg.ServiceName,
		ErrorHandler: middleware.ErrorHandler(),
	})
	middleware.Register(app, middleware.Config{Metrics: reg, Logger: logger})

	// --- Route Definitions ---
	app.Get("/metrics", adaptor.HTTPHandler(reg.Handler()))
	handlers.RegisterRoutes(app, handler)
	logger.Info("Routes registered")

	// --- Server Startup ---
	addr := fmt.Sprintf(":%s", cfg.StorefrontPort)
	go func() {
		logger.Info("Server starting to listen", slog.String("address", addr))
		if err := app.Listen(addr); err != nil {
			logger.Error("Server listener failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	err := lifecycle.WaitForGracefulShutdown(globals.Bootstrap(), lifecycle.Timeouts{
		Total:  cfg.ShutdownTotalTimeout,
		Server: cfg.ShutdownServerTimeout,
		Otel:   cfg.ShutdownOtelMinTimeout,
	}, &lifecycle.FiberShutdownAdapter{App: app}, globals.ShutdownTelemetry, extra...)
	if err != nil {
		os.Exit(1)
	}
}

func openDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.APITimeout)
	defer cancel()
	return repositories.OpenDatabase(ctx, cfg.DatabaseURL)
}
