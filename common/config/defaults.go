package config

import "time"

// DefaultCategoryOrder is the shelf order used on the home page.
var DefaultCategoryOrder = []string{
	"Gạo nở",
	"Gạo dẻo",
	"Gạo chính hãng",
	"Tấm",
	"Nếp",
	"Lúa - Gạo Lứt",
}

// NewDefaultConfig provides a configuration with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		// Service information
		ServiceName:    "storefront",
		ServiceVersion: "dev",
		Environment:    "development",

		// OpenTelemetry configuration
		OtelEnabled:     false,
		OtelEndpoint:    "localhost:4317",
		OtelInsecure:    true,
		OtelSampleRatio: 1.0,

		// Logging configuration
		LogLevel:  "info",
		LogFormat: "text",

		StorefrontPort: "8080",

		// Upstream catalog API
		SharedImagesCacheTTL: 5 * time.Minute,
		APITimeout:           10 * time.Second,
		APIRetries:           3,
		APIRetryDelay:        time.Second,
		APIMaxRetryDelay:     8 * time.Second,
		APIRateLimitRPS:      5,
		APIRateBurst:         5,

		CategoryOrder:   append([]string(nil), DefaultCategoryOrder...),
		PriceLocale:     "vi",
		KiotvietBaseURL: "https://gaolamthuy.kiotviet.vn",
		ZaloURL:         "https://zalo.me/0901467300",

		// Shutdown timeouts
		ShutdownTotalTimeout:   30 * time.Second,
		ShutdownServerTimeout:  10 * time.Second,
		ShutdownOtelMinTimeout: 5 * time.Second,
	}
}
