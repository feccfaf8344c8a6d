package config

import "time"

// Option is a function that configures a Config
type Option func(*Config)

// WithServiceName sets the service name
func WithServiceName(name string) Option {
	return func(c *Config) {
		c.ServiceName = name
	}
}

// WithEnvironment sets the deployment environment
func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithLogLevel sets the log level
func WithLogLevel(level string) Option {
	return func(c *Config) {
		c.LogLevel = level
	}
}

// WithLogFormat sets the log format
func WithLogFormat(format string) Option {
	return func(c *Config) {
		c.LogFormat = format
	}
}

// WithOtel enables telemetry export to the given OTLP endpoint
func WithOtel(endpoint string, insecure bool) Option {
	return func(c *Config) {
		c.OtelEnabled = true
		c.OtelEndpoint = endpoint
		c.OtelInsecure = insecure
	}
}

// WithCatalogAPIURL sets the upstream catalog endpoint
func WithCatalogAPIURL(u string) Option {
	return func(c *Config) {
		c.CatalogAPIURL = u
	}
}

// WithCatalogDataFilePath serves the catalog from a local JSON file
func WithCatalogDataFilePath(path string) Option {
	return func(c *Config) {
		c.CatalogDataFilePath = path
	}
}

// WithSharedImagesAPIURL sets the shared fallback image endpoint
func WithSharedImagesAPIURL(u string) Option {
	return func(c *Config) {
		c.SharedImagesAPIURL = u
	}
}

// WithRetryPolicy overrides upstream timeout and retry settings
func WithRetryPolicy(timeout time.Duration, retries int, delay, maxDelay time.Duration) Option {
	return func(c *Config) {
		c.APITimeout = timeout
		c.APIRetries = retries
		c.APIRetryDelay = delay
		c.APIMaxRetryDelay = maxDelay
	}
}

// WithCategoryOrder sets the category priority list
func WithCategoryOrder(order ...string) Option {
	return func(c *Config) {
		c.CategoryOrder = order
	}
}

// WithRedisAddr stores shared images in Redis instead of process memory
func WithRedisAddr(addr string) Option {
	return func(c *Config) {
		c.RedisAddr = addr
	}
}

// WithDatabaseURL enables customer lookups
func WithDatabaseURL(dsn string) Option {
	return func(c *Config) {
		c.DatabaseURL = dsn
	}
}

// WithStorefrontPort sets the HTTP port
func WithStorefrontPort(port string) Option {
	return func(c *Config) {
		c.StorefrontPort = port
	}
}
