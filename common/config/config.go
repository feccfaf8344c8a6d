package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Initialize a minimal logger for config loading phase
var configLogger = logrus.New()

func init() {
	configLogger.SetOutput(os.Stderr)
	configLogger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	configLogger.SetLevel(logrus.InfoLevel)
}

// Constants for keys and validation lists
const (
	envServiceName            = "SERVICE_NAME"
	envServiceVersion         = "SERVICE_VERSION"
	envEnvironment            = "ENVIRONMENT"
	envLogLevel               = "LOG_LEVEL"
	envLogFormat              = "LOG_FORMAT"
	envStorefrontPort         = "STOREFRONT_PORT"
	envOtelEnabled            = "OTEL_ENABLED"
	envOtelExporterEndpoint   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelExporterInsecure   = "OTEL_EXPORTER_INSECURE"
	envOtelSampleRatio        = "OTEL_SAMPLE_RATIO"
	envCatalogAPIURL          = "CATALOG_API_URL"
	envCatalogDataFilePath    = "CATALOG_DATA_FILE_PATH"
	envSharedImagesAPIURL     = "SHARED_IMAGES_API_URL"
	envSharedImagesCacheTTL   = "SHARED_IMAGES_CACHE_TTL_SEC"
	envAPITimeoutMS           = "API_TIMEOUT_MS"
	envAPIRetries             = "API_RETRIES"
	envAPIRetryDelayMS        = "API_RETRY_DELAY_MS"
	envAPIMaxRetryDelayMS     = "API_MAX_RETRY_DELAY_MS"
	envAPIRateLimitRPS        = "API_RATE_LIMIT_RPS"
	envAPIRateBurst           = "API_RATE_BURST"
	envCategoryOrder          = "CATEGORY_ORDER"
	envPriceLocale            = "PRICE_LOCALE"
	envKiotvietBaseURL        = "KIOTVIET_BASE_URL"
	envZaloURL                = "ZALO_URL"
	envRedisAddr              = "REDIS_ADDR"
	envDatabaseURL            = "DATABASE_URL"
	envShutdownTotalTimeout   = "SHUTDOWN_TOTAL_TIMEOUT_SEC"
	envShutdownServerTimeout  = "SHUTDOWN_SERVER_TIMEOUT_SEC"
	envShutdownOtelMinTimeout = "SHUTDOWN_OTEL_MIN_TIMEOUT_SEC"
)

var (
	allowedLogLevels  = []string{"debug", "info", "warn", "error"}
	allowedLogFormats = []string{"text", "json"}
)

// Config holds all configuration settings
type Config struct {
	// Service information
	ServiceName    string
	ServiceVersion string
	Environment    string

	// OpenTelemetry configuration
	OtelEnabled     bool
	OtelEndpoint    string
	OtelInsecure    bool
	OtelSampleRatio float64

	// Logging configuration
	LogLevel  string
	LogFormat string

	// HTTP server
	StorefrontPort string

	// Catalog sources. Exactly one of CatalogAPIURL / CatalogDataFilePath is used,
	// the URL wins when both are set.
	CatalogAPIURL          string
	CatalogDataFilePath    string
	SharedImagesAPIURL     string
	SharedImagesCacheTTL   time.Duration
	APITimeout             time.Duration
	APIRetries             int
	APIRetryDelay          time.Duration
	APIMaxRetryDelay       time.Duration
	APIRateLimitRPS        float64
	APIRateBurst           int
	CategoryOrder          []string
	PriceLocale            string
	KiotvietBaseURL        string
	ZaloURL                string
	RedisAddr              string
	DatabaseURL            string
	ShutdownTotalTimeout   time.Duration
	ShutdownServerTimeout  time.Duration
	ShutdownOtelMinTimeout time.Duration
}

// NewConfig creates a new Config with the provided options
func NewConfig(opts ...Option) *Config {
	c := NewDefaultConfig()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadConfig reads storefront.yaml (if present) and the environment, env winning.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("storefront")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		configLogger.Debug("No storefront.yaml found, using environment and defaults")
	} else {
		configLogger.WithField("file", v.ConfigFileUsed()).Info("Config file loaded")
	}

	cfg := fromViper(v)
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := NewDefaultConfig()
	v.SetDefault(envServiceName, d.ServiceName)
	v.SetDefault(envServiceVersion, d.ServiceVersion)
	v.SetDefault(envEnvironment, d.Environment)
	v.SetDefault(envLogLevel, d.LogLevel)
	v.SetDefault(envLogFormat, d.LogFormat)
	v.SetDefault(envStorefrontPort, d.StorefrontPort)
	v.SetDefault(envOtelEnabled, d.OtelEnabled)
	v.SetDefault(envOtelExporterEndpoint, d.OtelEndpoint)
	v.SetDefault(envOtelExporterInsecure, d.OtelInsecure)
	v.SetDefault(envOtelSampleRatio, d.OtelSampleRatio)
	v.SetDefault(envSharedImagesCacheTTL, int(d.SharedImagesCacheTTL/time.Second))
	v.SetDefault(envAPITimeoutMS, int(d.APITimeout/time.Millisecond))
	v.SetDefault(envAPIRetries, d.APIRetries)
	v.SetDefault(envAPIRetryDelayMS, int(d.APIRetryDelay/time.Millisecond))
	v.SetDefault(envAPIMaxRetryDelayMS, int(d.APIMaxRetryDelay/time.Millisecond))
	v.SetDefault(envAPIRateLimitRPS, d.APIRateLimitRPS)
	v.SetDefault(envAPIRateBurst, d.APIRateBurst)
	v.SetDefault(envCategoryOrder, strings.Join(d.CategoryOrder, ","))
	v.SetDefault(envPriceLocale, d.PriceLocale)
	v.SetDefault(envKiotvietBaseURL, d.KiotvietBaseURL)
	v.SetDefault(envZaloURL, d.ZaloURL)
	v.SetDefault(envShutdownTotalTimeout, int(d.ShutdownTotalTimeout/time.Second))
	v.SetDefault(envShutdownServerTimeout, int(d.ShutdownServerTimeout/time.Second))
	v.SetDefault(envShutdownOtelMinTimeout, int(d.ShutdownOtelMinTimeout/time.Second))
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		ServiceName:            v.GetString(envServiceName),
		ServiceVersion:         v.GetString(envServiceVersion),
		Environment:            v.GetString(envEnvironment),
		OtelEnabled:            v.GetBool(envOtelEnabled),
		OtelEndpoint:           v.GetString(envOtelExporterEndpoint),
		OtelInsecure:           v.GetBool(envOtelExporterInsecure),
		OtelSampleRatio:        v.GetFloat64(envOtelSampleRatio),
		LogLevel:               strings.ToLower(v.GetString(envLogLevel)),
		LogFormat:              strings.ToLower(v.GetString(envLogFormat)),
		StorefrontPort:         v.GetString(envStorefrontPort),
		CatalogAPIURL:          v.GetString(envCatalogAPIURL),
		CatalogDataFilePath:    v.GetString(envCatalogDataFilePath),
		SharedImagesAPIURL:     v.GetString(envSharedImagesAPIURL),
		SharedImagesCacheTTL:   time.Duration(v.GetInt(envSharedImagesCacheTTL)) * time.Second,
		APITimeout:             time.Duration(v.GetInt(envAPITimeoutMS)) * time.Millisecond,
		APIRetries:             v.GetInt(envAPIRetries),
		APIRetryDelay:          time.Duration(v.GetInt(envAPIRetryDelayMS)) * time.Millisecond,
		APIMaxRetryDelay:       time.Duration(v.GetInt(envAPIMaxRetryDelayMS)) * time.Millisecond,
		APIRateLimitRPS:        v.GetFloat64(envAPIRateLimitRPS),
		APIRateBurst:           v.GetInt(envAPIRateBurst),
		CategoryOrder:          parseList(v.Get(envCategoryOrder)),
		PriceLocale:            v.GetString(envPriceLocale),
		KiotvietBaseURL:        strings.TrimRight(v.GetString(envKiotvietBaseURL), "/"),
		ZaloURL:                v.GetString(envZaloURL),
		RedisAddr:              v.GetString(envRedisAddr),
		DatabaseURL:            v.GetString(envDatabaseURL),
		ShutdownTotalTimeout:   time.Duration(v.GetInt(envShutdownTotalTimeout)) * time.Second,
		ShutdownServerTimeout:  time.Duration(v.GetInt(envShutdownServerTimeout)) * time.Second,
		ShutdownOtelMinTimeout: time.Duration(v.GetInt(envShutdownOtelMinTimeout)) * time.Second,
	}
}

// parseList accepts a YAML list or a comma separated env string. Category
// names contain spaces, so whitespace splitting is not an option.
func parseList(raw interface{}) []string {
	var parts []string
	switch val := raw.(type) {
	case string:
		parts = strings.Split(val, ",")
	case []string:
		parts = val
	case []interface{}:
		for _, item := range val {
			parts = append(parts, fmt.Sprint(item))
		}
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate validates the configuration
func (c *Config) Validate() []error {
	validator := NewValidator()

	validator.RequireNonEmpty("ServiceName", c.ServiceName)
	validator.RequireNonEmpty("ServiceVersion", c.ServiceVersion)
	validator.RequireNonEmpty("LogLevel", c.LogLevel)
	validator.RequireNonEmpty("LogFormat", c.LogFormat)
	validator.RequireNonEmpty("StorefrontPort", c.StorefrontPort)

	validator.RequireOneOf("LogLevel", c.LogLevel, allowedLogLevels)
	validator.RequireOneOf("LogFormat", c.LogFormat, allowedLogFormats)

	if port, err := strconv.Atoi(c.StorefrontPort); err == nil {
		RequireInRange(validator, "StorefrontPort", port, 1, 65535)
	} else {
		validator.AddError("StorefrontPort", "must be a valid integer")
	}

	RequireInRange(validator, "OtelSampleRatio", c.OtelSampleRatio, 0.0, 1.0)
	if c.OtelEnabled {
		validator.RequireNonEmpty("OtelEndpoint", c.OtelEndpoint)
	}

	// The page cannot render anything without a catalog source.
	if c.CatalogAPIURL == "" && c.CatalogDataFilePath == "" {
		validator.AddError("CatalogAPIURL", "either CATALOG_API_URL or CATALOG_DATA_FILE_PATH must be set")
	}
	if c.CatalogAPIURL != "" {
		validator.RequireURL("CatalogAPIURL", c.CatalogAPIURL)
	} else if c.CatalogDataFilePath != "" {
		if _, err := os.Stat(c.CatalogDataFilePath); os.IsNotExist(err) {
			validator.AddError("CatalogDataFilePath", "file does not exist: "+c.CatalogDataFilePath)
		}
	}
	if c.SharedImagesAPIURL != "" {
		validator.RequireURL("SharedImagesAPIURL", c.SharedImagesAPIURL)
	}

	RequireInRange(validator, "APIRetries", c.APIRetries, 0, 10)
	RequireInRange(validator, "APITimeout", c.APITimeout, 100*time.Millisecond, 2*time.Minute)
	if c.APIMaxRetryDelay < c.APIRetryDelay {
		validator.AddError("APIMaxRetryDelay", "must not be smaller than APIRetryDelay")
	}
	if c.APIRateLimitRPS <= 0 {
		validator.AddError("APIRateLimitRPS", "must be positive")
	}
	validator.RequireURL("KiotvietBaseURL", c.KiotvietBaseURL)

	return validator.Errors()
}

// Log logs the current configuration
func (c *Config) Log() {
	logrus.WithFields(logrus.Fields{
		"service_name":          c.ServiceName,
		"service_version":       c.ServiceVersion,
		"environment":           c.Environment,
		"otel_enabled":          c.OtelEnabled,
		"otel_endpoint":         c.OtelEndpoint,
		"log_level":             c.LogLevel,
		"log_format":            c.LogFormat,
		"port":                  c.StorefrontPort,
		"catalog_api_url":       redactURL(c.CatalogAPIURL),
		"catalog_data_file":     c.CatalogDataFilePath,
		"shared_images_api_url": redactURL(c.SharedImagesAPIURL),
		"shared_images_ttl":     c.SharedImagesCacheTTL,
		"api_timeout":           c.APITimeout,
		"api_retries":           c.APIRetries,
		"category_order":        c.CategoryOrder,
		"redis_enabled":         c.RedisAddr != "",
		"customers_enabled":     c.DatabaseURL != "",
		"shutdown_total":        c.ShutdownTotalTimeout,
	}).Info("Configuration loaded")
}

// redactURL drops query strings, which may carry API keys.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || raw == "" {
		return raw
	}
	u.RawQuery = ""
	u.User = nil
	return u.String()
}
