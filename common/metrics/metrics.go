package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry owns a private prometheus registry so tests can build as many as
// they like without duplicate-registration panics.
type Registry struct {
	reg *prometheus.Registry

	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	UpstreamRetries  *prometheus.CounterVec

	RecordsSkipped prometheus.Counter
	CacheHits      *prometheus.CounterVec
	CacheMisses    *prometheus.CounterVec
	CatalogSize    prometheus.Gauge
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_http_requests_total",
		Help: "Total number of HTTP requests served.",
	}, []string{"method", "route", "status"})
	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_http_request_duration_seconds",
		Help:    "Histogram of HTTP request durations.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
	}, []string{"method", "route", "status"})

	upstreamRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_upstream_requests_total",
		Help: "Upstream API attempts by host and status class.",
	}, []string{"host", "status"})
	upstreamDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_upstream_request_duration_seconds",
		Help:    "Duration of upstream API attempts.",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"host", "status"})
	upstreamRetries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_upstream_retries_total",
		Help: "Retries scheduled after a 5xx upstream response.",
	}, []string{"host"})

	skipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_catalog_records_skipped_total",
		Help: "Raw catalog records dropped during normalization.",
	})
	cacheHits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cache_hits_total",
		Help: "Cache lookups served from cache.",
	}, []string{"cache"})
	cacheMisses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cache_misses_total",
		Help: "Cache lookups that required a refetch.",
	}, []string{"cache"})
	catalogSize := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_catalog_products",
		Help: "Number of displayable products in the last normalized catalog.",
	})

	r.MustRegister(
		httpRequests, httpDuration,
		upstreamRequests, upstreamDuration, upstreamRetries,
		skipped, cacheHits, cacheMisses, catalogSize,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Registry{
		reg:                 r,
		HTTPRequests:        httpRequests,
		HTTPRequestDuration: httpDuration,
		UpstreamRequests:    upstreamRequests,
		UpstreamDuration:    upstreamDuration,
		UpstreamRetries:     upstreamRetries,
		RecordsSkipped:      skipped,
		CacheHits:           cacheHits,
		CacheMisses:         cacheMisses,
		CatalogSize:         catalogSize,
	}
}

// RecordRequest records one served HTTP request.
func (r *Registry) RecordRequest(method, route string, statusCode int, duration time.Duration) {
	status := ClassifyStatus(statusCode)
	r.HTTPRequests.WithLabelValues(method, route, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// RecordUpstream records one upstream attempt. statusCode 0 means the
// request never produced a response.
func (r *Registry) RecordUpstream(host string, statusCode int, duration time.Duration) {
	status := ClassifyStatus(statusCode)
	r.UpstreamRequests.WithLabelValues(host, status).Inc()
	r.UpstreamDuration.WithLabelValues(host, status).Observe(duration.Seconds())
}

func (r *Registry) RecordRetry(host string) {
	r.UpstreamRetries.WithLabelValues(host).Inc()
}

func (r *Registry) RecordCacheLookup(cache string, hit bool) {
	if hit {
		r.CacheHits.WithLabelValues(cache).Inc()
		return
	}
	r.CacheMisses.WithLabelValues(cache).Inc()
}

// ClassifyStatus buckets a status code into its class label.
func ClassifyStatus(statusCode int) string {
	switch {
	case statusCode == 0:
		return "error"
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500 && statusCode < 600:
		return "5xx"
	}
	return "unknown"
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
