package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"
)

func TestClassifyStatus(t *testing.T) {
	assert.Equal(t, ClassifyStatus(0), "error")
	assert.Equal(t, ClassifyStatus(204), "2xx")
	assert.Equal(t, ClassifyStatus(301), "3xx")
	assert.Equal(t, ClassifyStatus(408), "4xx")
	assert.Equal(t, ClassifyStatus(503), "5xx")
	assert.Equal(t, ClassifyStatus(700), "unknown")
}

func TestRegistryRecords(t *testing.T) {
	r := NewRegistry()
	r.RecordUpstream("api.example.com", 502, time.Second)
	r.RecordUpstream("api.example.com", 200, time.Second)
	r.RecordRetry("api.example.com")
	r.RecordCacheLookup("shared_images", true)
	r.RecordCacheLookup("shared_images", false)
	r.RecordCacheLookup("shared_images", false)
	r.RecordsSkipped.Add(2)

	assert.Equal(t, testutil.ToFloat64(r.UpstreamRequests.WithLabelValues("api.example.com", "5xx")), 1.0)
	assert.Equal(t, testutil.ToFloat64(r.UpstreamRetries.WithLabelValues("api.example.com")), 1.0)
	assert.Equal(t, testutil.ToFloat64(r.CacheMisses.WithLabelValues("shared_images")), 2.0)
	assert.Equal(t, testutil.ToFloat64(r.RecordsSkipped), 2.0)
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := NewRegistry()
	r.RecordRequest(http.MethodGet, "/products", 200, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, rec.Code, http.StatusOK)
	assert.Assert(t, is.Contains(rec.Body.String(), `storefront_http_requests_total{method="GET",route="/products",status="2xx"} 1`))
}
