package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"
)

func joinErrors(errs []error) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

func TestDefaultsNeedCatalogSource(t *testing.T) {
	errs := NewDefaultConfig().Validate()
	assert.Equal(t, len(errs), 1)
	assert.Assert(t, is.Contains(joinErrors(errs), "CATALOG_API_URL or CATALOG_DATA_FILE_PATH"))
}

func TestNewConfigWithOptions(t *testing.T) {
	c := NewConfig(
		WithCatalogAPIURL("https://api.example.com/products"),
		WithCategoryOrder("Nếp", "Tấm"),
		WithRetryPolicy(2*time.Second, 1, 10*time.Millisecond, 20*time.Millisecond),
	)
	assert.Equal(t, len(c.Validate()), 0)
	assert.DeepEqual(t, c.CategoryOrder, []string{"Nếp", "Tấm"})
	assert.Equal(t, c.APIRetries, 1)
	assert.Equal(t, c.SharedImagesCacheTTL, 5*time.Minute)
}

func TestValidateRejectsBadValues(t *testing.T) {
	c := NewConfig(
		WithCatalogAPIURL("not a url"),
		WithLogLevel("loud"),
		WithStorefrontPort("99999"),
		WithRetryPolicy(time.Second, 3, 2*time.Second, time.Second),
	)
	msg := joinErrors(c.Validate())
	assert.Assert(t, is.Contains(msg, "CatalogAPIURL: must be an absolute http(s) URL"))
	assert.Assert(t, is.Contains(msg, "LogLevel: must be one of"))
	assert.Assert(t, is.Contains(msg, "StorefrontPort: must be between 1 and 65535"))
	assert.Assert(t, is.Contains(msg, "APIMaxRetryDelay"))
}

func TestValidateMissingDataFile(t *testing.T) {
	c := NewConfig(WithCatalogDataFilePath(filepath.Join(t.TempDir(), "nope.json")))
	assert.Assert(t, is.Contains(joinErrors(c.Validate()), "file does not exist"))
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CATALOG_API_URL", "https://api.example.com/products?key=secret")
	t.Setenv("CATEGORY_ORDER", "Gạo nở, Gạo dẻo ,,Nếp")
	t.Setenv("API_TIMEOUT_MS", "2500")
	t.Setenv("LOG_LEVEL", "DEBUG")

	c, err := LoadConfig()
	assert.NilError(t, err)
	assert.DeepEqual(t, c.CategoryOrder, []string{"Gạo nở", "Gạo dẻo", "Nếp"})
	assert.Equal(t, c.APITimeout, 2500*time.Millisecond)
	assert.Equal(t, c.LogLevel, "debug")
	assert.Equal(t, c.APIRetries, 3)
	assert.Equal(t, c.KiotvietBaseURL, "https://gaolamthuy.kiotviet.vn")
}

func TestLoadConfigFails(t *testing.T) {
	os.Unsetenv("CATALOG_API_URL")
	os.Unsetenv("CATALOG_DATA_FILE_PATH")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestParseListAndRedact(t *testing.T) {
	assert.DeepEqual(t, parseList([]interface{}{"A", " B "}), []string{"A", "B"})
	assert.DeepEqual(t, parseList(nil), []string{})
	assert.Equal(t, redactURL("https://u:p@api.example.com/x?key=1"), "https://api.example.com/x")
}

func TestRequireInRangeGeneric(t *testing.T) {
	v := NewValidator()
	RequireInRange(v, "ratio", 1.5, 0.0, 1.0)
	RequireInRange(v, "n", 3, 1, 5)
	RequireInRange(v, "d", 3*time.Minute, time.Second, time.Minute)
	assert.Equal(t, len(v.Errors()), 2)
}
