package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/gaolamthuy/storefront/common/config"
	"github.com/sirupsen/logrus"
	otellog "go.opentelemetry.io/otel/log"
	"gotest.tools/assert"
)

func TestMapLogLevel(t *testing.T) {
	assert.Equal(t, mapLogLevel(logrus.DebugLevel), otellog.SeverityDebug)
	assert.Equal(t, mapLogLevel(logrus.WarnLevel), otellog.SeverityWarn)
	assert.Equal(t, mapLogLevel(logrus.PanicLevel), otellog.SeverityFatal)
}

func TestToKeyValue(t *testing.T) {
	assert.Equal(t, toKeyValue("n", 3).Value.AsInt64(), int64(3))
	assert.Equal(t, toKeyValue("err", errors.New("boom")).Value.AsString(), "boom")
	assert.Equal(t, toKeyValue("d", 2*time.Second).Value.AsString(), "2s")
	assert.Equal(t, toKeyValue("s", []string{"a"}).Value.AsString(), "[a]")
}

func TestFireWithoutProvider(t *testing.T) {
	entry := logrus.NewEntry(logrus.New()).WithField("k", "v")
	entry.Message = "hello"
	assert.NilError(t, NewOtelHook().Fire(entry))
}

func TestSetupLogrusFallsBackOnBadLevel(t *testing.T) {
	cfg := config.NewConfig(config.WithLogLevel("loud"), config.WithLogFormat("json"))
	logger := SetupLogrus(cfg)
	assert.Equal(t, logger.GetLevel(), logrus.InfoLevel)
	_, isJSON := logger.Formatter.(*logrus.JSONFormatter)
	assert.Assert(t, isJSON)
}
