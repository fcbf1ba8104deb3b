package observability

import (
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/solar-roi-service/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger(&config.Config{LogLevel: "debug", LogFormat: "text"})
	assert.NotNil(t, logger)
	assert.True(t, logger.Handler().Enabled(t.Context(), slog.LevelDebug))

	logger = NewLogger(&config.Config{LogLevel: "error", LogFormat: "json"})
	assert.False(t, logger.Handler().Enabled(t.Context(), slog.LevelWarn))
}

func TestNewUnregisteredMetrics(t *testing.T) {
	first := NewUnregisteredMetrics()
	second := NewUnregisteredMetrics()
	assert.NotSame(t, first.Estimates, second.Estimates)

	// Nothing reached the default registry, so registering there succeeds.
	require.NoError(t, prometheus.Register(first.Estimates))
	t.Cleanup(func() { prometheus.Unregister(first.Estimates) })

	first.Estimates.WithLabelValues("sample").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(first.Estimates.WithLabelValues("sample")))
	assert.Zero(t, testutil.ToFloat64(second.Estimates.WithLabelValues("sample")))
}

func TestRecordLookup(t *testing.T) {
	m := NewMetricsForTesting()

	m.RecordLookup("price", "success", 120*time.Millisecond)
	m.RecordLookup("price", "error", time.Second)
	m.RecordLookup("irradiance", "success", 80*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues("price", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues("price", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues("irradiance", "success")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.LookupDuration))
}

func TestRecordCache(t *testing.T) {
	m := NewMetricsForTesting()

	m.RecordCache("irradiance", true)
	m.RecordCache("irradiance", false)
	m.RecordCache("irradiance", true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.LookupCache.WithLabelValues("irradiance", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LookupCache.WithLabelValues("irradiance", "miss")))
}
