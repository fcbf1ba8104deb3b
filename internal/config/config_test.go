package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testNRELKey = "nrel-test-key"
	testEIAKey  = "eia-test-key"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.NRELAPIKey)
	assert.Empty(t, cfg.EIAAPIKey)
	assert.False(t, cfg.LiveDataEnabled)
	assert.Equal(t, 5*time.Second, cfg.LiveDataTimeout)
	assert.Equal(t, 1000, cfg.LiveDataCacheSize)
	assert.False(t, cfg.EventsEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "solar-estimates", cfg.KafkaEstimateTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("NREL_API_KEY", testNRELKey)
	t.Setenv("EIA_API_KEY", testEIAKey)
	t.Setenv("LIVE_DATA_TIMEOUT", "2s")
	t.Setenv("LIVE_DATA_CACHE_SIZE", "250")
	t.Setenv("EVENTS_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_ESTIMATE_TOPIC", "custom-estimates")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, testNRELKey, cfg.NRELAPIKey)
	assert.Equal(t, testEIAKey, cfg.EIAAPIKey)
	assert.True(t, cfg.LiveDataEnabled)
	assert.Equal(t, 2*time.Second, cfg.LiveDataTimeout)
	assert.Equal(t, 250, cfg.LiveDataCacheSize)
	assert.True(t, cfg.EventsEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-estimates", cfg.KafkaEstimateTopic)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidLiveDataTimeout(t *testing.T) {
	t.Setenv("LIVE_DATA_TIMEOUT", "bad")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LIVE_DATA_TIMEOUT")
}

func TestLoad_NegativeLiveDataTimeout(t *testing.T) {
	t.Setenv("LIVE_DATA_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LIVE_DATA_TIMEOUT")
}

func TestLoad_LiveEnabledWithoutKeys(t *testing.T) {
	t.Setenv("LIVE_DATA_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NREL_API_KEY")
}

func TestLoad_SingleKeyImpliesEnabled(t *testing.T) {
	t.Setenv("EIA_API_KEY", testEIAKey)
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.LiveDataEnabled)
	assert.Empty(t, cfg.NRELAPIKey)
}

func TestLoad_LiveExplicitlyDisabled(t *testing.T) {
	t.Setenv("NREL_API_KEY", testNRELKey)
	t.Setenv("LIVE_DATA_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.LiveDataEnabled)
}

func TestLoad_LiveDataEnabledSpellings(t *testing.T) {
	for _, v := range []string{"1", "TRUE", "True", "t"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("NREL_API_KEY", testNRELKey)
			t.Setenv("LIVE_DATA_ENABLED", v)
			cfg, err := Load()
			require.NoError(t, err)
			assert.True(t, cfg.LiveDataEnabled)
		})
	}
	for _, v := range []string{"0", "FALSE", "f"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("NREL_API_KEY", testNRELKey)
			t.Setenv("LIVE_DATA_ENABLED", v)
			cfg, err := Load()
			require.NoError(t, err)
			assert.False(t, cfg.LiveDataEnabled)
		})
	}
}

func TestLoad_InvalidLiveDataEnabled(t *testing.T) {
	t.Setenv("NREL_API_KEY", testNRELKey)
	t.Setenv("LIVE_DATA_ENABLED", "yes")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LIVE_DATA_ENABLED")
}

func TestLoad_InvalidEventsEnabled(t *testing.T) {
	t.Setenv("EVENTS_ENABLED", "on")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EVENTS_ENABLED")
}

func TestLoad_InvalidCacheSizeUsesDefault(t *testing.T) {
	t.Setenv("LIVE_DATA_CACHE_SIZE", "-5")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.LiveDataCacheSize)
}
