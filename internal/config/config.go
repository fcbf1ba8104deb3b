package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Live environmental data (NREL irradiance, EIA retail prices).
	NRELAPIKey        string
	EIAAPIKey         string
	LiveDataEnabled   bool
	LiveDataTimeout   time.Duration
	LiveDataCacheSize int

	// Estimate event publishing.
	EventsEnabled      bool
	KafkaBrokers       []string
	KafkaEstimateTopic string
}

// LoadDotEnv reads a .env file into the environment outside production.
// A missing file is not an error.
func LoadDotEnv() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	liveTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("LIVE_DATA_TIMEOUT", "5s"))
	if err != nil || liveTimeout <= 0 {
		return nil, errors.New("invalid LIVE_DATA_TIMEOUT")
	}

	nrelKey := os.Getenv("NREL_API_KEY")
	eiaKey := os.Getenv("EIA_API_KEY")
	liveEnabled, err := parseFlag("LIVE_DATA_ENABLED", nrelKey != "" || eiaKey != "")
	if err != nil {
		return nil, err
	}
	eventsEnabled, err := parseFlag("EVENTS_ENABLED", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		NRELAPIKey:        nrelKey,
		EIAAPIKey:         eiaKey,
		LiveDataEnabled:   liveEnabled,
		LiveDataTimeout:   liveTimeout,
		LiveDataCacheSize: parseCacheSize(),

		EventsEnabled:      eventsEnabled,
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaEstimateTopic: sharedcfg.EnvOrDefault("KAFKA_ESTIMATE_TOPIC", "solar-estimates"),
	}

	if cfg.LiveDataEnabled && cfg.NRELAPIKey == "" && cfg.EIAAPIKey == "" {
		return nil, errors.New("LIVE_DATA_ENABLED is true but neither NREL_API_KEY nor EIA_API_KEY is set")
	}
	if cfg.EventsEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("EVENTS_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.EventsEnabled && cfg.KafkaEstimateTopic == "" {
		return nil, errors.New("KAFKA_ESTIMATE_TOPIC is required when EVENTS_ENABLED is true")
	}

	return cfg, nil
}

// parseFlag reads a boolean variable in any form strconv.ParseBool accepts,
// returning def when it is unset.
func parseFlag(name string, def bool) (bool, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %q", name, v)
	}
	return b, nil
}

func parseCacheSize() int {
	if s := os.Getenv("LIVE_DATA_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
