package estimator

import (
	"log/slog"

	"github.com/couchcryptid/solar-roi-service/internal/adapter/cache"
	"github.com/couchcryptid/solar-roi-service/internal/adapter/eia"
	"github.com/couchcryptid/solar-roi-service/internal/adapter/nrel"
	"github.com/couchcryptid/solar-roi-service/internal/config"
	"github.com/couchcryptid/solar-roi-service/internal/domain"
	"github.com/couchcryptid/solar-roi-service/internal/observability"
)

// NewProvider selects the environmental data strategy from configuration.
// With live data enabled, each source whose API key is set is queried
// through an LRU cache; a source without a key answers from the static
// tables.
func NewProvider(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) domain.EnvironmentProvider {
	if !cfg.LiveDataEnabled {
		metrics.LiveDataEnabled.Set(0)
		logger.Info("live environmental data disabled, using static tables")
		return domain.StaticProvider{}
	}

	var (
		irradiance domain.IrradianceSource
		prices     domain.PriceSource
	)
	if cfg.NRELAPIKey != "" {
		client := nrel.NewClient(cfg.NRELAPIKey, cfg.LiveDataTimeout, logger)
		irradiance = cache.NewCachedIrradiance(client, cfg.LiveDataCacheSize, metrics)
	}
	if cfg.EIAAPIKey != "" {
		client := eia.NewClient(cfg.EIAAPIKey, cfg.LiveDataTimeout, logger)
		prices = cache.NewCachedPrice(client, cfg.LiveDataCacheSize, metrics)
	}

	metrics.LiveDataEnabled.Set(1)
	logger.Info("live environmental data enabled",
		"irradiance", irradiance != nil,
		"prices", prices != nil,
		"cache_size", cfg.LiveDataCacheSize,
		"timeout", cfg.LiveDataTimeout,
	)
	return domain.NewLiveProvider(irradiance, prices, metrics, logger)
}
