package domain

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"
)

// DefaultPricePerKWh is the static residential price for states missing from
// the price table.
const DefaultPricePerKWh = 0.15

// DataSource records where an environmental value came from.
type DataSource string

const (
	SourceStatic   DataSource = "static"   // static tables, by configuration
	SourceLive     DataSource = "live"     // external data source
	SourceFallback DataSource = "fallback" // static tables after a failed live lookup
	SourceSample   DataSource = "sample"   // per-ZIP sample table
)

// Lookup names used for logging and metrics.
const (
	LookupIrradiance = "irradiance"
	LookupPrice      = "price"
)

// Lookup outcomes used for metrics.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeInvalid = "invalid"
)

// Reading is a single environmental value and its origin.
type Reading struct {
	Value  float64
	Source DataSource
}

// EnvironmentalSample is the pair of values the estimate needs for one
// location.
type EnvironmentalSample struct {
	SunHoursPerDay float64    `json:"sunlight_hours"`
	PricePerKWh    float64    `json:"electricity_price"`
	SunHoursSource DataSource `json:"sunlight_hours_source"`
	PriceSource    DataSource `json:"electricity_price_source"`
}

// EnvironmentProvider supplies peak sun hours and residential electricity
// prices. Implementations never fail: a value is always returned.
type EnvironmentProvider interface {
	Name() string
	SunHours(ctx context.Context, at Coordinates) Reading
	Price(ctx context.Context, state string) Reading
}

// IrradianceSource looks up average daily peak sun hours at a point.
type IrradianceSource interface {
	SunHours(ctx context.Context, lat, lon float64) (float64, error)
}

// PriceSource looks up the residential electricity price in USD/kWh.
type PriceSource interface {
	ResidentialPrice(ctx context.Context, state string) (float64, error)
}

// LookupRecorder observes external lookups. *observability.Metrics
// implements it.
type LookupRecorder interface {
	RecordLookup(lookup, outcome string, elapsed time.Duration)
}

// staticPrices is the residential USD/kWh price per state.
var staticPrices = map[string]float64{
	"CA": 0.28, "NY": 0.22, "TX": 0.14, "FL": 0.13, "AZ": 0.12,
	"CO": 0.13, "NJ": 0.18, "MA": 0.25, "IL": 0.14, "NC": 0.12,
	"GA": 0.13, "VA": 0.13, "WA": 0.11, "OR": 0.11, "NV": 0.12,
	"PA": 0.15, "MD": 0.16, "MN": 0.14, "WI": 0.15, "OK": 0.12, "KS": 0.13,
}

// StaticSunHours buckets latitude into coarse bands. Band edges are
// exclusive: exactly 45.0 falls in the 40-45 band.
func StaticSunHours(lat float64) float64 {
	switch {
	case lat > 45:
		return 4.0
	case lat > 40:
		return 4.5
	case lat > 35:
		return 5.0
	case lat > 30:
		return 5.5
	default:
		return 6.0
	}
}

// StaticPrice returns the table price for a state or DefaultPricePerKWh.
func StaticPrice(state string) float64 {
	if p, ok := staticPrices[state]; ok {
		return p
	}
	return DefaultPricePerKWh
}

// StaticProvider answers from the static tables only.
type StaticProvider struct{}

func (StaticProvider) Name() string { return string(SourceStatic) }

func (StaticProvider) SunHours(_ context.Context, at Coordinates) Reading {
	return Reading{Value: StaticSunHours(at.Lat), Source: SourceStatic}
}

func (StaticProvider) Price(_ context.Context, state string) Reading {
	return Reading{Value: StaticPrice(state), Source: SourceStatic}
}

// LiveProvider queries external sources and degrades to the static tables
// on any transport error, decode error, or non-positive value. A nil source
// (no credential configured) always uses the static value.
type LiveProvider struct {
	irradiance IrradianceSource
	prices     PriceSource
	recorder   LookupRecorder
	logger     *slog.Logger
}

// NewLiveProvider creates a LiveProvider. recorder may be nil.
func NewLiveProvider(irradiance IrradianceSource, prices PriceSource, recorder LookupRecorder, logger *slog.Logger) *LiveProvider {
	return &LiveProvider{
		irradiance: irradiance,
		prices:     prices,
		recorder:   recorder,
		logger:     logger,
	}
}

func (p *LiveProvider) Name() string { return string(SourceLive) }

func (p *LiveProvider) SunHours(ctx context.Context, at Coordinates) Reading {
	if p.irradiance == nil {
		return Reading{Value: StaticSunHours(at.Lat), Source: SourceStatic}
	}

	start := time.Now()
	v, err := p.irradiance.SunHours(ctx, at.Lat, at.Lon)
	if outcome := p.check(LookupIrradiance, v, err, start); outcome != OutcomeSuccess {
		p.logger.Warn("irradiance lookup failed, using static estimate",
			"lat", at.Lat,
			"lon", at.Lon,
			"outcome", outcome,
			"value", v,
			"error", err,
		)
		return Reading{Value: StaticSunHours(at.Lat), Source: SourceFallback}
	}
	return Reading{Value: v, Source: SourceLive}
}

func (p *LiveProvider) Price(ctx context.Context, state string) Reading {
	if p.prices == nil {
		return Reading{Value: StaticPrice(state), Source: SourceStatic}
	}

	start := time.Now()
	v, err := p.prices.ResidentialPrice(ctx, state)
	if outcome := p.check(LookupPrice, v, err, start); outcome != OutcomeSuccess {
		p.logger.Warn("price lookup failed, using static estimate",
			"state", state,
			"outcome", outcome,
			"value", v,
			"error", err,
		)
		return Reading{Value: StaticPrice(state), Source: SourceFallback}
	}
	return Reading{Value: v, Source: SourceLive}
}

// check classifies a lookup result and records it.
func (p *LiveProvider) check(lookup string, v float64, err error, start time.Time) string {
	outcome := OutcomeSuccess
	switch {
	case err != nil:
		outcome = OutcomeError
	case !usable(v):
		outcome = OutcomeInvalid
	}
	if p.recorder != nil {
		p.recorder.RecordLookup(lookup, outcome, time.Since(start))
	}
	return outcome
}

func usable(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FetchSample runs the sun-hours and price lookups concurrently and joins
// both before returning.
func FetchSample(ctx context.Context, p EnvironmentProvider, at Coordinates, state string) EnvironmentalSample {
	var (
		wg    sync.WaitGroup
		sun   Reading
		price Reading
	)
	wg.Go(func() { sun = p.SunHours(ctx, at) })
	wg.Go(func() { price = p.Price(ctx, state) })
	wg.Wait()

	return EnvironmentalSample{
		SunHoursPerDay: sun.Value,
		PricePerKWh:    price.Value,
		SunHoursSource: sun.Source,
		PriceSource:    price.Source,
	}
}
