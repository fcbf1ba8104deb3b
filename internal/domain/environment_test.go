package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// --- mock sources ---

type mockIrradiance struct {
	value float64
	err   error
	calls int
}

func (m *mockIrradiance) SunHours(_ context.Context, _, _ float64) (float64, error) {
	m.calls++
	return m.value, m.err
}

type mockPrices struct {
	value float64
	err   error
	calls int
}

func (m *mockPrices) ResidentialPrice(_ context.Context, _ string) (float64, error) {
	m.calls++
	return m.value, m.err
}

type lookupRecord struct {
	lookup  string
	outcome string
}

type mockRecorder struct {
	mu      sync.Mutex
	records []lookupRecord
}

func (m *mockRecorder) RecordLookup(lookup, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, lookupRecord{lookup, outcome})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- static strategy ---

func TestStaticSunHours_Bands(t *testing.T) {
	tests := []struct {
		lat  float64
		want float64
	}{
		{46, 4.0},
		{45.01, 4.0},
		{45.0, 4.5},
		{41, 4.5},
		{40.0, 5.0},
		{36, 5.0},
		{35.0, 5.5},
		{31, 5.5},
		{30.0, 6.0},
		{10, 6.0},
		{-33.9, 6.0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StaticSunHours(tt.lat), "lat %v", tt.lat)
	}
}

func TestStaticPrice(t *testing.T) {
	assert.Equal(t, 0.28, StaticPrice("CA"))
	assert.Equal(t, 0.11, StaticPrice("WA"))
	assert.Equal(t, 0.16, StaticPrice("MD"))
	assert.Equal(t, DefaultPricePerKWh, StaticPrice("HI"))
	assert.Equal(t, DefaultPricePerKWh, StaticPrice(""))
}

func TestStaticProvider(t *testing.T) {
	p := StaticProvider{}
	ctx := context.Background()

	assert.Equal(t, Reading{Value: 4.0, Source: SourceStatic}, p.SunHours(ctx, CoordinatesForState("WA")))
	assert.Equal(t, Reading{Value: 0.14, Source: SourceStatic}, p.Price(ctx, "TX"))
	assert.Equal(t, "static", p.Name())
}

// --- live strategy ---

func TestLiveProvider_UsesLiveValues(t *testing.T) {
	irr := &mockIrradiance{value: 5.74}
	prices := &mockPrices{value: 0.3012}
	rec := &mockRecorder{}
	p := NewLiveProvider(irr, prices, rec, discardLogger())

	sample := FetchSample(context.Background(), p, CoordinatesForState("CA"), "CA")

	assert.Equal(t, EnvironmentalSample{
		SunHoursPerDay: 5.74,
		PricePerKWh:    0.3012,
		SunHoursSource: SourceLive,
		PriceSource:    SourceLive,
	}, sample)
	assert.Equal(t, 1, irr.calls)
	assert.Equal(t, 1, prices.calls)
	assert.ElementsMatch(t, []lookupRecord{
		{LookupIrradiance, OutcomeSuccess},
		{LookupPrice, OutcomeSuccess},
	}, rec.records)
}

func TestLiveProvider_TransportFailureMatchesStatic(t *testing.T) {
	irr := &mockIrradiance{err: errors.New("dial tcp: connection refused")}
	prices := &mockPrices{err: errors.New("dial tcp: connection refused")}
	live := NewLiveProvider(irr, prices, nil, discardLogger())

	for _, code := range []string{"CA", "WA", "NY", "FL", "HI", "ZZ"} {
		at := CoordinatesForState(code)
		got := FetchSample(context.Background(), live, at, code)
		want := FetchSample(context.Background(), StaticProvider{}, at, code)

		assert.Equal(t, want.SunHoursPerDay, got.SunHoursPerDay, code)
		assert.Equal(t, want.PricePerKWh, got.PricePerKWh, code)
		assert.Equal(t, SourceFallback, got.SunHoursSource, code)
		assert.Equal(t, SourceFallback, got.PriceSource, code)

		assert.Equal(t,
			EstimateFromEnvironment(want, code, 150, 6).Result,
			EstimateFromEnvironment(got, code, 150, 6).Result,
			code)
	}
}

func TestLiveProvider_InvalidValuesFallBack(t *testing.T) {
	for _, v := range []float64{0, -3.2, math.NaN(), math.Inf(1)} {
		rec := &mockRecorder{}
		p := NewLiveProvider(&mockIrradiance{value: v}, &mockPrices{value: v}, rec, discardLogger())

		at := Coordinates{Lat: 41.88, Lon: -87.63}
		sun := p.SunHours(context.Background(), at)
		price := p.Price(context.Background(), "IL")

		assert.Equal(t, Reading{Value: 4.5, Source: SourceFallback}, sun, "value %v", v)
		assert.Equal(t, Reading{Value: 0.14, Source: SourceFallback}, price, "value %v", v)
		assert.ElementsMatch(t, []lookupRecord{
			{LookupIrradiance, OutcomeInvalid},
			{LookupPrice, OutcomeInvalid},
		}, rec.records)
	}
}

func TestLiveProvider_MixedOutcome(t *testing.T) {
	p := NewLiveProvider(
		&mockIrradiance{value: 6.1},
		&mockPrices{err: errors.New("decode response: unexpected EOF")},
		nil,
		discardLogger(),
	)

	sample := FetchSample(context.Background(), p, CoordinatesForState("AZ"), "AZ")

	assert.Equal(t, 6.1, sample.SunHoursPerDay)
	assert.Equal(t, SourceLive, sample.SunHoursSource)
	assert.Equal(t, 0.12, sample.PricePerKWh)
	assert.Equal(t, SourceFallback, sample.PriceSource)
}

func TestLiveProvider_MissingSourcesUseStatic(t *testing.T) {
	p := NewLiveProvider(nil, nil, nil, discardLogger())

	sample := FetchSample(context.Background(), p, CoordinatesForState("OR"), "OR")

	assert.Equal(t, EnvironmentalSample{
		SunHoursPerDay: 4.0,
		PricePerKWh:    0.11,
		SunHoursSource: SourceStatic,
		PriceSource:    SourceStatic,
	}, sample)
}

// blockingSource waits for cancellation, as a hung external API would.
type blockingSource struct{}

func (blockingSource) SunHours(ctx context.Context, _, _ float64) (float64, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}

func (blockingSource) ResidentialPrice(ctx context.Context, _ string) (float64, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}

func TestFetchSample_CancelledContextFallsBack(t *testing.T) {
	p := NewLiveProvider(blockingSource{}, blockingSource{}, nil, discardLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	sample := FetchSample(ctx, p, CoordinatesForState("NJ"), "NJ")

	assert.Equal(t, 4.5, sample.SunHoursPerDay)
	assert.Equal(t, 0.18, sample.PricePerKWh)
	assert.Equal(t, SourceFallback, sample.SunHoursSource)
	assert.Equal(t, SourceFallback, sample.PriceSource)
}
