package domain

import (
	"time"

	"github.com/google/uuid"
)

// EstimateEvent is the anonymised record of a completed estimate published
// for installer-partner analytics. It carries no ZIP code or bill amount.
type EstimateEvent struct {
	ID                  string     `json:"id"`
	StateCode           string     `json:"state_code"`
	SystemSizeKW        float64    `json:"system_size_kw"`
	AnnualProductionKWh float64    `json:"annual_production_kwh"`
	AnnualSavingsUSD    float64    `json:"annual_savings_usd"`
	NetCostUSD          float64    `json:"net_cost_usd"`
	Payback             Payback    `json:"payback"`
	SunHoursSource      DataSource `json:"sunlight_hours_source"`
	PriceSource         DataSource `json:"electricity_price_source"`
	GeneratedAt         time.Time  `json:"generated_at"`
}

// NewEstimateEvent builds the event for a finished quote.
func NewEstimateEvent(id string, systemSizeKW float64, q Quote, at time.Time) EstimateEvent {
	return EstimateEvent{
		ID:                  id,
		StateCode:           q.StateCode,
		SystemSizeKW:        systemSizeKW,
		AnnualProductionKWh: q.Result.AnnualProductionKWh,
		AnnualSavingsUSD:    q.Result.AnnualSavingsUSD,
		NetCostUSD:          q.Result.NetCostUSD,
		Payback:             q.Result.Payback,
		SunHoursSource:      q.Environment.SunHoursSource,
		PriceSource:         q.Environment.PriceSource,
		GeneratedAt:         at,
	}
}

// NewEstimateID returns a random identifier for an estimate.
func NewEstimateID() string {
	return uuid.NewString()
}

// Now returns the current time from the package clock.
func Now() time.Time {
	return clock.Now().UTC()
}
