package domain

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
)

// Estimate model constants.
const (
	DerateFactor     = 0.85   // fixed system efficiency loss
	CostPerKW        = 3000.0 // installed USD per kW
	DaysPerYear      = 365
	SavingsHorizonYr = 25
)

// EstimateInputs are the numeric inputs of the ROI model.
type EstimateInputs struct {
	SunHoursPerDay     float64
	PricePerKWh        float64
	SystemSizeKW       float64
	FederalPercent     float64
	StateRebatePercent float64
	MonthlyBillUSD     float64
}

// Payback is the simple payback period. The zero value is NoPayback.
type Payback struct {
	Years      float64 // rounded to one decimal
	WholeYears int     // raw years rounded up
	Achievable bool
}

// NoPayback marks an estimate whose annual savings are zero, so the system
// never pays for itself.
var NoPayback = Payback{}

func newPayback(netCost, annualSavings float64) Payback {
	if annualSavings <= 0 {
		return NoPayback
	}
	raw := netCost / annualSavings
	return Payback{
		Years:      math.Round(raw*10) / 10,
		WholeYears: int(math.Ceil(raw)),
		Achievable: true,
	}
}

// String renders the payback to one decimal, or "not achievable".
func (p Payback) String() string {
	if !p.Achievable {
		return "not achievable"
	}
	return strconv.FormatFloat(p.Years, 'f', 1, 64)
}

// MarshalJSON encodes NoPayback with null years so clients never see a
// numeric value for an unreachable payback.
func (p Payback) MarshalJSON() ([]byte, error) {
	type wire struct {
		Years      *float64 `json:"years"`
		WholeYears *int     `json:"whole_years"`
		Achievable bool     `json:"achievable"`
	}
	w := wire{Achievable: p.Achievable}
	if p.Achievable {
		w.Years = &p.Years
		w.WholeYears = &p.WholeYears
	}
	return json.Marshal(w)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (p *Payback) UnmarshalJSON(data []byte) error {
	var w struct {
		Years      *float64 `json:"years"`
		WholeYears *int     `json:"whole_years"`
		Achievable bool     `json:"achievable"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*p = NoPayback
	if w.Achievable && w.Years != nil && w.WholeYears != nil {
		*p = Payback{Years: *w.Years, WholeYears: *w.WholeYears, Achievable: true}
	}
	return nil
}

// EstimateResult is the output of the ROI model.
type EstimateResult struct {
	AnnualBillUSD       float64 `json:"annual_bill_usd"`
	AnnualProductionKWh float64 `json:"annual_production_kwh"`
	AnnualSavingsUSD    float64 `json:"annual_savings_usd"`
	SystemCostUSD       float64 `json:"system_cost_usd"`
	NetCostUSD          float64 `json:"net_cost_usd"`
	Payback             Payback `json:"payback"`
	TotalSavingsUSD     float64 `json:"total_savings_25yr_usd"`
	NetSavingsUSD       float64 `json:"net_savings_25yr_usd"`
	SavingsPercentage   float64 `json:"savings_percentage"`
}

// Estimate computes production, savings, cost and payback. It is a pure
// function of its inputs.
func Estimate(in EstimateInputs) EstimateResult {
	production := in.SystemSizeKW * in.SunHoursPerDay * DaysPerYear * DerateFactor
	savings := math.Round(production * in.PricePerKWh)
	systemCost := in.SystemSizeKW * CostPerKW
	netCost := systemCost * (1 - in.FederalPercent - in.StateRebatePercent)
	totalSavings := savings * SavingsHorizonYr
	netSavings := totalSavings - netCost

	var pct float64
	if systemCost > 0 {
		pct = math.Round(netSavings / systemCost * 100)
	}

	return EstimateResult{
		AnnualBillUSD:       in.MonthlyBillUSD * 12,
		AnnualProductionKWh: production,
		AnnualSavingsUSD:    savings,
		SystemCostUSD:       systemCost,
		NetCostUSD:          netCost,
		Payback:             newPayback(netCost, savings),
		TotalSavingsUSD:     totalSavings,
		NetSavingsUSD:       netSavings,
		SavingsPercentage:   pct,
	}
}

// Finite reports whether every figure of the result is a finite number.
func (r EstimateResult) Finite() bool {
	for _, v := range []float64{
		r.AnnualBillUSD,
		r.AnnualProductionKWh,
		r.AnnualSavingsUSD,
		r.SystemCostUSD,
		r.NetCostUSD,
		r.Payback.Years,
		r.TotalSavingsUSD,
		r.NetSavingsUSD,
		r.SavingsPercentage,
	} {
		if !finite(v) {
			return false
		}
	}
	return true
}

// Quote is an estimate together with the location and environmental values
// it was computed from.
type Quote struct {
	StateCode   string              `json:"state_code"`
	StateName   string              `json:"state"`
	Coordinates *Coordinates        `json:"coordinates,omitempty"`
	Environment EnvironmentalSample `json:"environment"`
	Incentives  IncentiveRates      `json:"incentives"`
	Result      EstimateResult      `json:"result"`
}

// EstimateFromEnvironment estimates with pre-resolved environmental values,
// taking incentives from the incentive table.
func EstimateFromEnvironment(sample EnvironmentalSample, stateCode string, monthlyBill, systemSizeKW float64) Quote {
	rates := IncentivesFor(stateCode)
	return Quote{
		StateCode:   stateCode,
		StateName:   StateName(stateCode),
		Environment: sample,
		Incentives:  rates,
		Result: Estimate(EstimateInputs{
			SunHoursPerDay:     sample.SunHoursPerDay,
			PricePerKWh:        sample.PricePerKWh,
			SystemSizeKW:       systemSizeKW,
			FederalPercent:     rates.FederalPercent,
			StateRebatePercent: rates.StateRebatePercent,
			MonthlyBillUSD:     monthlyBill,
		}),
	}
}

// ZIPSample is one row of the per-ZIP sample table.
type ZIPSample struct {
	State              string
	PricePerKWh        float64
	SunHoursPerDay     float64
	FederalPercent     float64
	StateRebatePercent float64
}

var zipSamples = map[string]ZIPSample{
	"90001": {State: "CA", PricePerKWh: 0.25, SunHoursPerDay: 5.5, FederalPercent: FederalCreditPercent, StateRebatePercent: 0.10}, // Los Angeles
	"73301": {State: "TX", PricePerKWh: 0.14, SunHoursPerDay: 5.0, FederalPercent: FederalCreditPercent, StateRebatePercent: 0.05}, // Austin
	"10001": {State: "NY", PricePerKWh: 0.22, SunHoursPerDay: 4.2, FederalPercent: FederalCreditPercent, StateRebatePercent: 0.08}, // New York
	"33101": {State: "FL", PricePerKWh: 0.16, SunHoursPerDay: 5.2, FederalPercent: FederalCreditPercent, StateRebatePercent: 0.04}, // Miami
	"85001": {State: "AZ", PricePerKWh: 0.13, SunHoursPerDay: 6.5, FederalPercent: FederalCreditPercent, StateRebatePercent: 0.07}, // Phoenix
}

// defaultZIPSample is a national average used for any ZIP not in the
// sample table.
var defaultZIPSample = ZIPSample{
	State:          "US",
	PricePerKWh:    0.18,
	SunHoursPerDay: 4.8,
	FederalPercent: FederalCreditPercent,
}

// SampleForZIP returns the sample row for an exact ZIP match or the
// national default.
func SampleForZIP(zip string) ZIPSample {
	if s, ok := zipSamples[zip]; ok {
		return s
	}
	return defaultZIPSample
}

// SampleZIPs returns the ZIP codes present in the sample table, sorted.
func SampleZIPs() []string {
	zips := make([]string, 0, len(zipSamples))
	for zip := range zipSamples {
		zips = append(zips, zip)
	}
	sort.Strings(zips)
	return zips
}

// EstimateFromSample estimates from the per-ZIP sample table. Only exact
// five-digit matches are found; everything else uses the national default.
func EstimateFromSample(zip string, monthlyBill, systemSizeKW float64) Quote {
	s := SampleForZIP(zip)
	return Quote{
		StateCode: s.State,
		StateName: StateName(s.State),
		Environment: EnvironmentalSample{
			SunHoursPerDay: s.SunHoursPerDay,
			PricePerKWh:    s.PricePerKWh,
			SunHoursSource: SourceSample,
			PriceSource:    SourceSample,
		},
		Incentives: IncentiveRates{
			FederalPercent:     s.FederalPercent,
			StateRebatePercent: s.StateRebatePercent,
		},
		Result: Estimate(EstimateInputs{
			SunHoursPerDay:     s.SunHoursPerDay,
			PricePerKWh:        s.PricePerKWh,
			SystemSizeKW:       systemSizeKW,
			FederalPercent:     s.FederalPercent,
			StateRebatePercent: s.StateRebatePercent,
			MonthlyBillUSD:     monthlyBill,
		}),
	}
}
