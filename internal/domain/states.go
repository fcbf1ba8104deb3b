package domain

import (
	"math"
	"sort"
	"strings"
)

// StateProfile is the per-state summary shown on state landing pages.
type StateProfile struct {
	Code               string  `json:"code"`
	Name               string  `json:"name"`
	Slug               string  `json:"slug"`
	AvgPricePerKWh     float64 `json:"avg_electricity_price"`
	SunHoursPerDay     float64 `json:"sunlight_hours"`
	FederalPercent     float64 `json:"incentive_federal"`
	StateRebatePercent float64 `json:"incentive_state"`
}

var stateProfiles = buildStateProfiles([]StateProfile{
	{Code: "CA", Name: "California", AvgPricePerKWh: 0.25, SunHoursPerDay: 5.5, StateRebatePercent: 0.10},
	{Code: "TX", Name: "Texas", AvgPricePerKWh: 0.14, SunHoursPerDay: 5.0, StateRebatePercent: 0.05},
	{Code: "NY", Name: "New York", AvgPricePerKWh: 0.22, SunHoursPerDay: 4.2, StateRebatePercent: 0.08},
	{Code: "FL", Name: "Florida", AvgPricePerKWh: 0.16, SunHoursPerDay: 5.2, StateRebatePercent: 0.04},
	{Code: "AZ", Name: "Arizona", AvgPricePerKWh: 0.13, SunHoursPerDay: 6.5, StateRebatePercent: 0.07},
	{Code: "WA", Name: "Washington", AvgPricePerKWh: 0.10, SunHoursPerDay: 3.8, StateRebatePercent: 0.00},
	{Code: "OR", Name: "Oregon", AvgPricePerKWh: 0.11, SunHoursPerDay: 4.0, StateRebatePercent: 0.03},
	{Code: "NV", Name: "Nevada", AvgPricePerKWh: 0.12, SunHoursPerDay: 6.2, StateRebatePercent: 0.06},
	{Code: "UT", Name: "Utah", AvgPricePerKWh: 0.11, SunHoursPerDay: 5.8, StateRebatePercent: 0.05},
	{Code: "CO", Name: "Colorado", AvgPricePerKWh: 0.13, SunHoursPerDay: 5.3, StateRebatePercent: 0.04},
	{Code: "NM", Name: "New Mexico", AvgPricePerKWh: 0.12, SunHoursPerDay: 6.0, StateRebatePercent: 0.05},
	{Code: "HI", Name: "Hawaii", AvgPricePerKWh: 0.32, SunHoursPerDay: 5.5, StateRebatePercent: 0.08},
	{Code: "GA", Name: "Georgia", AvgPricePerKWh: 0.12, SunHoursPerDay: 4.8, StateRebatePercent: 0.03},
	{Code: "NC", Name: "North Carolina", AvgPricePerKWh: 0.12, SunHoursPerDay: 4.6, StateRebatePercent: 0.04},
	{Code: "SC", Name: "South Carolina", AvgPricePerKWh: 0.13, SunHoursPerDay: 4.8, StateRebatePercent: 0.03},
})

func buildStateProfiles(in []StateProfile) []StateProfile {
	for i := range in {
		in[i].Slug = Slugify(in[i].Name)
		in[i].FederalPercent = FederalCreditPercent
	}
	sort.Slice(in, func(i, j int) bool { return in[i].Name < in[j].Name })
	return in
}

// Slugify lowercases a state name and joins its words with hyphens,
// e.g. "New York" -> "new-york".
func Slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// StateProfiles returns all profiles sorted by state name.
func StateProfiles() []StateProfile {
	out := make([]StateProfile, len(stateProfiles))
	copy(out, stateProfiles)
	return out
}

// StateBySlug finds a profile by its URL slug.
func StateBySlug(slug string) (StateProfile, bool) {
	for _, p := range stateProfiles {
		if p.Slug == slug {
			return p, true
		}
	}
	return StateProfile{}, false
}

// StateByCode finds a profile by state code, case-insensitively.
func StateByCode(code string) (StateProfile, bool) {
	for _, p := range stateProfiles {
		if strings.EqualFold(p.Code, code) {
			return p, true
		}
	}
	return StateProfile{}, false
}

// SimilarStates returns up to n other profiles ordered by how close their
// sun hours are to the given state's. Ties break on name.
func SimilarStates(code string, n int) []StateProfile {
	ref, ok := StateByCode(code)
	if !ok || n <= 0 {
		return nil
	}

	others := make([]StateProfile, 0, len(stateProfiles)-1)
	for _, p := range stateProfiles {
		if p.Code != ref.Code {
			others = append(others, p)
		}
	}
	sort.SliceStable(others, func(i, j int) bool {
		di := math.Abs(others[i].SunHoursPerDay - ref.SunHoursPerDay)
		dj := math.Abs(others[j].SunHoursPerDay - ref.SunHoursPerDay)
		return di < dj
	})
	if len(others) > n {
		others = others[:n]
	}
	return others
}

// StateName returns the full name for a state code, or the code itself when
// no name is known.
func StateName(code string) string {
	if info, ok := stateIncentives[code]; ok {
		return info.Name
	}
	if p, ok := StateByCode(code); ok {
		return p.Name
	}
	return code
}
