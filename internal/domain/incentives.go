package domain

// FederalCreditPercent is the federal Investment Tax Credit share of system
// cost. It is the same for every state.
const FederalCreditPercent = 0.30

// MaxStateRebatePercent bounds every entry of the state rebate table.
const MaxStateRebatePercent = 0.15

// IncentiveRates are the fractions of system cost offset by incentives.
type IncentiveRates struct {
	FederalPercent     float64 `json:"federal_percent"`
	StateRebatePercent float64 `json:"state_rebate_percent"`
}

// IncentiveInfo is the display form of a state's incentive program.
type IncentiveInfo struct {
	Name          string  `json:"name"`
	RebatePercent float64 `json:"rebate_percent"`
	Description   string  `json:"description"`
}

var federalCredit = IncentiveInfo{
	Name:          "Federal Investment Tax Credit (ITC)",
	RebatePercent: FederalCreditPercent,
	Description:   "The federal ITC allows homeowners to deduct 30% of the cost of a solar system from federal taxes. Valid through 2032.",
}

var otherStates = IncentiveInfo{
	Name:        "Other States",
	Description: "Check with local utilities for available incentives.",
}

// stateIncentives is keyed by state code. UT, NM, HI and SC come from the
// state profile table; every other entry is the program table proper.
var stateIncentives = map[string]IncentiveInfo{
	"CA": {Name: "California", RebatePercent: 0.10, Description: "Additional state rebate and utility-based incentives."},
	"NY": {Name: "New York", RebatePercent: 0.08, Description: "State tax credit plus local rebates."},
	"TX": {Name: "Texas", RebatePercent: 0.05, Description: "Property tax exemption plus some local rebates."},
	"FL": {Name: "Florida", RebatePercent: 0.04, Description: "Sales and property tax exemptions for solar installations."},
	"AZ": {Name: "Arizona", RebatePercent: 0.07, Description: "State tax credit up to a capped amount plus net metering benefits."},
	"CO": {Name: "Colorado", RebatePercent: 0.06, Description: "State tax credit and local utility rebates."},
	"NJ": {Name: "New Jersey", RebatePercent: 0.09, Description: "SREC program and state rebates."},
	"MA": {Name: "Massachusetts", RebatePercent: 0.08, Description: "Mass Solar Loan program and SMART incentives."},
	"IL": {Name: "Illinois", RebatePercent: 0.05, Description: "Illinois Shines program and net metering."},
	"NC": {Name: "North Carolina", RebatePercent: 0.04, Description: "State tax credit and utility rebates."},
	"GA": {Name: "Georgia", RebatePercent: 0.03, Description: "Property tax exemption for solar installations."},
	"VA": {Name: "Virginia", RebatePercent: 0.04, Description: "Property tax exemption and net metering."},
	"WA": {Name: "Washington", RebatePercent: 0.05, Description: "State sales tax exemption and local rebates."},
	"OR": {Name: "Oregon", RebatePercent: 0.06, Description: "Energy Trust of Oregon rebates and tax credits."},
	"NV": {Name: "Nevada", RebatePercent: 0.05, Description: "Property tax exemption and net metering."},
	"UT": {Name: "Utah", RebatePercent: 0.05, Description: "State renewable energy tax credit and net metering."},
	"NM": {Name: "New Mexico", RebatePercent: 0.05, Description: "New solar market development tax credit."},
	"HI": {Name: "Hawaii", RebatePercent: 0.08, Description: "State renewable energy technologies income tax credit."},
	"SC": {Name: "South Carolina", RebatePercent: 0.03, Description: "State solar tax credit and utility rebates."},
}

// IncentivesFor returns the incentive rates used in the estimate for a
// state. Unlisted states get the federal credit only.
func IncentivesFor(code string) IncentiveRates {
	return IncentiveRates{
		FederalPercent:     FederalCreditPercent,
		StateRebatePercent: stateIncentives[code].RebatePercent,
	}
}

// IncentiveDescriptionFor returns display text for a state's incentives,
// falling back to a generic "Other States" entry.
func IncentiveDescriptionFor(code string) IncentiveInfo {
	if info, ok := stateIncentives[code]; ok {
		return info
	}
	return otherStates
}

// FederalCredit describes the federal tax credit.
func FederalCredit() IncentiveInfo {
	return federalCredit
}

// IncentiveStates returns the codes that carry a state rebate entry.
func IncentiveStates() []string {
	codes := make([]string, 0, len(stateIncentives))
	for code := range stateIncentives {
		codes = append(codes, code)
	}
	return codes
}
