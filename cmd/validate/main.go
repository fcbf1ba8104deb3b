// Command validate checks the static reference tables the estimator relies
// on: ZIP prefix mappings, state coordinates, incentive rates, static sun
// hours and prices, state profiles, and the per-ZIP sample table.
//
// Usage:
//
//	go run ./cmd/validate
package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/couchcryptid/solar-roi-service/internal/domain"
)

// Static sun hours must stay inside the latitude band range.
const (
	minSunHours = 4.0
	maxSunHours = 6.0
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	os.Exit(run(os.Stdout))
}

func run(out io.Writer) int {
	fmt.Fprintln(out, "=== Solar Reference Table Validation ===")
	fmt.Fprintln(out)

	phases := []*phase{
		validateLocations(domain.LocationRecords()),
		validateIncentives(domain.IncentiveStates()),
		validateStaticEnvironment(mappedStates(domain.LocationRecords())),
		validateStateProfiles(domain.StateProfiles()),
		validateZIPSamples(domain.SampleZIPs()),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// mappedStates returns the distinct state codes reachable from a ZIP prefix,
// plus the default state.
func mappedStates(records []domain.LocationRecord) []string {
	seen := map[string]bool{domain.DefaultState: true}
	for _, r := range records {
		seen[r.StateCode] = true
	}
	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ── Phases ──

func validateLocations(records []domain.LocationRecord) *phase {
	p := &phase{name: "ZIP prefixes map to located states"}
	if !domain.HasCoordinates(domain.DefaultState) {
		p.errorf("default state %s has no coordinates", domain.DefaultState)
	}
	for _, r := range records {
		if n := len(r.ZIPPrefix); n < 1 || n > 2 {
			p.errorf("prefix %q: length %d, want 1 or 2", r.ZIPPrefix, n)
		}
		if !domain.HasCoordinates(r.StateCode) {
			p.errorf("prefix %q: state %s has no coordinates", r.ZIPPrefix, r.StateCode)
		}
		if got := domain.ResolveState(r.ZIPPrefix); got != r.StateCode {
			p.errorf("prefix %q resolves to %s, want %s", r.ZIPPrefix, got, r.StateCode)
		}
	}
	return p
}

func validateIncentives(codes []string) *phase {
	p := &phase{name: "Incentive rates within bounds"}
	if domain.FederalCreditPercent != 0.30 {
		p.errorf("federal credit = %.2f, want 0.30", domain.FederalCreditPercent)
	}
	if fed := domain.FederalCredit(); fed.RebatePercent != domain.FederalCreditPercent {
		p.errorf("federal credit display rate %.2f != %.2f", fed.RebatePercent, domain.FederalCreditPercent)
	}
	for _, code := range codes {
		rates := domain.IncentivesFor(code)
		if rates.FederalPercent != domain.FederalCreditPercent {
			p.errorf("%s: federal %.2f, want %.2f", code, rates.FederalPercent, domain.FederalCreditPercent)
		}
		if r := rates.StateRebatePercent; r < 0 || r > domain.MaxStateRebatePercent {
			p.errorf("%s: state rebate %.2f outside [0, %.2f]", code, r, domain.MaxStateRebatePercent)
		}
		if domain.IncentiveDescriptionFor(code).Name == "" {
			p.errorf("%s: incentive entry has no name", code)
		}
	}
	return p
}

func validateStaticEnvironment(codes []string) *phase {
	p := &phase{name: "Static sun hours and prices in range"}
	for _, code := range codes {
		at := domain.CoordinatesForState(code)
		if h := domain.StaticSunHours(at.Lat); h < minSunHours || h > maxSunHours {
			p.errorf("%s: static sun hours %.1f outside [%.1f, %.1f]", code, h, minSunHours, maxSunHours)
		}
		if price := domain.StaticPrice(code); price <= 0 || math.IsNaN(price) {
			p.errorf("%s: static price %.3f not positive", code, price)
		}
	}
	return p
}

func validateStateProfiles(profiles []domain.StateProfile) *phase {
	p := &phase{name: "State profiles consistent"}
	slugs := make(map[string]bool, len(profiles))
	for i, sp := range profiles {
		if slugs[sp.Slug] {
			p.errorf("%s: duplicate slug %q", sp.Code, sp.Slug)
		}
		slugs[sp.Slug] = true

		if got, ok := domain.StateBySlug(sp.Slug); !ok || got.Code != sp.Code {
			p.errorf("%s: slug %q does not resolve back", sp.Code, sp.Slug)
		}
		if i > 0 && profiles[i-1].Name > sp.Name {
			p.errorf("%s: profiles not sorted by name", sp.Code)
		}
		if sp.StateRebatePercent < 0 || sp.StateRebatePercent > domain.MaxStateRebatePercent {
			p.errorf("%s: profile rebate %.2f out of range", sp.Code, sp.StateRebatePercent)
		}
		if sp.AvgPricePerKWh <= 0 || sp.SunHoursPerDay <= 0 {
			p.errorf("%s: profile price and sun hours must be positive", sp.Code)
		}
	}
	return p
}

func validateZIPSamples(zips []string) *phase {
	p := &phase{name: "ZIP sample table within bounds"}
	if len(zips) == 0 {
		p.errorf("sample table is empty")
	}
	for _, zip := range zips {
		s := domain.SampleForZIP(zip)
		if len(zip) != 5 {
			p.errorf("%s: sample ZIP must have five digits", zip)
		}
		if s.FederalPercent != domain.FederalCreditPercent {
			p.errorf("%s: federal %.2f, want %.2f", zip, s.FederalPercent, domain.FederalCreditPercent)
		}
		if s.StateRebatePercent < 0 || s.StateRebatePercent > domain.MaxStateRebatePercent {
			p.errorf("%s: state rebate %.2f out of range", zip, s.StateRebatePercent)
		}
		if s.PricePerKWh <= 0 || s.SunHoursPerDay <= 0 {
			p.errorf("%s: price and sun hours must be positive", zip)
		}
	}
	return p
}
