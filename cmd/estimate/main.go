// Command estimate prints a one-off solar ROI estimate for a ZIP code.
//
// Usage:
//
//	go run ./cmd/estimate -zip 90001 -bill 180 -size 6
//	go run ./cmd/estimate -zip 85004 -bill 140 -size 7 -live
//	go run ./cmd/estimate -zip 10001 -bill 150 -size 5 -json
//
// With -live, sun hours and prices come from NREL and EIA when NREL_API_KEY
// and EIA_API_KEY are set, and from the static tables otherwise.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/solar-roi-service/internal/config"
	"github.com/couchcryptid/solar-roi-service/internal/domain"
	"github.com/couchcryptid/solar-roi-service/internal/estimator"
	"github.com/couchcryptid/solar-roi-service/internal/observability"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func main() {
	zip := flag.String("zip", "", "five-digit ZIP code")
	bill := flag.String("bill", "0", "average monthly electricity bill in USD")
	size := flag.String("size", "6", "system size in kW")
	live := flag.Bool("live", false, "use live (or static) environmental data instead of the per-ZIP sample table")
	asJSON := flag.Bool("json", false, "print the report as JSON")
	flag.Parse()

	config.LoadDotEnv()
	os.Exit(run(os.Stdout, *zip, *bill, *size, *live, *asJSON))
}

func run(out io.Writer, zip, bill, size string, live, asJSON bool) int {
	req, err := domain.ParseEstimateRequest(zip, bill, size, live)
	if err != nil {
		fmt.Fprintf(os.Stderr, "estimate: %v\n", err)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "estimate: load config: %v\n", err)
		return 1
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	metrics := observability.NewUnregisteredMetrics()

	svc := estimator.New(estimator.NewProvider(cfg, logger, metrics), nil, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := svc.Estimate(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "estimate: %v\n", err)
		return 1
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fmt.Fprintf(os.Stderr, "estimate: %v\n", err)
			return 1
		}
		return 0
	}
	printReport(out, report)
	return 0
}

func printReport(out io.Writer, r estimator.Report) {
	p := message.NewPrinter(language.English)
	res := r.Result

	_, _ = p.Fprintf(out, "Solar estimate for %s (%s), %s data\n", r.StateName, r.StateCode, r.Mode)
	_, _ = p.Fprintf(out, "  Sun hours/day        %.1f (%s)\n", r.Environment.SunHoursPerDay, r.Environment.SunHoursSource)
	_, _ = p.Fprintf(out, "  Electricity price    $%.3f/kWh (%s)\n", r.Environment.PricePerKWh, r.Environment.PriceSource)
	_, _ = p.Fprintf(out, "  Annual bill          $%.2f\n", res.AnnualBillUSD)
	_, _ = p.Fprintf(out, "  Annual production    %.0f kWh\n", res.AnnualProductionKWh)
	_, _ = p.Fprintf(out, "  Annual savings       $%.0f\n", res.AnnualSavingsUSD)
	_, _ = p.Fprintf(out, "  System cost          $%.0f\n", res.SystemCostUSD)
	_, _ = p.Fprintf(out, "  Net cost             $%.0f (federal %.0f%%, state %.0f%%)\n",
		res.NetCostUSD, r.Incentives.FederalPercent*100, r.Incentives.StateRebatePercent*100)
	_, _ = p.Fprintf(out, "  Payback              %s years\n", res.Payback)
	_, _ = p.Fprintf(out, "  25-year savings      $%.0f (net $%.0f, %.0f%%)\n",
		res.TotalSavingsUSD, res.NetSavingsUSD, res.SavingsPercentage)
}
