// Package estimator runs solar ROI estimates end to end: request validation,
// location resolution, environmental lookups, the ROI model, and estimate
// event publication.
package estimator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/couchcryptid/solar-roi-service/internal/domain"
	"github.com/couchcryptid/solar-roi-service/internal/observability"
)

// ErrLookupAborted is returned when the caller's context ends before the
// environmental lookups complete.
var ErrLookupAborted = errors.New("environmental data lookup aborted")

// ErrNonFiniteResult is returned when the model overflows on the resolved
// inputs. The report is neither returned nor published.
var ErrNonFiniteResult = errors.New("estimate produced a non-finite result")

// Data modes recorded on each report.
const (
	ModeSample = "sample"
)

// EventSink accepts estimate events for asynchronous publication.
type EventSink interface {
	Enqueue(ev domain.EstimateEvent) bool
}

// Report is a completed estimate.
type Report struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Mode        string    `json:"mode"`
	domain.Quote
}

// SolarData is the resolved location and environmental values for a ZIP.
type SolarData struct {
	ZIP         string                     `json:"zip"`
	StateCode   string                     `json:"state_code"`
	StateName   string                     `json:"state"`
	Coordinates domain.Coordinates         `json:"coordinates"`
	Environment domain.EnvironmentalSample `json:"environment"`
}

// Service orchestrates estimates. It holds no per-request state and is safe
// for concurrent use.
type Service struct {
	provider domain.EnvironmentProvider
	events   EventSink
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a Service. provider answers live-mode requests; events may be
// nil to disable publication.
func New(provider domain.EnvironmentProvider, events EventSink, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		provider: provider,
		events:   events,
		logger:   logger,
		metrics:  metrics,
	}
}

// Estimate validates the request and computes a report. Requests without
// UseLiveData use the per-ZIP sample table and perform no lookups.
func (s *Service) Estimate(ctx context.Context, req domain.EstimateRequest) (Report, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		s.reject(req.ZIP, err)
		return Report{}, err
	}

	var (
		quote domain.Quote
		mode  = ModeSample
	)
	if req.UseLiveData {
		state := domain.ResolveState(req.ZIP)
		at := domain.CoordinatesForState(state)
		sample, err := s.fetch(ctx, at, state)
		if err != nil {
			return Report{}, err
		}
		quote = domain.EstimateFromEnvironment(sample, state, req.MonthlyBillUSD, req.SystemSizeKW)
		quote.Coordinates = &at
		mode = s.provider.Name()
	} else {
		quote = domain.EstimateFromSample(req.ZIP, req.MonthlyBillUSD, req.SystemSizeKW)
	}
	if !quote.Result.Finite() {
		s.logger.Error("estimate overflowed",
			"zip", req.ZIP,
			"system_size_kw", req.SystemSizeKW,
			"sun_hours", quote.Environment.SunHoursPerDay,
			"price_per_kwh", quote.Environment.PricePerKWh,
		)
		return Report{}, ErrNonFiniteResult
	}

	report := Report{
		ID:          domain.NewEstimateID(),
		GeneratedAt: domain.Now(),
		Mode:        mode,
		Quote:       quote,
	}

	s.metrics.Estimates.WithLabelValues(mode).Inc()
	s.metrics.EstimateDuration.Observe(time.Since(start).Seconds())
	s.logger.Debug("estimate complete",
		"id", report.ID,
		"state", quote.StateCode,
		"mode", mode,
		"payback", quote.Result.Payback.String(),
	)

	if s.events != nil {
		s.events.Enqueue(domain.NewEstimateEvent(report.ID, req.SystemSizeKW, quote, report.GeneratedAt))
	}
	return report, nil
}

// SolarData resolves a ZIP code and looks up its environmental values with
// the configured provider.
func (s *Service) SolarData(ctx context.Context, zip string) (SolarData, error) {
	zip = strings.TrimSpace(zip)
	if zip == "" {
		err := &domain.ValidationError{Field: "zip", Message: "ZIP code is required"}
		s.reject(zip, err)
		return SolarData{}, err
	}

	state := domain.ResolveState(zip)
	at := domain.CoordinatesForState(state)
	sample, err := s.fetch(ctx, at, state)
	if err != nil {
		return SolarData{}, err
	}
	return SolarData{
		ZIP:         zip,
		StateCode:   state,
		StateName:   domain.StateName(state),
		Coordinates: at,
		Environment: sample,
	}, nil
}

// LiveDataEnabled reports whether the configured provider queries external
// sources.
func (s *Service) LiveDataEnabled() bool {
	return s.provider.Name() == string(domain.SourceLive)
}

// CheckReadiness implements the readiness probe. The service is ready once
// constructed; event publishing health is reported when events are enabled.
func (s *Service) CheckReadiness(ctx context.Context) error {
	if checker, ok := s.events.(interface {
		CheckReadiness(context.Context) error
	}); ok {
		return checker.CheckReadiness(ctx)
	}
	return nil
}

func (s *Service) fetch(ctx context.Context, at domain.Coordinates, state string) (domain.EnvironmentalSample, error) {
	sample := domain.FetchSample(ctx, s.provider, at, state)
	if err := ctx.Err(); err != nil {
		s.logger.Info("environmental lookup aborted", "state", state, "error", err)
		return domain.EnvironmentalSample{}, fmt.Errorf("%w: %w", ErrLookupAborted, err)
	}
	return sample, nil
}

func (s *Service) reject(zip string, err error) {
	field := "unknown"
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		field = verr.Field
	}
	s.metrics.ValidationRejections.WithLabelValues(field).Inc()
	s.logger.Info("estimate request rejected", "field", field, "zip_present", zip != "", "error", err)
}
