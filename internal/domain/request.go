package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrValidation is wrapped by every request validation failure.
var ErrValidation = errors.New("invalid estimate request")

// ValidationError describes a rejected request field in user-facing terms.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// Input ceilings. Anything larger is not a residential installation and lets
// the model overflow to infinity.
const (
	MaxSystemSizeKW   = 1000.0
	MaxMonthlyBillUSD = 100000.0
)

// EstimateRequest is the user-supplied input of an estimate.
type EstimateRequest struct {
	ZIP            string  `json:"zip"`
	MonthlyBillUSD float64 `json:"monthly_bill_usd"`
	SystemSizeKW   float64 `json:"system_size_kw"`
	UseLiveData    bool    `json:"use_live_data"`
}

// Validate checks the request before any lookup or computation runs.
func (r EstimateRequest) Validate() error {
	if strings.TrimSpace(r.ZIP) == "" {
		return invalid("zip", "Please enter a ZIP code")
	}
	if !finite(r.MonthlyBillUSD) || r.MonthlyBillUSD < 0 {
		return invalid("monthly_bill_usd", "Monthly bill must be a non-negative number")
	}
	if r.MonthlyBillUSD > MaxMonthlyBillUSD {
		return invalid("monthly_bill_usd", "Monthly bill must be at most $100,000")
	}
	if !finite(r.SystemSizeKW) || r.SystemSizeKW <= 0 {
		return invalid("system_size_kw", "System size must be a number greater than zero")
	}
	if r.SystemSizeKW > MaxSystemSizeKW {
		return invalid("system_size_kw", "System size must be at most 1000 kW")
	}
	return nil
}

// ParseEstimateRequest builds a validated request from raw form values.
func ParseEstimateRequest(zip, monthlyBill, systemSize string, useLiveData bool) (EstimateRequest, error) {
	if strings.TrimSpace(zip) == "" {
		return EstimateRequest{}, invalid("zip", "Please enter a ZIP code")
	}
	bill, err := strconv.ParseFloat(strings.TrimSpace(monthlyBill), 64)
	if err != nil {
		return EstimateRequest{}, invalid("monthly_bill_usd", fmt.Sprintf("Monthly bill %q is not a number", monthlyBill))
	}
	size, err := strconv.ParseFloat(strings.TrimSpace(systemSize), 64)
	if err != nil {
		return EstimateRequest{}, invalid("system_size_kw", fmt.Sprintf("System size %q is not a number", systemSize))
	}

	req := EstimateRequest{
		ZIP:            strings.TrimSpace(zip),
		MonthlyBillUSD: bill,
		SystemSizeKW:   size,
		UseLiveData:    useLiveData,
	}
	if err := req.Validate(); err != nil {
		return EstimateRequest{}, err
	}
	return req, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
