package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateRequest_Validate(t *testing.T) {
	tests := []struct {
		name  string
		req   EstimateRequest
		field string
	}{
		{"valid", EstimateRequest{ZIP: "90001", MonthlyBillUSD: 150, SystemSizeKW: 6}, ""},
		{"zero bill allowed", EstimateRequest{ZIP: "90001", SystemSizeKW: 6}, ""},
		{"empty zip", EstimateRequest{MonthlyBillUSD: 150, SystemSizeKW: 6}, "zip"},
		{"blank zip", EstimateRequest{ZIP: "   ", MonthlyBillUSD: 150, SystemSizeKW: 6}, "zip"},
		{"negative bill", EstimateRequest{ZIP: "90001", MonthlyBillUSD: -1, SystemSizeKW: 6}, "monthly_bill_usd"},
		{"NaN bill", EstimateRequest{ZIP: "90001", MonthlyBillUSD: math.NaN(), SystemSizeKW: 6}, "monthly_bill_usd"},
		{"zero size", EstimateRequest{ZIP: "90001", MonthlyBillUSD: 150}, "system_size_kw"},
		{"negative size", EstimateRequest{ZIP: "90001", MonthlyBillUSD: 150, SystemSizeKW: -2}, "system_size_kw"},
		{"infinite size", EstimateRequest{ZIP: "90001", MonthlyBillUSD: 150, SystemSizeKW: math.Inf(1)}, "system_size_kw"},
		{"size at ceiling", EstimateRequest{ZIP: "90001", MonthlyBillUSD: 150, SystemSizeKW: MaxSystemSizeKW}, ""},
		{"size above ceiling", EstimateRequest{ZIP: "90001", MonthlyBillUSD: 150, SystemSizeKW: 1e307}, "system_size_kw"},
		{"bill at ceiling", EstimateRequest{ZIP: "90001", MonthlyBillUSD: MaxMonthlyBillUSD, SystemSizeKW: 6}, ""},
		{"bill above ceiling", EstimateRequest{ZIP: "90001", MonthlyBillUSD: 1e300, SystemSizeKW: 6}, "monthly_bill_usd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestParseEstimateRequest(t *testing.T) {
	req, err := ParseEstimateRequest(" 10001 ", "220.50", "7.5", true)
	require.NoError(t, err)
	assert.Equal(t, EstimateRequest{ZIP: "10001", MonthlyBillUSD: 220.5, SystemSizeKW: 7.5, UseLiveData: true}, req)
}

func TestParseEstimateRequest_NonNumeric(t *testing.T) {
	_, err := ParseEstimateRequest("10001", "lots", "7.5", false)
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "lots")

	_, err = ParseEstimateRequest("10001", "120", "big", false)
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "System size")
}

func TestParseEstimateRequest_EmptyZIPReportedFirst(t *testing.T) {
	_, err := ParseEstimateRequest("", "lots", "big", false)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Please enter a ZIP code", err.Error())
}
