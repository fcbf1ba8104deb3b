package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/couchcryptid/solar-roi-service/internal/domain"
	"github.com/couchcryptid/solar-roi-service/internal/estimator"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
)

const (
	maxBodyBytes = 1 << 16

	msgLookupFailed = "Failed to fetch live data. Please try again or use mock data mode."
	msgStateMissing = "State not found."
	msgInternal     = "Failed to calculate estimate."
)

// estimateBody accepts the numeric fields as JSON numbers or as the raw
// strings a form would submit.
type estimateBody struct {
	ZIP            string          `json:"zip"`
	MonthlyBillUSD json.RawMessage `json:"monthly_bill_usd"`
	SystemSizeKW   json.RawMessage `json:"system_size_kw"`
	UseLiveData    bool            `json:"use_live_data"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type stateResponse struct {
	State     domain.StateProfile   `json:"state"`
	Incentive domain.IncentiveInfo  `json:"incentive"`
	Federal   domain.IncentiveInfo  `json:"federal"`
	Similar   []domain.StateProfile `json:"similar_states"`
}

type incentivesResponse struct {
	StateCode string                `json:"state_code"`
	Rates     domain.IncentiveRates `json:"rates"`
	Program   domain.IncentiveInfo  `json:"program"`
	Federal   domain.IncentiveInfo  `json:"federal"`
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var body estimateBody
	if !decodeBody(w, r, &body) {
		return
	}

	req, err := domain.ParseEstimateRequest(body.ZIP, rawNumber(body.MonthlyBillUSD), rawNumber(body.SystemSizeKW), body.UseLiveData)
	if err != nil {
		s.writeError(w, err)
		return
	}

	report, err := s.svc.Estimate(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, report)
}

func (s *Server) handleSolarData(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ZIP string `json:"zip"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	data, err := s.svc.SolarData(r.Context(), body.ZIP)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, data)
}

func (s *Server) handleListStates(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{"states": domain.StateProfiles()})
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	profile, ok := domain.StateBySlug(chi.URLParam(r, "slug"))
	if !ok {
		sharedobs.WriteJSON(w, http.StatusNotFound, errorResponse{Error: msgStateMissing})
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, stateResponse{
		State:     profile,
		Incentive: domain.IncentiveDescriptionFor(profile.Code),
		Federal:   domain.FederalCredit(),
		Similar:   domain.SimilarStates(profile.Code, 3),
	})
}

func (s *Server) handleGetIncentives(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(chi.URLParam(r, "state"))
	sharedobs.WriteJSON(w, http.StatusOK, incentivesResponse{
		StateCode: code,
		Rates:     domain.IncentivesFor(code),
		Program:   domain.IncentiveDescriptionFor(code),
		Federal:   domain.FederalCredit(),
	})
}

// writeError maps service errors to HTTP responses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		sharedobs.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Message, Field: verr.Field})
	case errors.Is(err, estimator.ErrLookupAborted):
		sharedobs.WriteJSON(w, http.StatusServiceUnavailable, errorResponse{Error: msgLookupFailed})
	default:
		s.logger.Error("estimate failed", "error", err)
		sharedobs.WriteJSON(w, http.StatusInternalServerError, errorResponse{Error: msgInternal})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

// rawNumber returns the text of a JSON number or string, without quotes.
func rawNumber(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "null" {
		return ""
	}
	return strings.Trim(s, `"`)
}
