package eia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the EIA v2 retail electricity sales endpoint.
const DefaultBaseURL = "https://api.eia.gov/v2/electricity/retail-sales/data/"

// residentialSector is the EIA sector id for residential customers.
const residentialSector = "RES"

// Client implements domain.PriceSource using the EIA Open Data API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an EIA client.
func NewClient(apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: DefaultBaseURL,
		logger:  logger,
	}
}

// ResidentialPrice returns the most recent monthly residential retail price
// for a state, converted from cents/kWh to USD/kWh.
func (c *Client) ResidentialPrice(ctx context.Context, state string) (float64, error) {
	params := url.Values{
		"api_key":            {c.apiKey},
		"frequency":          {"monthly"},
		"data[0]":            {"price"},
		"facets[stateid][]":  {strings.ToUpper(state)},
		"facets[sectorid][]": {residentialSector},
		"sort[0][column]":    {"period"},
		"sort[0][direction]": {"desc"},
		"offset":             {"0"},
		"length":             {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("retail sales request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, fmt.Errorf("eia API error: status %d: %s", resp.StatusCode, body)
	}

	var eiaResp response
	if err := json.NewDecoder(resp.Body).Decode(&eiaResp); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}

	if len(eiaResp.Response.Data) == 0 {
		return 0, fmt.Errorf("eia: no residential price for %s", state)
	}
	row := eiaResp.Response.Data[0]
	if row.Price == nil {
		return 0, fmt.Errorf("eia: null price for %s in %s", state, row.Period)
	}

	usd := float64(*row.Price) / 100
	c.logger.Debug("eia residential price", "state", state, "period", row.Period, "usd_per_kwh", usd)
	return usd, nil
}

// EIA API response types.

type response struct {
	Response struct {
		Data []row `json:"data"`
	} `json:"response"`
}

type row struct {
	Period  string `json:"period"`
	StateID string `json:"stateid"`
	Price   *cents `json:"price"`
	Units   string `json:"price-units"`
}

// cents accepts both JSON numbers and numeric strings; the API has returned
// either depending on version.
type cents float64

func (c *cents) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("eia price %s: %w", data, err)
	}
	*c = cents(v)
	return nil
}
