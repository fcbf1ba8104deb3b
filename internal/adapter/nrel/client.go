package nrel

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the NREL Solar Resource Data endpoint.
const DefaultBaseURL = "https://developer.nrel.gov/api/solar/solar_resource/v1.json"

// Client implements domain.IrradianceSource using the NREL Solar Resource
// API. The annual average global horizontal irradiance, in kWh/m²/day, is
// numerically equal to peak sun hours per day.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an NREL client.
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

// SunHours returns the annual average daily peak sun hours at a point.
func (c *Client) SunHours(ctx context.Context, lat, lon float64) (float64, error) {
	params := url.Values{
		"api_key": {c.apiKey},
		"lat":     {strconv.FormatFloat(lat, 'f', 4, 64)},
		"lon":     {strconv.FormatFloat(lon, 'f', 4, 64)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("solar resource request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, fmt.Errorf("nrel API error: status %d: %s", resp.StatusCode, body)
	}

	var nrelResp response
	if err := json.NewDecoder(resp.Body).Decode(&nrelResp); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	if len(nrelResp.Errors) > 0 {
		return 0, fmt.Errorf("nrel API error: %s", nrelResp.Errors[0])
	}

	annual, err := nrelResp.Outputs.AvgGHI.annual()
	if err != nil {
		return 0, err
	}

	c.logger.Debug("nrel irradiance", "lat", lat, "lon", lon, "avg_ghi", annual)
	return annual, nil
}

// NREL API response types.

type response struct {
	Errors  []string `json:"errors"`
	Outputs outputs  `json:"outputs"`
}

type outputs struct {
	AvgGHI irradiance `json:"avg_ghi"`
}

// irradiance is either an object with an "annual" field or the string
// "no data" when the point is outside coverage.
type irradiance struct {
	Annual *float64 `json:"annual"`
	raw    string
}

func (i *irradiance) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &i.raw)
	}
	type plain struct {
		Annual *float64 `json:"annual"`
	}
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	i.Annual = p.Annual
	return nil
}

func (i irradiance) annual() (float64, error) {
	if i.Annual == nil {
		if i.raw != "" {
			return 0, fmt.Errorf("nrel avg_ghi unavailable: %s", i.raw)
		}
		return 0, fmt.Errorf("nrel response missing avg_ghi.annual")
	}
	return *i.Annual, nil
}
