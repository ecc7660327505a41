// Package freecurrency implements the rate-provider contract against the
// freecurrencyapi.com v1 endpoints (currencies, latest, historical).
package freecurrency

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fxwatch/fxwatch/internal/apperrors"
	"github.com/fxwatch/fxwatch/internal/core/ports"
)

const DefaultBaseURL = "https://api.freecurrencyapi.com/v1"

// Client calls the provider over HTTP. The API key travels as the "apikey"
// query parameter on every request.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ ports.RateAPIClient = (*Client)(nil)

// ListCurrencies fetches currency metadata, optionally restricted to codes.
func (c *Client) ListCurrencies(ctx context.Context, codes []string) (map[string]ports.CurrencyInfo, error) {
	params := url.Values{}
	if len(codes) > 0 {
		params.Set("currencies", joinUpper(codes))
	}

	var payload struct {
		Data map[string]ports.CurrencyInfo `json:"data"`
	}
	if err := c.get(ctx, "currencies", params, &payload); err != nil {
		return nil, err
	}
	if payload.Data == nil {
		return nil, &apperrors.APIError{Err: fmt.Errorf("missing data field in currencies response")}
	}
	return payload.Data, nil
}

// LatestRates fetches the current rates from base to each target.
func (c *Client) LatestRates(ctx context.Context, base string, targets []string) (map[string]decimal.Decimal, error) {
	params := url.Values{}
	params.Set("base_currency", strings.ToUpper(base))
	if len(targets) > 0 {
		params.Set("currencies", joinUpper(targets))
	}

	var payload struct {
		Data map[string]decimal.Decimal `json:"data"`
	}
	if err := c.get(ctx, "latest", params, &payload); err != nil {
		return nil, err
	}
	if payload.Data == nil {
		return nil, &apperrors.APIError{Err: fmt.Errorf("missing data field in latest rates response")}
	}
	return payload.Data, nil
}

// HistoricalRates fetches the rates recorded on the given date. The provider
// keys the payload by date; the entry for the requested day is returned.
func (c *Client) HistoricalRates(ctx context.Context, date time.Time, base string, targets []string) (map[string]decimal.Decimal, error) {
	day := date.Format("2006-01-02")

	params := url.Values{}
	params.Set("base_currency", strings.ToUpper(base))
	params.Set("date", day)
	if len(targets) > 0 {
		params.Set("currencies", joinUpper(targets))
	}

	var payload struct {
		Data map[string]map[string]decimal.Decimal `json:"data"`
	}
	if err := c.get(ctx, "historical", params, &payload); err != nil {
		return nil, err
	}
	rates, ok := payload.Data[day]
	if !ok {
		return nil, &apperrors.APIError{Err: fmt.Errorf("no rates for %s in historical response", day)}
	}
	return rates, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	params.Set("apikey", c.apiKey)
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &apperrors.APIError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &apperrors.APIError{Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apperrors.APIError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &apperrors.APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &apperrors.APIError{StatusCode: resp.StatusCode, Body: string(body), Err: fmt.Errorf("invalid JSON response: %w", err)}
	}
	return nil
}

func joinUpper(codes []string) string {
	upper := make([]string, len(codes))
	for i, code := range codes {
		upper[i] = strings.ToUpper(code)
	}
	return strings.Join(upper, ",")
}
