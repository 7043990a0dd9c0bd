package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fxsentinel/internal/logger"
	"fxsentinel/internal/model"
)

// DefaultExchangeRateURL is the public exchangerate.host endpoint.
const DefaultExchangeRateURL = "https://api.exchangerate.host"

// ExchangeRateFetcher implements Fetcher using the exchangerate.host REST API.
type ExchangeRateFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewExchangeRateFetcher creates a new fetcher with optional proxy support.
func NewExchangeRateFetcher(baseURL, apiKey, proxyURL string) *ExchangeRateFetcher {
	if baseURL == "" {
		baseURL = DefaultExchangeRateURL
	}
	return &ExchangeRateFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL),
	}
}

func (f *ExchangeRateFetcher) Name() string { return "exchangerate" }

// FetchRate requests /latest?base=EUR&symbols=USD and reads rates[quote].
func (f *ExchangeRateFetcher) FetchRate(ctx context.Context, base, quote string) (float64, error) {
	q := url.Values{}
	q.Set("base", base)
	q.Set("symbols", quote)
	if f.APIKey != "" {
		q.Set("access_key", f.APIKey)
	}
	endpoint := fmt.Sprintf("%s/latest?%s", f.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch rate: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read rate response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetch rate: status %d, body: %s", resp.StatusCode, string(body))
	}
	logger.L().Debug().Str("source", f.Name()).Bytes("response", body).Msg("rate response")

	return parseRates(body, base, quote)
}

// parseRates extracts rates[quote] from an exchangerate.host payload. A
// missing field is a RateUnavailableError; a present but non-numeric or
// non-positive value is an InvalidRateError.
func parseRates(body []byte, base, quote string) (float64, error) {
	pair := base + "/" + quote

	var payload struct {
		Success *bool                      `json:"success"`
		Rates   map[string]json.RawMessage `json:"rates"`
		Error   *struct {
			Info string `json:"info"`
			Type string `json:"type"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, &model.RateUnavailableError{Pair: pair, Reason: fmt.Sprintf("decode response: %v", err)}
	}
	if payload.Error != nil {
		reason := payload.Error.Info
		if reason == "" {
			reason = payload.Error.Type
		}
		return 0, &model.RateUnavailableError{Pair: pair, Reason: reason}
	}

	raw, ok := payload.Rates[quote]
	if !ok || string(raw) == "null" {
		return 0, &model.RateUnavailableError{Pair: pair, Reason: "no rate in response"}
	}
	return parseRateValue(raw)
}

func parseRateValue(raw json.RawMessage) (float64, error) {
	var rate float64
	if err := json.Unmarshal(raw, &rate); err != nil {
		// Some mirrors quote rates as strings.
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return 0, &model.InvalidRateError{Raw: string(raw)}
		}
		rate, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, &model.InvalidRateError{Raw: s}
		}
	}
	if math.IsInf(rate, 0) || !(rate > 0) {
		return 0, &model.InvalidRateError{Rate: rate}
	}
	return rate, nil
}

func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}
