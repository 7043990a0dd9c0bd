package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"fxsentinel/internal/model"
)

// DefaultYahooURL is the Yahoo Finance chart API host.
const DefaultYahooURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using the Yahoo Finance public chart API.
// Currency pairs are quoted under tickers like "EURUSD=X".
type YahooFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(baseURL, proxyURL string) *YahooFetcher {
	if baseURL == "" {
		baseURL = DefaultYahooURL
	}
	return &YahooFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  newHTTPClient(proxyURL),
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func yahooTicker(base, quote string) string {
	return strings.ToUpper(base+quote) + "=X"
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice *float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchRate returns the regular market price of the pair, falling back to
// the last non-null close of the day.
func (f *YahooFetcher) FetchRate(ctx context.Context, base, quote string) (float64, error) {
	pair := base + "/" + quote
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d",
		f.BaseURL, url.PathEscape(yahooTicker(base, quote)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return 0, &model.RateUnavailableError{Pair: pair, Reason: fmt.Sprintf("yahoo decode: %v", err)}
	}
	if chart.Chart.Error != nil {
		return 0, &model.RateUnavailableError{Pair: pair, Reason: chart.Chart.Error.Description}
	}
	if len(chart.Chart.Result) == 0 {
		return 0, &model.RateUnavailableError{Pair: pair, Reason: "yahoo: no data returned"}
	}

	result := chart.Chart.Result[0]
	if p := result.Meta.RegularMarketPrice; p != nil {
		return validRate(*p)
	}
	if len(result.Indicators.Quote) > 0 {
		closes := result.Indicators.Quote[0].Close
		for i := len(closes) - 1; i >= 0; i-- {
			if closes[i] != nil {
				return validRate(*closes[i])
			}
		}
	}
	return 0, &model.RateUnavailableError{Pair: pair, Reason: "yahoo: no price data"}
}

func validRate(rate float64) (float64, error) {
	if !(rate > 0) {
		return 0, &model.InvalidRateError{Rate: rate}
	}
	return rate, nil
}
