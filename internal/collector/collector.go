package collector

import (
	"context"
	"fmt"

	"fxsentinel/internal/logger"
)

// MockFetcher returns a controllable fixed rate for development and testing.
type MockFetcher struct {
	Rate  float64
	Err   error
	Calls int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchRate(_ context.Context, _, _ string) (float64, error) {
	m.Calls++
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Rate, nil
}

// Collector polls one currency pair through a Fetcher.
type Collector struct {
	Fetcher Fetcher
	Base    string
	Quote   string
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, base, quote string) *Collector {
	return &Collector{Fetcher: fetcher, Base: base, Quote: quote}
}

// Pair returns the pair in BASE/QUOTE form.
func (c *Collector) Pair() string {
	return c.Base + "/" + c.Quote
}

// Collect fetches the latest rate for the configured pair.
func (c *Collector) Collect(ctx context.Context) (float64, error) {
	rate, err := c.Fetcher.FetchRate(ctx, c.Base, c.Quote)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", c.Fetcher.Name(), err)
	}
	logger.L().Info().
		Str("source", c.Fetcher.Name()).
		Str("pair", c.Pair()).
		Float64("rate", rate).
		Msg("rate fetched")
	return rate, nil
}
