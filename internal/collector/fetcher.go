package collector

import "context"

// Fetcher defines the interface for fetching a live exchange rate.
type Fetcher interface {
	// FetchRate returns how many units of quote one unit of base buys.
	FetchRate(ctx context.Context, base, quote string) (float64, error)
	Name() string
}
