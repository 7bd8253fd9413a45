package service

import (
	"context"
)

// RateProvider defines the interface for fetching the latest exchange rates
type RateProvider interface {
	// FetchLatestRates returns rates keyed by currency code, relative to the provider's base currency
	FetchLatestRates(ctx context.Context) (map[string]float64, error)
}
