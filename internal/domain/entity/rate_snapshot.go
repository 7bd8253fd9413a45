package entity

import (
	"time"
)

// RateSnapshot is a set of exchange rates relative to a common base currency,
// together with the time it was fetched (epoch milliseconds).
type RateSnapshot struct {
	Rates     map[string]float64 `json:"rates"`
	Timestamp int64              `json:"timestamp"`
}

// NewRateSnapshot creates a snapshot stamped with the given fetch time
func NewRateSnapshot(rates map[string]float64, fetchedAt time.Time) *RateSnapshot {
	return &RateSnapshot{
		Rates:     rates,
		Timestamp: fetchedAt.UnixMilli(),
	}
}

// FetchedAt returns the fetch time of the snapshot
func (s *RateSnapshot) FetchedAt() time.Time {
	return time.UnixMilli(s.Timestamp)
}

// IsFresh reports whether the snapshot is younger than window at now
func (s *RateSnapshot) IsFresh(now time.Time, window time.Duration) bool {
	return now.UnixMilli()-s.Timestamp < window.Milliseconds()
}

// Rate returns the rate for a currency. Zero, negative and missing rates
// are reported as absent.
func (s *RateSnapshot) Rate(currency string) (float64, bool) {
	rate, ok := s.Rates[currency]
	if !ok || !(rate > 0) {
		return 0, false
	}
	return rate, true
}
