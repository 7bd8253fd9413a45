package cache

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/bharath-kadali/expenseTracker/internal/domain/apperrors"
	"github.com/bharath-kadali/expenseTracker/internal/domain/entity"
	"github.com/bharath-kadali/expenseTracker/internal/domain/repository"
	"github.com/bharath-kadali/expenseTracker/internal/domain/service"
	"github.com/bharath-kadali/expenseTracker/internal/infrastructure/logger"
	"github.com/bharath-kadali/expenseTracker/internal/infrastructure/metrics"
	"golang.org/x/sync/singleflight"
)

// DefaultFreshnessWindow is used when no window is configured
const DefaultFreshnessWindow = time.Hour

const refreshKey = "latest"

// RateSource tells how the rates of a lookup were obtained
type RateSource string

const (
	// SourceFresh means the persisted snapshot was within the freshness window
	SourceFresh RateSource = "fresh"
	// SourceRefreshed means the provider was called and the snapshot replaced
	SourceRefreshed RateSource = "refreshed"
	// SourceStale means the refresh failed and the previous snapshot was used
	SourceStale RateSource = "stale"
)

// RateLookup is the result of a rate cache lookup
type RateLookup struct {
	Snapshot *entity.RateSnapshot
	Source   RateSource
	// RefreshError is the refresh failure behind a stale result
	RefreshError error
}

// RateCache serves the persisted exchange rate snapshot, refreshing it from the
// provider once it is older than the freshness window. Concurrent refreshes are
// collapsed into one provider call.
type RateCache struct {
	repo     repository.RateSnapshotRepository
	provider service.RateProvider
	window   time.Duration
	now      func() time.Time
	logger   logger.Logger

	refreshes singleflight.Group
	saveMu    sync.Mutex
}

// NewRateCache creates a new rate cache
func NewRateCache(repo repository.RateSnapshotRepository, provider service.RateProvider, window time.Duration, log logger.Logger) *RateCache {
	if window <= 0 {
		window = DefaultFreshnessWindow
	}

	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &RateCache{
		repo:     repo,
		provider: provider,
		window:   window,
		now:      time.Now,
		logger:   log.WithField("component", "rate_cache"),
	}
}

// SetClock replaces the time source
func (c *RateCache) SetClock(now func() time.Time) {
	c.now = now
}

// FreshnessWindow returns the configured window
func (c *RateCache) FreshnessWindow() time.Duration {
	return c.window
}

// GetRates returns the current rates keyed by currency code. It fails with
// apperrors.ErrRatesUnavailable only when nothing is cached and the refresh fails.
func (c *RateCache) GetRates(ctx context.Context) (map[string]float64, error) {
	lookup, err := c.Lookup(ctx)
	if err != nil {
		return nil, err
	}
	return maps.Clone(lookup.Snapshot.Rates), nil
}

// Lookup returns the current snapshot together with how it was obtained
func (c *RateCache) Lookup(ctx context.Context) (*RateLookup, error) {
	cached := c.load(ctx)
	if cached != nil && cached.IsFresh(c.now(), c.window) {
		metrics.RecordRateLookup(string(SourceFresh))
		return &RateLookup{Snapshot: cached, Source: SourceFresh}, nil
	}

	// A shared flight outlives the caller that started it
	flightCtx := context.WithoutCancel(ctx)
	v, err, shared := c.refreshes.Do(refreshKey, func() (interface{}, error) {
		return c.refresh(flightCtx)
	})

	if err != nil {
		if cached != nil {
			c.logger.Warn("Rate refresh failed, using stale snapshot", map[string]interface{}{
				"fetched_at": cached.FetchedAt().UTC().Format(time.RFC3339),
				"shared":     shared,
				"error":      err.Error(),
			})
			metrics.RecordRateLookup(string(SourceStale))
			return &RateLookup{Snapshot: cached, Source: SourceStale, RefreshError: err}, nil
		}

		c.logger.Error("Rate refresh failed with no cached snapshot", map[string]interface{}{
			"error": err.Error(),
		})
		metrics.RecordRateLookup("unavailable")
		return nil, fmt.Errorf("%w: %w", apperrors.ErrRatesUnavailable, err)
	}

	lookup := v.(*RateLookup)
	metrics.RecordRateLookup(string(lookup.Source))
	return lookup, nil
}

// refresh runs inside the single-flight group
func (c *RateCache) refresh(ctx context.Context) (*RateLookup, error) {
	// A refresh that finished while this caller was queued may already have
	// replaced the snapshot.
	if current := c.load(ctx); current != nil && current.IsFresh(c.now(), c.window) {
		return &RateLookup{Snapshot: current, Source: SourceFresh}, nil
	}

	c.logger.Info("Refreshing exchange rates", map[string]interface{}{
		"window": c.window.String(),
	})

	rates, err := c.provider.FetchLatestRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh exchange rates: %w", err)
	}

	snapshot := c.save(ctx, entity.NewRateSnapshot(rates, c.now()))

	c.logger.Info("Exchange rates refreshed", map[string]interface{}{
		"currencies": len(snapshot.Rates),
		"fetched_at": snapshot.FetchedAt().UTC().Format(time.RFC3339),
	})

	return &RateLookup{Snapshot: snapshot, Source: SourceRefreshed}, nil
}

// save persists snapshot unless a newer one is already stored, and returns the
// snapshot that is current afterwards.
func (c *RateCache) save(ctx context.Context, snapshot *entity.RateSnapshot) *entity.RateSnapshot {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()

	if existing := c.load(ctx); existing != nil && existing.Timestamp > snapshot.Timestamp {
		c.logger.Warn("Discarding refresh older than stored snapshot", map[string]interface{}{
			"stored_timestamp":    existing.Timestamp,
			"discarded_timestamp": snapshot.Timestamp,
		})
		return existing
	}

	if err := c.repo.Save(ctx, snapshot); err != nil {
		// The fetched rates are still good for this call
		c.logger.Error("Failed to persist exchange rates", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return snapshot
}

// load returns the persisted snapshot, or nil if there is none or it cannot be read
func (c *RateCache) load(ctx context.Context) *entity.RateSnapshot {
	snapshot, err := c.repo.Load(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			c.logger.Error("Failed to load cached exchange rates", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return nil
	}

	if snapshot == nil || snapshot.Rates == nil {
		return nil
	}

	return snapshot
}
