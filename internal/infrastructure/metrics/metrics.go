// Package metrics holds the Prometheus collectors of the expense tracker.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "expense_tracker"

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "route"},
	)

	// RateLookups counts rate cache lookups by how the rates were obtained.
	RateLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rate_cache",
			Name:      "lookups_total",
			Help:      "Rate cache lookups by source (fresh, refreshed, stale, unavailable).",
		},
		[]string{"source"},
	)

	// ProviderFetches counts calls to the exchange rate provider.
	ProviderFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rate_provider",
			Name:      "fetches_total",
			Help:      "Exchange rate provider fetches by result.",
		},
		[]string{"result"},
	)

	// Conversions counts conversions by outcome.
	Conversions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "conversion",
			Name:      "conversions_total",
			Help:      "Currency conversions by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		RateLookups,
		ProviderFetches,
		Conversions,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records a handled request. route should be the route
// template, not the raw path, to keep label cardinality bounded.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	method = strings.ToUpper(method)
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordRateLookup records how a rate cache lookup was served.
func RecordRateLookup(source string) {
	RateLookups.WithLabelValues(source).Inc()
}

// RecordProviderFetch records a provider call.
func RecordProviderFetch(success bool) {
	result := "error"
	if success {
		result = "success"
	}
	ProviderFetches.WithLabelValues(result).Inc()
}

// RecordConversion records a conversion outcome.
func RecordConversion(outcome string) {
	Conversions.WithLabelValues(outcome).Inc()
}
