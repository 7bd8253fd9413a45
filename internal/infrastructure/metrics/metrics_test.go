package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorders(t *testing.T) {
	before := testutil.ToFloat64(RateLookups.WithLabelValues("stale"))
	RecordRateLookup("stale")
	assert.Equal(t, before+1, testutil.ToFloat64(RateLookups.WithLabelValues("stale")))

	before = testutil.ToFloat64(Conversions.WithLabelValues("missing_rate"))
	RecordConversion("missing_rate")
	assert.Equal(t, before+1, testutil.ToFloat64(Conversions.WithLabelValues("missing_rate")))

	before = testutil.ToFloat64(ProviderFetches.WithLabelValues("error"))
	RecordProviderFetch(false)
	assert.Equal(t, before+1, testutil.ToFloat64(ProviderFetches.WithLabelValues("error")))

	before = testutil.ToFloat64(httpRequests.WithLabelValues("GET", "unmatched", "404"))
	RecordHTTPRequest("get", "", http.StatusNotFound, 5*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	RecordConversion("converted")

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "expense_tracker_conversion_conversions_total")
}
