// Package handler internal/infrastructure/handler/conversion_handler.go
package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/bharath-kadali/expenseTracker/internal/application/service"
	"github.com/bharath-kadali/expenseTracker/internal/infrastructure/cache"
	"github.com/bharath-kadali/expenseTracker/internal/infrastructure/logger"
	"github.com/bharath-kadali/expenseTracker/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// RateLookup exposes the current rate snapshot
type RateLookup interface {
	Lookup(ctx context.Context) (*cache.RateLookup, error)
}

// ConversionHandler handles HTTP requests for currency conversion, rates and totals
type ConversionHandler struct {
	conversions *service.ConversionService
	summaries   *service.SummaryService
	rates       RateLookup
	logger      logger.Logger
}

// NewConversionHandler creates a new conversion handler
func NewConversionHandler(conversions *service.ConversionService, summaries *service.SummaryService, rates RateLookup, log logger.Logger) *ConversionHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ConversionHandler{
		conversions: conversions,
		summaries:   summaries,
		rates:       rates,
		logger:      log,
	}
}

// Convert handles an ad-hoc conversion. Degenerate input never fails the
// request; the response says whether the value was converted.
func (h *ConversionHandler) Convert(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()

	from := strings.ToUpper(strings.TrimSpace(query.Get("from")))
	to := strings.ToUpper(strings.TrimSpace(query.Get("to")))

	if from == "" || to == "" {
		h.logger.Warn("Missing currency parameter", map[string]interface{}{
			"request_id": requestID,
			"from":       from,
			"to":         to,
		})
		sendErrorResponse(w, h.logger, "Missing currency parameter",
			"The 'from' and 'to' query parameters are required", http.StatusBadRequest, requestID)
		return
	}

	amount := query.Get("amount")
	result := h.conversions.ConvertText(r.Context(), amount, from, to)

	writeJSON(w, h.logger, http.StatusOK, ConversionResponse{
		Amount:    amount,
		From:      from,
		To:        to,
		Value:     result.Value,
		Converted: result.IsConverted(),
		Reason:    string(result.Reason),
	})
}

// GetRates handles reading the current rate snapshot
func (h *ConversionHandler) GetRates(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	lookup, err := h.rates.Lookup(r.Context())
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, RatesResponse{
		Rates:     lookup.Snapshot.Rates,
		Timestamp: lookup.Snapshot.Timestamp,
		FetchedAt: lookup.Snapshot.FetchedAt().UTC().Format(time.RFC3339),
		Source:    string(lookup.Source),
	})
}

// GetSummary handles the total and per-category breakdown
func (h *ConversionHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	summary, err := h.summaries.Summarize(r.Context())
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, summary)
}

// RegisterRoutes registers the conversion handler routes
func (h *ConversionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/convert", h.Convert).Methods("GET")
	router.HandleFunc("/rates", h.GetRates).Methods("GET")
	router.HandleFunc("/summary", h.GetSummary).Methods("GET")

	h.logger.Info("Conversion routes registered", map[string]interface{}{
		"routes": []string{
			"GET /convert",
			"GET /rates",
			"GET /summary",
		},
	})
}
