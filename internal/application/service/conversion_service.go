// Package service internal/application/service/conversion_service.go
package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bharath-kadali/expenseTracker/internal/domain/entity"
	"github.com/bharath-kadali/expenseTracker/internal/infrastructure/logger"
	"github.com/bharath-kadali/expenseTracker/internal/infrastructure/metrics"
	"github.com/bharath-kadali/expenseTracker/internal/infrastructure/middleware"
)

// RateSource serves the current exchange rates keyed by currency code
type RateSource interface {
	GetRates(ctx context.Context) (map[string]float64, error)
}

// ConversionService converts amounts between currencies. It never fails: every
// degenerate case resolves to a tagged pass-through outcome.
type ConversionService struct {
	rates  RateSource
	logger logger.Logger
}

// NewConversionService creates a new conversion service
func NewConversionService(rates RateSource, log logger.Logger) *ConversionService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ConversionService{
		rates:  rates,
		logger: log,
	}
}

// Convert converts amount from one currency to another
func (s *ConversionService) Convert(ctx context.Context, amount float64, from, to string) entity.Conversion {
	result := s.convert(ctx, amount, from, to)
	metrics.RecordConversion(result.Outcome())

	if !result.IsConverted() && result.Reason != entity.ReasonSameCurrency {
		s.logger.Warn("Amount passed through unconverted", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"amount":     amount,
			"from":       from,
			"to":         to,
			"reason":     string(result.Reason),
		})
	}

	return result
}

// ConvertText converts an amount given as text. Empty and non-numeric input is
// treated as an invalid amount.
func (s *ConversionService) ConvertText(ctx context.Context, amount, from, to string) entity.Conversion {
	trimmed := strings.TrimSpace(amount)
	if trimmed == "" {
		metrics.RecordConversion(string(entity.ReasonInvalidAmount))
		return entity.Unconverted(0, entity.ReasonInvalidAmount)
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		s.logger.Debug("Non-numeric amount", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"amount":     amount,
		})
		metrics.RecordConversion(string(entity.ReasonInvalidAmount))
		return entity.Unconverted(0, entity.ReasonInvalidAmount)
	}

	return s.Convert(ctx, value, from, to)
}

func (s *ConversionService) convert(ctx context.Context, amount float64, from, to string) (result entity.Conversion) {
	if amount == 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return entity.Unconverted(0, entity.ReasonInvalidAmount)
	}

	if from == to {
		return entity.Unconverted(amount, entity.ReasonSameCurrency)
	}

	// A failing rate source must never block recording or displaying an expense
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Conversion failed unexpectedly", map[string]interface{}{
				"request_id": middleware.GetRequestID(ctx),
				"from":       from,
				"to":         to,
				"panic":      fmt.Sprint(r),
			})
			result = entity.Unconverted(amount, entity.ReasonConversionFailed)
		}
	}()

	rates, err := s.rates.GetRates(ctx)
	if err != nil {
		s.logger.Error("Exchange rates unavailable", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"error":      err.Error(),
		})
		return entity.Unconverted(amount, entity.ReasonRatesUnavailable)
	}

	snapshot := entity.RateSnapshot{Rates: rates}
	fromRate, okFrom := snapshot.Rate(from)
	toRate, okTo := snapshot.Rate(to)
	if !okFrom || !okTo {
		return entity.Unconverted(amount, entity.ReasonMissingRate)
	}

	converted := (amount / fromRate) * toRate
	if math.IsNaN(converted) || math.IsInf(converted, 0) {
		s.logger.Error("Conversion overflowed", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"amount":     amount,
			"from":       from,
			"to":         to,
		})
		return entity.Unconverted(amount, entity.ReasonConversionFailed)
	}

	s.logger.Debug("Conversion completed", map[string]interface{}{
		"request_id":       middleware.GetRequestID(ctx),
		"amount":           amount,
		"from":             from,
		"to":               to,
		"from_rate":        fromRate,
		"to_rate":          toRate,
		"converted_amount": converted,
	})

	return entity.Converted(converted)
}
