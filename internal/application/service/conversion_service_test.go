// internal/application/service/conversion_service_test.go
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/bharath-kadali/expenseTracker/internal/domain/apperrors"
	"github.com/bharath-kadali/expenseTracker/internal/domain/entity"
	"github.com/bharath-kadali/expenseTracker/internal/infrastructure/logger"
	"github.com/bharath-kadali/expenseTracker/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// panickingRateSource simulates an unexpected failure in the rate source
type panickingRateSource struct{}

func (panickingRateSource) GetRates(ctx context.Context) (map[string]float64, error) {
	panic("corrupt cache")
}

func quietLogger() logger.Logger {
	return logger.NewJSONLogger(nil, logger.FatalLevel)
}

func TestConvert(t *testing.T) {
	ctx := context.Background()
	rates := map[string]float64{"USD": 1, "EUR": 0.9}

	t.Run("Identity conversion", func(t *testing.T) {
		source := new(mocks.MockRateSource)
		service := NewConversionService(source, quietLogger())

		for _, amount := range []float64{0.1, 1, 19.99, 100, 1e9, -5} {
			for _, code := range []string{"USD", "EUR", "XYZ"} {
				result := service.Convert(ctx, amount, code, code)
				assert.Equal(t, amount, result.Value)
				assert.Equal(t, entity.ReasonSameCurrency, result.Reason)
			}
		}

		source.AssertNotCalled(t, "GetRates", mock.Anything)
	})

	t.Run("Invalid amounts", func(t *testing.T) {
		source := new(mocks.MockRateSource)
		service := NewConversionService(source, quietLogger())

		for _, amount := range []float64{0, math.NaN(), math.Inf(1), math.Inf(-1)} {
			result := service.Convert(ctx, amount, "USD", "EUR")
			assert.Equal(t, 0.0, result.Value)
			assert.Equal(t, entity.ReasonInvalidAmount, result.Reason)
		}

		source.AssertNotCalled(t, "GetRates", mock.Anything)
	})

	t.Run("Round trip", func(t *testing.T) {
		source := new(mocks.MockRateSource)
		source.On("GetRates", ctx).Return(rates, nil)
		service := NewConversionService(source, quietLogger())

		toEUR := service.Convert(ctx, 100, "USD", "EUR")
		assert.True(t, toEUR.IsConverted())
		assert.InDelta(t, 90, toEUR.Value, 1e-9)

		toUSD := service.Convert(ctx, 90, "EUR", "USD")
		assert.True(t, toUSD.IsConverted())
		assert.InDelta(t, 100, toUSD.Value, 1e-9)
	})

	t.Run("Triangulates through the base currency", func(t *testing.T) {
		source := new(mocks.MockRateSource)
		source.On("GetRates", ctx).Return(map[string]float64{"USD": 1, "EUR": 0.8, "JPY": 160}, nil)
		service := NewConversionService(source, quietLogger())

		result := service.Convert(ctx, 10, "EUR", "JPY")
		assert.InDelta(t, 2000, result.Value, 1e-9)
	})

	t.Run("Missing currency passes through", func(t *testing.T) {
		source := new(mocks.MockRateSource)
		source.On("GetRates", ctx).Return(rates, nil)
		service := NewConversionService(source, quietLogger())

		result := service.Convert(ctx, 50, "USD", "XYZ")
		assert.Equal(t, 50.0, result.Value)
		assert.Equal(t, entity.ReasonMissingRate, result.Reason)

		result = service.Convert(ctx, 50, "XYZ", "USD")
		assert.Equal(t, 50.0, result.Value)
		assert.Equal(t, entity.ReasonMissingRate, result.Reason)
	})

	t.Run("Zero rate is treated as missing", func(t *testing.T) {
		source := new(mocks.MockRateSource)
		source.On("GetRates", ctx).Return(map[string]float64{"USD": 1, "EUR": 0}, nil)
		service := NewConversionService(source, quietLogger())

		result := service.Convert(ctx, 50, "EUR", "USD")
		assert.Equal(t, 50.0, result.Value)
		assert.Equal(t, entity.ReasonMissingRate, result.Reason)
	})

	t.Run("Rates unavailable passes through", func(t *testing.T) {
		source := new(mocks.MockRateSource)
		source.On("GetRates", ctx).Return(nil, fmt.Errorf("%w: offline", apperrors.ErrRatesUnavailable))
		service := NewConversionService(source, quietLogger())

		result := service.Convert(ctx, 42, "USD", "EUR")
		assert.Equal(t, 42.0, result.Value)
		assert.Equal(t, entity.ReasonRatesUnavailable, result.Reason)
	})

	t.Run("Overflow passes through", func(t *testing.T) {
		source := new(mocks.MockRateSource)
		source.On("GetRates", ctx).Return(map[string]float64{"USD": 1, "JPY": 150}, nil)
		service := NewConversionService(source, quietLogger())

		result := service.Convert(ctx, 1e308, "USD", "JPY")
		assert.Equal(t, 1e308, result.Value)
		assert.Equal(t, entity.ReasonConversionFailed, result.Reason)
	})

	t.Run("Unexpected failure passes through", func(t *testing.T) {
		service := NewConversionService(panickingRateSource{}, quietLogger())

		result := service.Convert(ctx, 42, "USD", "EUR")
		assert.Equal(t, 42.0, result.Value)
		assert.Equal(t, entity.ReasonConversionFailed, result.Reason)
	})

	t.Run("Degraded outcomes are logged", func(t *testing.T) {
		source := new(mocks.MockRateSource)
		source.On("GetRates", ctx).Return(nil, errors.New("boom"))

		mockLog := new(mocks.MockLogger)
		mockLog.On("Error", "Exchange rates unavailable", mock.Anything).Once()
		mockLog.On("Warn", "Amount passed through unconverted", mock.MatchedBy(func(fields map[string]interface{}) bool {
			return fields["reason"] == "rates_unavailable" && fields["from"] == "USD"
		})).Once()

		service := NewConversionService(source, mockLog)
		service.Convert(ctx, 1, "USD", "EUR")

		mockLog.AssertExpectations(t)
	})
}

func TestConvertText(t *testing.T) {
	ctx := context.Background()
	source := new(mocks.MockRateSource)
	source.On("GetRates", ctx).Return(map[string]float64{"USD": 1, "EUR": 0.9}, nil)
	service := NewConversionService(source, quietLogger())

	for _, raw := range []string{"", "   ", "abc", "12abc", "NaN"} {
		result := service.ConvertText(ctx, raw, "USD", "EUR")
		assert.Equal(t, 0.0, result.Value, "input %q", raw)
		assert.Equal(t, entity.ReasonInvalidAmount, result.Reason, "input %q", raw)
	}

	result := service.ConvertText(ctx, " 100 ", "USD", "EUR")
	assert.True(t, result.IsConverted())
	assert.InDelta(t, 90, result.Value, 1e-9)
}
