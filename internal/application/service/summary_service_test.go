package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bharath-kadali/expenseTracker/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLister struct {
	currency string
	expenses []*entity.Expense
	err      error
}

func (s stubLister) ListExpenses(ctx context.Context) ([]*entity.Expense, error) {
	return s.expenses, s.err
}

func (s stubLister) GetPreferredCurrency(ctx context.Context) (string, error) {
	return s.currency, nil
}

func TestSummarize(t *testing.T) {
	ctx := context.Background()

	t.Run("Totals by category in first-seen order", func(t *testing.T) {
		lister := stubLister{
			currency: "USD",
			expenses: []*entity.Expense{
				{ID: "1", Category: "Food", ConvertedAmount: 10.105},
				{ID: "2", Category: "Rent", ConvertedAmount: 1200},
				{ID: "3", Category: "Food", ConvertedAmount: 4.2},
				{ID: "4", Category: "Travel", ConvertedAmount: 30.333},
			},
		}

		summary, err := NewSummaryService(lister).Summarize(ctx)
		require.NoError(t, err)

		assert.Equal(t, "USD", summary.Currency)
		assert.Equal(t, 4, summary.Count)
		assert.Equal(t, 1244.64, summary.Total)
		assert.Equal(t, "$1,244.64", summary.Display)

		require.Len(t, summary.Categories, 3)
		assert.Equal(t, "Food", summary.Categories[0].Category)
		assert.Equal(t, 14.31, summary.Categories[0].Total)
		assert.Equal(t, 2, summary.Categories[0].Count)
		assert.Equal(t, "Rent", summary.Categories[1].Category)
		assert.Equal(t, "$1,200.00", summary.Categories[1].Display)
		assert.Equal(t, "Travel", summary.Categories[2].Category)
		assert.Equal(t, 30.33, summary.Categories[2].Total)
	})

	t.Run("No expenses", func(t *testing.T) {
		summary, err := NewSummaryService(stubLister{currency: "EUR"}).Summarize(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0.0, summary.Total)
		assert.Empty(t, summary.Categories)
		assert.NotNil(t, summary.Categories)
	})

	t.Run("Lister error", func(t *testing.T) {
		_, err := NewSummaryService(stubLister{currency: "EUR", err: errors.New("disk")}).Summarize(ctx)
		assert.Error(t, err)
	})
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$85.00", FormatAmount(decimal.NewFromInt(85), "USD"))
	assert.Equal(t, "$0.10", FormatAmount(decimal.RequireFromString("0.1"), "USD"))
	assert.Equal(t, "12.35 XYZ", FormatAmount(decimal.RequireFromString("12.345"), "XYZ"))
}

func TestRoundToMinorUnit(t *testing.T) {
	assert.Equal(t, "2000", RoundToMinorUnit(decimal.RequireFromString("1999.7"), "JPY").String())
	assert.Equal(t, "19.97", RoundToMinorUnit(decimal.RequireFromString("19.9749"), "EUR").String())
	assert.Equal(t, "1.01", RoundToMinorUnit(decimal.RequireFromString("1.005"), "XYZ").String())
}
