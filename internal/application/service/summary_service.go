package service

import (
	"context"

	"github.com/Rhymond/go-money"
	"github.com/bharath-kadali/expenseTracker/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ExpenseLister lists expenses and the currency their converted amounts are in
type ExpenseLister interface {
	ListExpenses(ctx context.Context) ([]*entity.Expense, error)
	GetPreferredCurrency(ctx context.Context) (string, error)
}

// CategoryTotal is the sum of converted amounts for one category
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Display  string  `json:"display"`
	Count    int     `json:"count"`
}

// Summary aggregates all expenses in the preferred currency
type Summary struct {
	Currency   string          `json:"currency"`
	Count      int             `json:"count"`
	Total      float64         `json:"total"`
	Display    string          `json:"display"`
	Categories []CategoryTotal `json:"categories"`
}

// SummaryService computes totals over the stored expenses
type SummaryService struct {
	expenses ExpenseLister
}

// NewSummaryService creates a new summary service
func NewSummaryService(expenses ExpenseLister) *SummaryService {
	return &SummaryService{expenses: expenses}
}

// Summarize returns the grand total and per-category totals. Categories keep
// the order in which they first appear. Totals are rounded to the currency's
// minor unit; the individual converted amounts are not.
func (s *SummaryService) Summarize(ctx context.Context) (*Summary, error) {
	currency, err := s.expenses.GetPreferredCurrency(ctx)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenses.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	var order []string

	for _, e := range expenses {
		amount := decimal.NewFromFloat(e.ConvertedAmount)
		total = total.Add(amount)

		if _, seen := byCategory[e.Category]; !seen {
			order = append(order, e.Category)
		}
		byCategory[e.Category] = byCategory[e.Category].Add(amount)
		counts[e.Category]++
	}

	summary := &Summary{
		Currency:   currency,
		Count:      len(expenses),
		Total:      RoundToMinorUnit(total, currency).InexactFloat64(),
		Display:    FormatAmount(total, currency),
		Categories: make([]CategoryTotal, 0, len(order)),
	}

	for _, category := range order {
		sum := byCategory[category]
		summary.Categories = append(summary.Categories, CategoryTotal{
			Category: category,
			Total:    RoundToMinorUnit(sum, currency).InexactFloat64(),
			Display:  FormatAmount(sum, currency),
			Count:    counts[category],
		})
	}

	return summary, nil
}

// minorUnits returns the number of fraction digits of a currency, 2 when unknown
func minorUnits(code string) (*money.Currency, int32) {
	cur := money.New(0, code).Currency()
	if cur == nil || cur.Template == "" {
		return nil, 2
	}
	return cur, int32(cur.Fraction)
}

// RoundToMinorUnit rounds amount to the fraction digits of the currency
func RoundToMinorUnit(amount decimal.Decimal, code string) decimal.Decimal {
	_, fraction := minorUnits(code)
	return amount.Round(fraction)
}

// FormatAmount renders amount for display, e.g. "$1,234.50". Codes unknown to
// the currency table render as "1234.50 XYZ".
func FormatAmount(amount decimal.Decimal, code string) string {
	cur, fraction := minorUnits(code)
	rounded := amount.Round(fraction)
	if cur == nil {
		return rounded.StringFixed(fraction) + " " + code
	}
	return cur.Formatter().Format(rounded.Shift(fraction).IntPart())
}
