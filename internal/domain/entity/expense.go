package entity

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bharath-kadali/expenseTracker/internal/domain/apperrors"
)

// DateLayout is the calendar date format used for expense dates
const DateLayout = "2006-01-02"

// Expense represents a single recorded expense
type Expense struct {
	ID              string  `json:"id"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	Category        string  `json:"category"`
	Date            string  `json:"date"`
	ConvertedAmount float64 `json:"convertedAmount"`
}

// ExpenseUpdate holds the fields of an expense that may be edited.
// Nil fields are left unchanged.
type ExpenseUpdate struct {
	Amount   *float64
	Currency *string
	Category *string
	Date     *string
}

// Apply copies the non-nil fields of the update onto the expense
func (u ExpenseUpdate) Apply(e *Expense) {
	if u.Amount != nil {
		e.Amount = *u.Amount
	}
	if u.Currency != nil {
		e.Currency = *u.Currency
	}
	if u.Category != nil {
		e.Category = *u.Category
	}
	if u.Date != nil {
		e.Date = *u.Date
	}
}

// Validate ensures the expense meets all requirements
func (e *Expense) Validate() error {
	if math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) || e.Amount <= 0 {
		return fmt.Errorf("%w: amount must be a positive value", apperrors.ErrValidation)
	}

	if strings.TrimSpace(e.Currency) == "" {
		return fmt.Errorf("%w: currency is required", apperrors.ErrValidation)
	}

	if strings.TrimSpace(e.Category) == "" {
		return fmt.Errorf("%w: category is required", apperrors.ErrValidation)
	}

	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return fmt.Errorf("%w: date must be in YYYY-MM-DD format", apperrors.ErrValidation)
	}

	return nil
}
