package handler

import (
	"github.com/bharath-kadali/expenseTracker/internal/domain/entity"
)

// CreateExpenseRequest represents the request body for creating an expense
type CreateExpenseRequest struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Currency string  `json:"currency" validate:"required,len=3,alpha"`
	Category string  `json:"category" validate:"required,max=50"`
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
}

// UpdateExpenseRequest represents the request body for editing an expense.
// Omitted fields are left unchanged.
type UpdateExpenseRequest struct {
	Amount   *float64 `json:"amount" validate:"omitempty,gt=0"`
	Currency *string  `json:"currency" validate:"omitempty,len=3,alpha"`
	Category *string  `json:"category" validate:"omitempty,min=1,max=50"`
	Date     *string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// ExpenseResponse represents an expense in responses
type ExpenseResponse struct {
	ID              string  `json:"id"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	Category        string  `json:"category"`
	Date            string  `json:"date"`
	ConvertedAmount float64 `json:"convertedAmount"`
}

// ExpenseListResponse represents the response for listing expenses
type ExpenseListResponse struct {
	Currency string            `json:"currency"`
	Expenses []ExpenseResponse `json:"expenses"`
}

// PreferenceRequest represents the request body for changing the preferred currency
type PreferenceRequest struct {
	Currency string `json:"currency" validate:"required,len=3,alpha"`
}

// PreferenceResponse represents the preferred currency
type PreferenceResponse struct {
	Currency string `json:"currency"`
}

// ConversionResponse represents the response for the conversion endpoint
type ConversionResponse struct {
	Amount    string  `json:"amount"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Value     float64 `json:"value"`
	Converted bool    `json:"converted"`
	Reason    string  `json:"reason,omitempty"`
}

// RatesResponse represents the current rate snapshot
type RatesResponse struct {
	Rates     map[string]float64 `json:"rates"`
	Timestamp int64              `json:"timestamp"`
	FetchedAt string             `json:"fetched_at"`
	Source    string             `json:"source"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error       string `json:"error"`
	Status      int    `json:"status"`
	Description string `json:"description,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
}

func toExpenseResponse(e *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:              e.ID,
		Amount:          e.Amount,
		Currency:        e.Currency,
		Category:        e.Category,
		Date:            e.Date,
		ConvertedAmount: e.ConvertedAmount,
	}
}

func toExpenseResponses(expenses []*entity.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	return out
}
