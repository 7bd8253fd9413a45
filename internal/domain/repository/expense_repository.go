package repository

import (
	"context"

	"github.com/bharath-kadali/expenseTracker/internal/domain/entity"
)

// ExpenseRepository defines the interface for expense storage.
// Expenses are persisted as a single ordered list.
type ExpenseRepository interface {
	// FindAll returns every stored expense in insertion order
	FindAll(ctx context.Context) ([]*entity.Expense, error)

	// SaveAll replaces the stored list with expenses
	SaveAll(ctx context.Context, expenses []*entity.Expense) error
}
