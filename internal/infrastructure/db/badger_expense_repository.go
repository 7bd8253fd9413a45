package db

import (
	"context"
	"errors"

	"github.com/bharath-kadali/expenseTracker/internal/domain/apperrors"
	"github.com/bharath-kadali/expenseTracker/internal/domain/entity"
	"github.com/dgraph-io/badger/v3"
)

// BadgerExpenseRepository implements the expense repository interface using BadgerDB
type BadgerExpenseRepository struct {
	db *badger.DB
}

// NewBadgerExpenseRepository creates a new BadgerDB expense repository
func NewBadgerExpenseRepository(db *badger.DB) *BadgerExpenseRepository {
	return &BadgerExpenseRepository{db: db}
}

// FindAll returns the stored expenses in insertion order. An empty store yields an empty list.
func (r *BadgerExpenseRepository) FindAll(ctx context.Context) ([]*entity.Expense, error) {
	var expenses []*entity.Expense

	err := getJSON(r.db, expensesKey, &expenses)
	if errors.Is(err, apperrors.ErrNotFound) {
		return []*entity.Expense{}, nil
	}

	if err != nil {
		return nil, err
	}

	if expenses == nil {
		expenses = []*entity.Expense{}
	}

	return expenses, nil
}

// SaveAll replaces the stored expense list
func (r *BadgerExpenseRepository) SaveAll(ctx context.Context, expenses []*entity.Expense) error {
	if expenses == nil {
		expenses = []*entity.Expense{}
	}
	return setJSON(r.db, expensesKey, expenses)
}
