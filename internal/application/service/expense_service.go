package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bharath-kadali/expenseTracker/internal/domain/apperrors"
	"github.com/bharath-kadali/expenseTracker/internal/domain/entity"
	"github.com/bharath-kadali/expenseTracker/internal/domain/repository"
	"github.com/bharath-kadali/expenseTracker/internal/infrastructure/logger"
	"github.com/bharath-kadali/expenseTracker/internal/infrastructure/middleware"
	"github.com/google/uuid"
)

// DefaultPreferredCurrency is used when no preference has been stored
const DefaultPreferredCurrency = "USD"

// Converter converts amounts between currencies
type Converter interface {
	Convert(ctx context.Context, amount float64, from, to string) entity.Conversion
}

// NewExpense holds the client-supplied fields of a new expense
type NewExpense struct {
	Amount   float64
	Currency string
	Category string
	Date     string
}

// ExpenseService handles business logic for expenses and the preferred currency
type ExpenseService struct {
	expenses        repository.ExpenseRepository
	preferences     repository.PreferenceRepository
	converter       Converter
	defaultCurrency string
	logger          logger.Logger

	// guards read-modify-write of the stored expense list
	mu sync.Mutex
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenses repository.ExpenseRepository, preferences repository.PreferenceRepository, converter Converter, defaultCurrency string, log logger.Logger) *ExpenseService {
	if defaultCurrency == "" {
		defaultCurrency = DefaultPreferredCurrency
	}

	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ExpenseService{
		expenses:        expenses,
		preferences:     preferences,
		converter:       converter,
		defaultCurrency: defaultCurrency,
		logger:          log,
	}
}

// AddExpense validates, converts and stores a new expense
func (s *ExpenseService) AddExpense(ctx context.Context, in NewExpense) (*entity.Expense, error) {
	expense := &entity.Expense{
		ID:       uuid.New().String(),
		Amount:   in.Amount,
		Currency: normalizeCurrency(in.Currency),
		Category: strings.TrimSpace(in.Category),
		Date:     in.Date,
	}

	if err := expense.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	preferred, err := s.GetPreferredCurrency(ctx)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenses.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	s.recompute(ctx, expense, preferred)
	expenses = append(expenses, expense)

	if err := s.expenses.SaveAll(ctx, expenses); err != nil {
		return nil, fmt.Errorf("failed to store expense: %w", err)
	}

	s.logger.Info("Expense added", map[string]interface{}{
		"request_id":       middleware.GetRequestID(ctx),
		"id":               expense.ID,
		"amount":           expense.Amount,
		"currency":         expense.Currency,
		"converted_amount": expense.ConvertedAmount,
		"preferred":        preferred,
	})

	return expense, nil
}

// EditExpense applies update to the expense with the given id and recomputes its converted amount
func (s *ExpenseService) EditExpense(ctx context.Context, id string, update entity.ExpenseUpdate) (*entity.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expenses, err := s.expenses.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	index := indexOf(expenses, id)
	if index == -1 {
		return nil, fmt.Errorf("expense %s: %w", id, apperrors.ErrNotFound)
	}

	edited := *expenses[index]
	update.Apply(&edited)
	edited.Currency = normalizeCurrency(edited.Currency)
	edited.Category = strings.TrimSpace(edited.Category)

	if err := edited.Validate(); err != nil {
		return nil, err
	}

	preferred, err := s.GetPreferredCurrency(ctx)
	if err != nil {
		return nil, err
	}

	s.recompute(ctx, &edited, preferred)
	expenses[index] = &edited

	if err := s.expenses.SaveAll(ctx, expenses); err != nil {
		return nil, fmt.Errorf("failed to store expense: %w", err)
	}

	s.logger.Info("Expense edited", map[string]interface{}{
		"request_id": middleware.GetRequestID(ctx),
		"id":         id,
	})

	return &edited, nil
}

// DeleteExpense removes the expense with the given id
func (s *ExpenseService) DeleteExpense(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expenses, err := s.expenses.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load expenses: %w", err)
	}

	index := indexOf(expenses, id)
	if index == -1 {
		return fmt.Errorf("expense %s: %w", id, apperrors.ErrNotFound)
	}

	expenses = append(expenses[:index], expenses[index+1:]...)

	if err := s.expenses.SaveAll(ctx, expenses); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	s.logger.Info("Expense deleted", map[string]interface{}{
		"request_id": middleware.GetRequestID(ctx),
		"id":         id,
	})

	return nil
}

// GetExpense retrieves an expense by ID
func (s *ExpenseService) GetExpense(ctx context.Context, id string) (*entity.Expense, error) {
	expenses, err := s.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}

	index := indexOf(expenses, id)
	if index == -1 {
		return nil, fmt.Errorf("expense %s: %w", id, apperrors.ErrNotFound)
	}

	return expenses[index], nil
}

// ListExpenses returns all expenses in insertion order
func (s *ExpenseService) ListExpenses(ctx context.Context) ([]*entity.Expense, error) {
	expenses, err := s.expenses.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	return expenses, nil
}

// GetPreferredCurrency returns the stored preference or the default currency
func (s *ExpenseService) GetPreferredCurrency(ctx context.Context) (string, error) {
	currency, err := s.preferences.PreferredCurrency(ctx)
	if errors.Is(err, apperrors.ErrNotFound) || (err == nil && currency == "") {
		return s.defaultCurrency, nil
	}

	if err != nil {
		return "", fmt.Errorf("failed to load preferred currency: %w", err)
	}

	return currency, nil
}

// SetPreferredCurrency recomputes every converted amount against currency and
// then stores the preference. A failed recompute leaves the old preference in place.
func (s *ExpenseService) SetPreferredCurrency(ctx context.Context, currency string) ([]*entity.Expense, error) {
	currency = normalizeCurrency(currency)
	if currency == "" {
		return nil, fmt.Errorf("%w: currency is required", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expenses, err := s.recomputeAll(ctx, currency)
	if err != nil {
		return nil, err
	}

	if err := s.preferences.SetPreferredCurrency(ctx, currency); err != nil {
		return nil, fmt.Errorf("failed to store preferred currency: %w", err)
	}

	s.logger.Info("Preferred currency changed", map[string]interface{}{
		"request_id": middleware.GetRequestID(ctx),
		"currency":   currency,
	})

	return expenses, nil
}

// RecomputeAll recomputes the converted amount of every expense against the
// preferred currency and stores the result
func (s *ExpenseService) RecomputeAll(ctx context.Context) ([]*entity.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	preferred, err := s.GetPreferredCurrency(ctx)
	if err != nil {
		return nil, err
	}

	return s.recomputeAll(ctx, preferred)
}

// recomputeAll requires s.mu to be held
func (s *ExpenseService) recomputeAll(ctx context.Context, preferred string) ([]*entity.Expense, error) {
	expenses, err := s.expenses.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	for _, expense := range expenses {
		s.recompute(ctx, expense, preferred)
	}

	if err := s.expenses.SaveAll(ctx, expenses); err != nil {
		return nil, fmt.Errorf("failed to store expenses: %w", err)
	}

	s.logger.Debug("Converted amounts recomputed", map[string]interface{}{
		"request_id": middleware.GetRequestID(ctx),
		"count":      len(expenses),
		"currency":   preferred,
	})

	return expenses, nil
}

func (s *ExpenseService) recompute(ctx context.Context, expense *entity.Expense, preferred string) {
	expense.ConvertedAmount = s.converter.Convert(ctx, expense.Amount, expense.Currency, preferred).Value
}

func indexOf(expenses []*entity.Expense, id string) int {
	for i, e := range expenses {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func normalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
