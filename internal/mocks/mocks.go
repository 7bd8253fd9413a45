// internal/mocks/mocks.go
package mocks

import (
	"context"

	"github.com/bharath-kadali/expenseTracker/internal/domain/entity"
	"github.com/bharath-kadali/expenseTracker/internal/infrastructure/logger"
	"github.com/stretchr/testify/mock"
)

// MockExpenseRepository mocks the ExpenseRepository interface
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindAll(ctx context.Context) ([]*entity.Expense, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Expense), args.Error(1)
}

func (m *MockExpenseRepository) SaveAll(ctx context.Context, expenses []*entity.Expense) error {
	args := m.Called(ctx, expenses)
	return args.Error(0)
}

// MockRateSnapshotRepository mocks the RateSnapshotRepository interface
type MockRateSnapshotRepository struct {
	mock.Mock
}

func (m *MockRateSnapshotRepository) Load(ctx context.Context) (*entity.RateSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RateSnapshot), args.Error(1)
}

func (m *MockRateSnapshotRepository) Save(ctx context.Context, snapshot *entity.RateSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

// MockPreferenceRepository mocks the PreferenceRepository interface
type MockPreferenceRepository struct {
	mock.Mock
}

func (m *MockPreferenceRepository) PreferredCurrency(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockPreferenceRepository) SetPreferredCurrency(ctx context.Context, currency string) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

// MockRateProvider mocks the exchange rate provider interface
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) FetchLatestRates(ctx context.Context) (map[string]float64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}

// MockRateSource mocks anything that serves the current rates
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) GetRates(ctx context.Context) (map[string]float64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}

// MockLogger mocks the logger interface
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Info(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Warn(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Error(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Fatal(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) WithField(key string, value interface{}) logger.Logger {
	m.Called(key, value)
	return m
}

func (m *MockLogger) WithFields(fields map[string]interface{}) logger.Logger {
	m.Called(fields)
	return m
}
