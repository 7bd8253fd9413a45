// internal/infrastructure/db/badger_repository_test.go
package db

import (
	"context"
	"testing"
	"time"

	"github.com/bharath-kadali/expenseTracker/internal/domain/apperrors"
	"github.com/bharath-kadali/expenseTracker/internal/domain/entity"
	"github.com/dgraph-io/badger/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	badgerDB, err := OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { badgerDB.Close() })
	return badgerDB
}

func TestBadgerExpenseRepository(t *testing.T) {
	badgerDB := openTestDB(t)
	repo := NewBadgerExpenseRepository(badgerDB)
	ctx := context.Background()

	t.Run("Empty store", func(t *testing.T) {
		expenses, err := repo.FindAll(ctx)
		assert.NoError(t, err)
		assert.NotNil(t, expenses)
		assert.Empty(t, expenses)
	})

	t.Run("Order is preserved", func(t *testing.T) {
		stored := []*entity.Expense{
			{ID: "b", Amount: 20, Currency: "EUR", Category: "Food", Date: "2024-03-02", ConvertedAmount: 21.5},
			{ID: "a", Amount: 10, Currency: "USD", Category: "Rent", Date: "2024-03-01", ConvertedAmount: 10},
		}
		require.NoError(t, repo.SaveAll(ctx, stored))

		expenses, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, expenses, 2)
		assert.Equal(t, "b", expenses[0].ID)
		assert.Equal(t, "a", expenses[1].ID)
		assert.Equal(t, 21.5, expenses[0].ConvertedAmount)
	})

	t.Run("Persisted layout", func(t *testing.T) {
		data, err := getRaw(badgerDB, "expenses")
		require.NoError(t, err)
		assert.Contains(t, string(data), `"convertedAmount":21.5`)
		assert.Contains(t, string(data), `"category":"Food"`)
	})

	t.Run("Saving nil clears the list", func(t *testing.T) {
		require.NoError(t, repo.SaveAll(ctx, nil))
		expenses, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, expenses)
	})
}

func TestBadgerRateSnapshotRepository(t *testing.T) {
	badgerDB := openTestDB(t)
	repo := NewBadgerRateSnapshotRepository(badgerDB)
	ctx := context.Background()

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	fetchedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	snapshot := entity.NewRateSnapshot(map[string]float64{"USD": 1, "EUR": 0.9}, fetchedAt)
	require.NoError(t, repo.Save(ctx, snapshot))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot.Rates, loaded.Rates)
	assert.Equal(t, fetchedAt.UnixMilli(), loaded.Timestamp)

	data, err := getRaw(badgerDB, "exchangeRates")
	require.NoError(t, err)
	assert.JSONEq(t, `{"rates":{"USD":1,"EUR":0.9},"timestamp":1714564800000}`, string(data))
}

func TestBadgerPreferenceRepository(t *testing.T) {
	badgerDB := openTestDB(t)
	repo := NewBadgerPreferenceRepository(badgerDB)
	ctx := context.Background()

	_, err := repo.PreferredCurrency(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, repo.SetPreferredCurrency(ctx, "GBP"))
	currency, err := repo.PreferredCurrency(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "GBP", currency)

	// Stored as a bare code, not JSON
	data, err := getRaw(badgerDB, "preferredCurrency")
	require.NoError(t, err)
	assert.Equal(t, "GBP", string(data))
}
