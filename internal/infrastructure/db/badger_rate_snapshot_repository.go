package db

import (
	"context"

	"github.com/bharath-kadali/expenseTracker/internal/domain/entity"
	"github.com/dgraph-io/badger/v3"
)

// BadgerRateSnapshotRepository persists the single exchange rate snapshot
type BadgerRateSnapshotRepository struct {
	db *badger.DB
}

// NewBadgerRateSnapshotRepository creates a new rate snapshot repository
func NewBadgerRateSnapshotRepository(db *badger.DB) *BadgerRateSnapshotRepository {
	return &BadgerRateSnapshotRepository{db: db}
}

// Load returns the stored snapshot or an error wrapping apperrors.ErrNotFound
func (r *BadgerRateSnapshotRepository) Load(ctx context.Context) (*entity.RateSnapshot, error) {
	var snapshot entity.RateSnapshot
	if err := getJSON(r.db, exchangeRatesKey, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// Save replaces the stored snapshot
func (r *BadgerRateSnapshotRepository) Save(ctx context.Context, snapshot *entity.RateSnapshot) error {
	return setJSON(r.db, exchangeRatesKey, snapshot)
}
