package db

import (
	"context"

	"github.com/dgraph-io/badger/v3"
)

// BadgerPreferenceRepository stores the preferred currency as a bare code
type BadgerPreferenceRepository struct {
	db *badger.DB
}

// NewBadgerPreferenceRepository creates a new preference repository
func NewBadgerPreferenceRepository(db *badger.DB) *BadgerPreferenceRepository {
	return &BadgerPreferenceRepository{db: db}
}

// PreferredCurrency returns the stored code or an error wrapping apperrors.ErrNotFound
func (r *BadgerPreferenceRepository) PreferredCurrency(ctx context.Context) (string, error) {
	data, err := getRaw(r.db, preferredCurrencyKey)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SetPreferredCurrency persists the code
func (r *BadgerPreferenceRepository) SetPreferredCurrency(ctx context.Context, currency string) error {
	return setRaw(r.db, preferredCurrencyKey, []byte(currency))
}
