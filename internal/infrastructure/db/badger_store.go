// Package db internal/infrastructure/db/badger_store.go
package db

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bharath-kadali/expenseTracker/internal/domain/apperrors"
	"github.com/dgraph-io/badger/v3"
)

// Keys of the persisted state
const (
	exchangeRatesKey     = "exchangeRates"
	expensesKey          = "expenses"
	preferredCurrencyKey = "preferredCurrency"
)

// OpenBadger opens a BadgerDB at dir. An empty dir opens an in-memory database.
func OpenBadger(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Disable Badger's default logger

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// getRaw reads the value stored at key. A missing key yields apperrors.ErrNotFound.
func getRaw(db *badger.DB, key string) ([]byte, error) {
	var data []byte

	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}

		data, err = item.ValueCopy(nil)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%s: %w", key, apperrors.ErrNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	return data, nil
}

func setRaw(db *badger.DB, key string, data []byte) error {
	err := db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})

	if err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}

	return nil
}

func getJSON(db *badger.DB, key string, v interface{}) error {
	data, err := getRaw(db, key)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}

	return nil
}

func setJSON(db *badger.DB, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	return setRaw(db, key, data)
}
