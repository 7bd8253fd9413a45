// Package repository internal/domain/repository/rate_snapshot_repository.go
package repository

import (
	"context"

	"github.com/bharath-kadali/expenseTracker/internal/domain/entity"
)

// RateSnapshotRepository defines the interface for the persisted rate snapshot
type RateSnapshotRepository interface {
	// Load returns the stored snapshot, or apperrors.ErrNotFound if there is none
	Load(ctx context.Context) (*entity.RateSnapshot, error)

	// Save replaces the stored snapshot
	Save(ctx context.Context, snapshot *entity.RateSnapshot) error
}
