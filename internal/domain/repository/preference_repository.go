package repository

import "context"

// PreferenceRepository stores the preferred display currency
type PreferenceRepository interface {
	// PreferredCurrency returns the stored code, or apperrors.ErrNotFound if unset
	PreferredCurrency(ctx context.Context) (string, error)

	// SetPreferredCurrency persists the code
	SetPreferredCurrency(ctx context.Context, currency string) error
}
