// Package apperrors defines the sentinel errors shared across layers.
package apperrors

import "errors"

// ErrNotFound indicates that a requested expense could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrRatesUnavailable indicates that no rate snapshot is cached and a refresh failed.
var ErrRatesUnavailable = errors.New("exchange rates unavailable")
