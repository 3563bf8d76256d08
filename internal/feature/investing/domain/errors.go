// Package domain defines domain-level errors for the investing feature.
package domain

import "errors"

// Error kinds raised by the distribution engine and the investing model.
// Callers wrap them with context and match them with errors.Is.
var (
	// ErrNotConfigured indicates that a distribution or timeseries was requested
	// before a ticker and/or an interval were set on the model.
	ErrNotConfigured = errors.New("investing model not configured")

	// ErrInvalidParameter indicates a zero or negative step, or an interval whose begin is after its end.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidInput indicates that a strategy was applied to an empty price sequence.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDataUnavailable indicates that no price data exists for the ticker or the requested range.
	ErrDataUnavailable = errors.New("price data unavailable")
)
