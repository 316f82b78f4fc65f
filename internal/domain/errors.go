package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Account errors
	ErrInvalidAccountType = errors.New("account type must be ELECTRICITY or GAS")
	ErrInvalidFilterTag   = errors.New("filter must be ALL, ELECTRICITY or GAS")

	// Store errors
	ErrStoreUnavailable = errors.New("account store unavailable")

	// Payment errors
	ErrValidationFailed = errors.New("payment validation failed")
)
