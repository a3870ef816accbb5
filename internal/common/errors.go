// Package common defines the sentinel errors shared by repositories,
// services and transports. Callers should use errors.Is to match these
// values; services wrap them with call-site context.
package common

import "errors"

var (
	// Input errors.
	ErrValidation       = errors.New("validation error")
	ErrInvalidTimeRange = errors.New("end time must be after start time")

	// Lookup errors.
	ErrNotFound = errors.New("not found")

	// State-conflict errors.
	ErrDuplicateEntry    = errors.New("diary entry already exists for this worker and date")
	ErrAlreadyClockedOut = errors.New("worker already clocked out for this date")
	ErrAlreadyFinalized  = errors.New("project is already finalized")
	ErrProjectFinalized  = errors.New("project is finalized")

	// Infrastructure errors.
	ErrStoreUnavailable = errors.New("store unavailable")
)
