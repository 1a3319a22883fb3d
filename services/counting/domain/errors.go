package domain

import "errors"

// Sentinel errors for the counting domain. Use errors.Is() to check these.
var (
	// ErrRunNotFound indicates no counting run exists for the location today.
	ErrRunNotFound = errors.New("counting run not found")

	// ErrEntryNotFound indicates a line index outside the run.
	ErrEntryNotFound = errors.New("run line not found")

	// ErrNegativeQuantity indicates a count entry that cannot be interpreted
	// as a quantity (NaN or infinite). Plain negative entries clamp to zero
	// instead of erroring.
	ErrNegativeQuantity = errors.New("quantity is not a countable number")
)
