package domain

import "errors"

// Sentinel errors for the planning domain. Use errors.Is() to check these.
var (
	// ErrBOMNotFound indicates no recipe exists for the requested product key.
	ErrBOMNotFound = errors.New("bom not found")

	// ErrNoQuantityColumn indicates a sales import whose quantity column could
	// not be designated or guessed.
	ErrNoQuantityColumn = errors.New("no quantity column in sales file")

	// ErrEmptyImport indicates a sales file with no data rows.
	ErrEmptyImport = errors.New("sales file has no rows")
)
