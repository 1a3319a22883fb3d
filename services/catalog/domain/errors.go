package domain

import "errors"

// Sentinel errors for the catalog domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist in the resolved catalog.
	ErrItemNotFound = errors.New("item not found")

	// ErrDuplicateItem indicates an item with the same id already exists.
	ErrDuplicateItem = errors.New("item already exists")

	// ErrInvalidItemName indicates the item name violates domain constraints.
	ErrInvalidItemName = errors.New("invalid item name")

	// ErrLocationNotFound indicates an unknown location key.
	ErrLocationNotFound = errors.New("location not found")

	// ErrUnknownUnit indicates a unit the item does not declare.
	ErrUnknownUnit = errors.New("unknown unit for item")
)
