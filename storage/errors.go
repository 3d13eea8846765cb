// Package storage provides the backing-store contract behind interval
// references and a growable in-memory implementation of it for tests and
// examples.
package storage

import "errors"

// Allocation errors
var (
	// ErrOutOfRange indicates that an interval reaches beyond the store.
	ErrOutOfRange = errors.New("storage: interval out of range")

	// ErrDoubleFree indicates a free of cells that are already free.
	ErrDoubleFree = errors.New("storage: double free")

	// ErrIllegalArguments indicates invalid allocation parameters.
	ErrIllegalArguments = errors.New("storage: illegal arguments")
)

// Word-state errors
var (
	// ErrFreeAccess indicates a read or write of a free cell.
	ErrFreeAccess = errors.New("storage: access of free cell")

	// ErrUninitialized indicates a read of an allocated but never
	// written cell.
	ErrUninitialized = errors.New("storage: read of uninitialized cell")
)
