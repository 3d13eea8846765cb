package coverage

import "errors"

var (
	// ErrInvariantViolation signals a corrupted tree: total-adjust drift
	// across an include, an unpaired coverage transition, a partition of
	// a tree with non-zero total, or an operation handed an interior node
	// where a root is required. These are programmer errors; they abort
	// the operation and the tree is not expected to self-heal.
	ErrInvariantViolation = errors.New("coverage: invariant violation")
)
