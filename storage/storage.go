package storage

import "github.com/npillmayer/spanref/span"

// WordState is the lifecycle state of a single cell.
type WordState uint8

const (
	// Free marks a cell not backing any allocation.
	Free WordState = iota
	// Uninitialized marks an allocated cell that has not been written.
	Uninitialized
	// Readable marks an allocated cell holding a written value.
	Readable
)

func (ws WordState) String() string {
	switch ws {
	case Free:
		return "free"
	case Uninitialized:
		return "uninitialized"
	case Readable:
		return "readable"
	}
	return "invalid"
}

// Store is the contract interval references place on a backing store.
//
// Allocate returns a span of exactly length previously-free cells;
// zero-length allocations return a degenerate span without changing store
// state. Free marks the cells of a span free again and must detect frees
// of already-free or out-of-range cells. Freed cells may be handed out by
// later allocations.
//
// Read and Write address cells by absolute position. Reading a Free or
// Uninitialized cell fails; writing transitions Uninitialized cells to
// Readable; writing a Free cell fails.
type Store interface {
	Allocate(length int64) (span.Span, error)
	Free(s span.Span) error
	MemoryInUse() int64
	Read(pos int64) (int64, error)
	Write(pos int64, value int64) error
}
