package storage

import (
	"fmt"

	"github.com/npillmayer/spanref/span"
)

type cell struct {
	state WordState
	value int64
}

// MemStore is a growable in-memory store of int64 words.
//
// Allocation scans for the lowest run of free cells that fits the request
// (first fit) and extends the region when no run does. The store keeps an
// allocation count per cell only implicitly through word states, which is
// all the interval-reference core requires: freed cells become available
// again and double frees are detected per cell.
//
// MemStore is not safe for concurrent use, matching the single-threaded
// contract of the handle layer.
type MemStore struct {
	cells []cell
	inUse int64
}

var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Len returns the current extent of the store in cells, including free
// cells below the high-water mark.
func (ms *MemStore) Len() int64 {
	return int64(len(ms.cells))
}

// MemoryInUse returns the number of currently allocated cells.
func (ms *MemStore) MemoryInUse() int64 {
	return ms.inUse
}

// StateAt returns the word state of the cell at pos, or Free for positions
// beyond the current extent.
func (ms *MemStore) StateAt(pos int64) WordState {
	if pos < 0 || pos >= ms.Len() {
		return Free
	}
	return ms.cells[pos].state
}

// Allocate hands out a span of exactly length free cells.
//
// A zero-length request returns a degenerate span and leaves the store
// untouched.
func (ms *MemStore) Allocate(length int64) (span.Span, error) {
	if length < 0 {
		return span.Span{}, fmt.Errorf("%w: negative allocation length %d", ErrIllegalArguments, length)
	}
	if length == 0 {
		return span.Span{}, nil
	}
	offset, found := ms.findFreeRun(length)
	if !found {
		offset = ms.grow(length)
	}
	for pos := offset; pos < offset+length; pos++ {
		ms.cells[pos] = cell{state: Uninitialized}
	}
	ms.inUse += length
	return span.Span{Offset: offset, Length: length}, nil
}

// findFreeRun locates the lowest run of at least length free cells.
func (ms *MemStore) findFreeRun(length int64) (int64, bool) {
	var run int64
	for pos := int64(0); pos < ms.Len(); pos++ {
		if ms.cells[pos].state != Free {
			run = 0
			continue
		}
		run++
		if run == length {
			return pos - length + 1, true
		}
	}
	return 0, false
}

// grow extends the store by length cells, reusing a trailing free run.
func (ms *MemStore) grow(length int64) int64 {
	offset := ms.Len()
	for offset > 0 && ms.cells[offset-1].state == Free {
		offset--
	}
	need := offset + length - ms.Len()
	ms.cells = append(ms.cells, make([]cell, need)...)
	return offset
}

// Free marks the cells of s free again.
//
// Degenerate spans are a no-op. The whole span is validated before any
// cell changes state, so a failed free leaves the store unchanged.
func (ms *MemStore) Free(s span.Span) error {
	if s.Length == 0 {
		return nil
	}
	if s.Offset < 0 || s.Length < 0 || s.End() > ms.Len() {
		return fmt.Errorf("%w: free of [%d,%d)", ErrOutOfRange, s.Offset, s.End())
	}
	for pos := s.Offset; pos < s.End(); pos++ {
		if ms.cells[pos].state == Free {
			return fmt.Errorf("%w: cell %d", ErrDoubleFree, pos)
		}
	}
	for pos := s.Offset; pos < s.End(); pos++ {
		ms.cells[pos] = cell{state: Free}
	}
	ms.inUse -= s.Length
	return nil
}

// Read returns the value of the cell at pos.
func (ms *MemStore) Read(pos int64) (int64, error) {
	if pos < 0 || pos >= ms.Len() {
		return 0, fmt.Errorf("%w: read at %d", ErrOutOfRange, pos)
	}
	switch ms.cells[pos].state {
	case Free:
		return 0, fmt.Errorf("%w: read at %d", ErrFreeAccess, pos)
	case Uninitialized:
		return 0, fmt.Errorf("%w: read at %d", ErrUninitialized, pos)
	}
	return ms.cells[pos].value, nil
}

// Write stores value into the cell at pos, making it readable.
func (ms *MemStore) Write(pos int64, value int64) error {
	if pos < 0 || pos >= ms.Len() {
		return fmt.Errorf("%w: write at %d", ErrOutOfRange, pos)
	}
	if ms.cells[pos].state == Free {
		return fmt.Errorf("%w: write at %d", ErrFreeAccess, pos)
	}
	ms.cells[pos] = cell{state: Readable, value: value}
	return nil
}
