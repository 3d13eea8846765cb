package spanref

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"fmt"

	"github.com/npillmayer/spanref/coverage"
	"github.com/npillmayer/spanref/span"
	"github.com/npillmayer/spanref/storage"
)

// Ref is a reference to a sub-range of a contiguous memory region.
//
// A reference pins the cells of its range in the backing store: the store
// reclaims a cell exactly when no live reference covers it any more.
// References over the same region may overlap freely; slicing produces
// narrower references sharing the parent's cells.
//
// A Ref starts live and becomes disposed through Release. Reading and
// writing are valid only while live. Release is idempotent.
//
// Refs are not safe for concurrent use.
type Ref struct {
	store    storage.Store
	region   span.Span
	locator  *coverage.Node // right-endpoint node; nil for degenerate refs
	disposed bool
}

// New allocates length cells from the store and returns a reference
// covering them.
//
// A zero length yields a degenerate reference without touching the
// region's coverage tree.
func New(length int64, store storage.Store) (*Ref, error) {
	if length < 0 || store == nil {
		return nil, ErrIllegalArguments
	}
	region, err := store.Allocate(length)
	if err != nil {
		return nil, err
	}
	ref := &Ref{store: store, region: region}
	if length == 0 {
		return ref, nil
	}
	root, _, err := coverage.Include(nil, region.Offset, +1, +1)
	if err != nil {
		return nil, err
	}
	_, right, err := coverage.Include(root, region.End(), -1, +1)
	if err != nil {
		return nil, err
	}
	ref.locator = right
	T().Debugf("new reference over [%d,%d)", region.Offset, region.End())
	return ref, nil
}

// Span returns the absolute region the reference covers.
func (ref *Ref) Span() span.Span {
	return ref.region
}

// Len returns the reference length in cells.
func (ref *Ref) Len() int64 {
	return ref.region.Length
}

// Disposed reports whether the reference has been released.
func (ref *Ref) Disposed() bool {
	return ref.disposed
}

// Slice produces a child reference for sub-range sub of ref, given in
// reference-local coordinates.
//
// The child covers [ref.offset+sub.offset, ref.offset+sub.end) and keeps
// those cells alive independently of ref. Zero-length sub-ranges yield a
// degenerate reference with no coverage of its own.
func (ref *Ref) Slice(sub span.Span) (*Ref, error) {
	if ref.disposed {
		return nil, ErrUseAfterRelease
	}
	if sub.Offset < 0 || sub.Length < 0 || sub.End() > ref.region.Length {
		return nil, ErrOutOfRange
	}
	child := &Ref{
		store:  ref.store,
		region: span.Span{Offset: ref.region.Offset + sub.Offset, Length: sub.Length},
	}
	if sub.Length == 0 {
		return child, nil
	}
	root := coverage.RootOf(ref.locator)
	root, _, err := coverage.Include(root, child.region.Offset, +1, +1)
	if err != nil {
		return nil, err
	}
	_, right, err := coverage.Include(root, child.region.End(), -1, +1)
	if err != nil {
		return nil, err
	}
	child.locator = right
	T().Debugf("sliced reference [%d,%d) from [%d,%d)",
		child.region.Offset, child.region.End(), ref.region.Offset, ref.region.End())
	return child, nil
}

// Read returns the value of cell i of the reference.
func (ref *Ref) Read(i int64) (int64, error) {
	if ref.disposed {
		return 0, ErrUseAfterRelease
	}
	if i < 0 || i >= ref.region.Length {
		return 0, ErrOutOfRange
	}
	return ref.store.Read(ref.region.Offset + i)
}

// Write stores value into cell i of the reference.
func (ref *Ref) Write(i int64, value int64) error {
	if ref.disposed {
		return ErrUseAfterRelease
	}
	if i < 0 || i >= ref.region.Length {
		return ErrOutOfRange
	}
	return ref.store.Write(ref.region.Offset+i, value)
}

// Release disposes the reference and returns every cell of its range that
// no surviving reference covers to the backing store.
//
// Release is idempotent; repeated calls return nil without action. Errors
// indicate a corrupted coverage tree or store and are fatal to the
// region, not recoverable misuse.
func (ref *Ref) Release() error {
	if ref.disposed {
		return nil
	}
	ref.disposed = true
	if ref.locator == nil {
		return nil
	}
	root := coverage.RootOf(ref.locator)
	if total := coverage.Total(root); total != 0 {
		return fmt.Errorf("%w: release on tree with total adjust %d", coverage.ErrInvariantViolation, total)
	}
	enclosing, ok := coverage.Enclosing(root)
	assert(ok, "release located an empty coverage tree")

	// Reverse this reference's adjustments first, pins untouched, so both
	// endpoint nodes are guaranteed present while holes are discovered.
	left, right := ref.region.Offset, ref.region.End()
	root, _, err := coverage.Include(root, right, +1, 0)
	if err != nil {
		return err
	}
	root, _, err = coverage.Include(root, left, -1, 0)
	if err != nil {
		return err
	}
	holes, err := coverage.FindHolesIn(enclosing, root)
	if err != nil {
		return err
	}
	// Hole discovery is done; the endpoint pins may go now.
	root, _, err = coverage.Include(root, right, 0, -1)
	if err != nil {
		return err
	}
	root, _, err = coverage.Include(root, left, 0, -1)
	if err != nil {
		return err
	}
	if err := coverage.PartitionAroundHoles(root); err != nil {
		return err
	}
	for _, hole := range holes {
		if err := ref.store.Free(hole); err != nil {
			return err
		}
	}
	T().Debugf("released reference [%d,%d), %d hole(s) freed", left, right, len(holes))
	return nil
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
