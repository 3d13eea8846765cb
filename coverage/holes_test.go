package coverage

import (
	"errors"
	"testing"

	"github.com/npillmayer/spanref/span"
)

func TestFindHolesOnEmptyTree(t *testing.T) {
	holes, err := FindHolesIn(span.Span{Offset: 3, Length: 7}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(holes) != 1 || holes[0].Offset != 3 || holes[0].End() != 10 {
		t.Errorf("expected the whole query as hole, got %v", holes)
	}
}

func TestFindHolesFullyCovered(t *testing.T) {
	root, _ := coverSpan(t, nil, span.Span{Offset: 0, Length: 10})
	holes, err := FindHolesIn(span.Span{Offset: 0, Length: 10}, root)
	if err != nil {
		t.Fatal(err)
	}
	if len(holes) != 0 {
		t.Errorf("expected no holes in covered range, got %v", holes)
	}
}

func TestFindHolesBetweenSegments(t *testing.T) {
	root, _ := coverSpan(t, nil, span.Span{Offset: 0, Length: 3})
	root, _ = coverSpan(t, root, span.Span{Offset: 7, Length: 3})
	holes, err := FindHolesIn(span.Span{Offset: 0, Length: 10}, root)
	if err != nil {
		t.Fatal(err)
	}
	if len(holes) != 1 || holes[0].Offset != 3 || holes[0].End() != 7 {
		t.Errorf("expected hole [3,7), got %v", holes)
	}
}

func TestFindHolesIncludesQueryEdges(t *testing.T) {
	root, _ := coverSpan(t, nil, span.Span{Offset: 10, Length: 25})
	holes, err := FindHolesIn(span.Span{Offset: 0, Length: 50}, root)
	if err != nil {
		t.Fatal(err)
	}
	want := []span.Span{{Offset: 0, Length: 10}, {Offset: 35, Length: 15}}
	if len(holes) != 2 || holes[0] != want[0] || holes[1] != want[1] {
		t.Errorf("expected holes %v, got %v", want, holes)
	}
}

func TestFindHolesClampedToQuery(t *testing.T) {
	root, _ := coverSpan(t, nil, span.Span{Offset: 0, Length: 4})
	root, _ = coverSpan(t, root, span.Span{Offset: 8, Length: 4})
	holes, err := FindHolesIn(span.Span{Offset: 2, Length: 8}, root)
	if err != nil {
		t.Fatal(err)
	}
	if len(holes) != 1 || holes[0].Offset != 4 || holes[0].End() != 8 {
		t.Errorf("expected hole [4,8), got %v", holes)
	}
}

func TestFindHolesOnDegenerateQuery(t *testing.T) {
	root, _ := coverSpan(t, nil, span.Span{Offset: 0, Length: 4})
	holes, err := FindHolesIn(span.Span{Offset: 6, Length: 0}, root)
	if err != nil {
		t.Fatal(err)
	}
	if len(holes) != 0 {
		t.Errorf("degenerate query must have no holes, got %v", holes)
	}
}

func TestFindHolesRejectsUnbalancedCoverage(t *testing.T) {
	root, _, err := Include(nil, 5, +1, 0)
	if err != nil {
		t.Fatal(err)
	}
	_, err = FindHolesIn(span.Span{Offset: 0, Length: 10}, root)
	if !errors.Is(err, ErrInvariantViolation) {
		t.Errorf("expected ErrInvariantViolation for never-closing coverage, got %v", err)
	}
}

func TestPartitionSeparatesCoveredSegments(t *testing.T) {
	root, rightA := coverSpan(t, nil, span.Span{Offset: 0, Length: 3})
	root, rightB := coverSpan(t, root, span.Span{Offset: 7, Length: 3})
	if err := PartitionAroundHoles(root); err != nil {
		t.Fatal(err)
	}
	rootA := RootOf(rightA)
	rootB := RootOf(rightB)
	if rootA == rootB {
		t.Fatal("partition left both segments in one tree")
	}
	mustCheck(t, rootA)
	mustCheck(t, rootB)
	extA, _ := Enclosing(rootA)
	extB, _ := Enclosing(rootB)
	if extA.End() > 3 {
		t.Errorf("left segment tree reaches %d beyond its segment", extA.End())
	}
	if extB.Offset < 7 {
		t.Errorf("right segment tree reaches back to %d", extB.Offset)
	}
	if Total(rootA) != 0 || Total(rootB) != 0 {
		t.Errorf("partitioned segments must keep zero total, got %d and %d", Total(rootA), Total(rootB))
	}
}

func TestPartitionIsNoopOnSolidCoverage(t *testing.T) {
	root, right := coverSpan(t, nil, span.Span{Offset: 0, Length: 10})
	root, _ = coverSpan(t, root, span.Span{Offset: 2, Length: 5})
	if err := PartitionAroundHoles(root); err != nil {
		t.Fatal(err)
	}
	newRoot := RootOf(right)
	mustCheck(t, newRoot)
	ext, _ := Enclosing(newRoot)
	if ext.Offset != 0 || ext.End() != 10 {
		t.Errorf("solid coverage must stay one tree, enclosing now [%d,%d)", ext.Offset, ext.End())
	}
}

func TestPartitionRejectsNonZeroTotal(t *testing.T) {
	root, _, err := Include(nil, 5, +1, 0)
	if err != nil {
		t.Fatal(err)
	}
	err = PartitionAroundHoles(root)
	if !errors.Is(err, ErrInvariantViolation) {
		t.Errorf("expected ErrInvariantViolation for non-zero total, got %v", err)
	}
}

func TestPartitionAfterDepthFlipMatchesReleaseShape(t *testing.T) {
	// The release sequence of the handle layer: cover a base span plus
	// two disjoint slices, flip the base's adjustments, then partition.
	base := span.Span{Offset: 0, Length: 10}
	root, _ := coverSpan(t, nil, base)
	root, rightB := coverSpan(t, root, span.Span{Offset: 0, Length: 3})
	root, rightC := coverSpan(t, root, span.Span{Offset: 7, Length: 3})
	var err error
	root, _, err = Include(root, base.End(), +1, 0)
	if err != nil {
		t.Fatal(err)
	}
	root, _, err = Include(root, base.Offset, -1, 0)
	if err != nil {
		t.Fatal(err)
	}
	holes, err := FindHolesIn(span.Span{Offset: 0, Length: 10}, root)
	if err != nil {
		t.Fatal(err)
	}
	if len(holes) != 1 || holes[0].Offset != 3 || holes[0].End() != 7 {
		t.Fatalf("expected hole [3,7), got %v", holes)
	}
	root, _, err = Include(root, base.End(), 0, -1)
	if err != nil {
		t.Fatal(err)
	}
	root, _, err = Include(root, base.Offset, 0, -1)
	if err != nil {
		t.Fatal(err)
	}
	if err := PartitionAroundHoles(root); err != nil {
		t.Fatal(err)
	}
	if RootOf(rightB) == RootOf(rightC) {
		t.Error("slices across a hole must end up in distinct trees")
	}
	mustCheck(t, RootOf(rightB))
	mustCheck(t, RootOf(rightC))
}
