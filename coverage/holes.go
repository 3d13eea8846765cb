package coverage

import (
	"fmt"

	"github.com/npillmayer/spanref/span"
)

// transition marks a node whose adjust moves the depth across zero in key
// order. entering is true when depth drops into a hole at the node's
// offset and false when it climbs out of one.
type transition struct {
	node     *Node
	entering bool
}

// walkTransitions traverses the tree in key order with a running depth,
// calling visit for every zero crossing. entry is the depth at the left
// edge of n's subtree; the return value is the depth at its right edge.
//
// A subtree is pruned when the entry depth is positive and the entry depth
// plus the subtree's relative minimum stays strictly positive, which
// guarantees no crossing inside.
// The visitor must not mutate the tree; callers collect first and mutate
// after the walk completes.
func walkTransitions(n *Node, entry int64, visit func(*Node, bool)) int64 {
	if n == nil {
		return entry
	}
	if entry > 0 && entry+n.subMin > 0 {
		return entry + n.subTotal
	}
	depthBefore := walkTransitions(n.left, entry, visit)
	depthAfter := depthBefore + n.adjust
	wasHole := depthBefore <= 0
	nowHole := depthAfter <= 0
	if wasHole != nowHole {
		visit(n, nowHole)
	}
	return walkTransitions(n.right, depthAfter, visit)
}

// coveredSegments pairs the transition stream into the ordered list of
// maximal covered intervals of the tree.
//
// Outside the tree the depth is zero, so the stream must alternate
// leave-hole/enter-hole and end uncovered; any other shape reports
// ErrInvariantViolation.
func coveredSegments(root *Node) ([]span.Span, error) {
	var segments []span.Span
	var open int64
	inCover := false
	var fail error
	walkTransitions(root, 0, func(n *Node, entering bool) {
		if fail != nil {
			return
		}
		if entering {
			if !inCover {
				fail = fmt.Errorf("%w: consecutive enter-hole transitions at offset %d", ErrInvariantViolation, n.offset)
				return
			}
			segments = append(segments, span.Span{Offset: open, Length: n.offset - open})
			inCover = false
			return
		}
		if inCover {
			fail = fmt.Errorf("%w: consecutive leave-hole transitions at offset %d", ErrInvariantViolation, n.offset)
			return
		}
		open = n.offset
		inCover = true
	})
	if fail != nil {
		return nil, fail
	}
	if inCover {
		return nil, fmt.Errorf("%w: coverage opened at offset %d never closes", ErrInvariantViolation, open)
	}
	return segments, nil
}

// FindHolesIn returns every maximal sub-interval of query on which the
// nesting depth is zero, in ascending offset order. Returned spans are
// pairwise disjoint, non-degenerate and contained in query; their
// complement within query is exactly the covered part of query.
func FindHolesIn(query span.Span, root *Node) ([]span.Span, error) {
	segments, err := coveredSegments(root)
	if err != nil {
		return nil, err
	}
	var holes []span.Span
	cursor := query.Offset
	end := query.End()
	for _, seg := range segments {
		if seg.End() <= cursor {
			continue
		}
		if seg.Offset >= end {
			break
		}
		if seg.Offset > cursor {
			holes = append(holes, span.Span{Offset: cursor, Length: seg.Offset - cursor})
		}
		if seg.End() > cursor {
			cursor = seg.End()
		}
	}
	if cursor < end {
		holes = append(holes, span.Span{Offset: cursor, Length: end - cursor})
	}
	return holes, nil
}

// PartitionAroundHoles severs the tree at every hole boundary so that no
// remaining subtree spans a position of zero depth together with a
// position of positive depth.
//
// Transitions are collected before any structural change; each is then
// executed as one cut beside its node: to the right when depth drops
// into a hole there, to the left when it climbs out. Afterwards the tree
// has decomposed into independent subtrees each confined to one covered
// segment (or to one hole, for pinned zero-adjust nodes stranded inside).
func PartitionAroundHoles(root *Node) error {
	if root == nil {
		return nil
	}
	if root.parent != nil {
		return fmt.Errorf("%w: partition requires a tree root, node %d has a parent", ErrInvariantViolation, root.offset)
	}
	if root.subTotal != 0 {
		return fmt.Errorf("%w: partition of a tree with total adjust %d", ErrInvariantViolation, root.subTotal)
	}
	var plan []transition
	walkTransitions(root, 0, func(n *Node, entering bool) {
		plan = append(plan, transition{node: n, entering: entering})
	})
	for _, t := range plan {
		cutBeside(t.node, t.entering)
	}
	return nil
}

// cutBeside severs the tree containing n into two independent trees at
// the seam right of n (cutRight) or left of n (!cutRight).
//
// The walk climbs from n towards the root carrying one detached subtree
// as a pending insert for the far side of the seam. Whenever the climb
// crosses the seam, i.e. the parent lies on the side the pending subtree
// belongs to (the current node is its child on the opposite side), parent
// and child are severed, the
// pending subtree takes the vacated slot, and the roles of the two pieces
// swap. Aggregates are refreshed on every node the climb passes.
func cutBeside(n *Node, cutRight bool) {
	var orphan *Node
	if cutRight {
		orphan = n.right
		n.right = nil
	} else {
		orphan = n.left
		n.left = nil
	}
	if orphan != nil {
		orphan.parent = nil
	}
	n.recompute()

	cur := n
	pendingRight := cutRight // side of cur's keys the orphan belongs to
	for {
		parent := cur.parent
		if parent == nil {
			return
		}
		curIsLeft := parent.left == cur
		assert(curIsLeft || parent.right == cur, "cutBeside found inconsistent parent link")
		crosses := (pendingRight && curIsLeft) || (!pendingRight && !curIsLeft)
		if crosses {
			if curIsLeft {
				parent.left = orphan
			} else {
				parent.right = orphan
			}
			if orphan != nil {
				orphan.parent = parent
			}
			cur.parent = nil
			orphan = cur
			pendingRight = !pendingRight
		}
		cur = parent
		cur.recompute()
	}
}
