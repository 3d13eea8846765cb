package coverage

import (
	"fmt"

	"github.com/npillmayer/spanref/span"
)

// Include atomically applies a depth-adjustment delta and a pin-count
// delta at offset index in the tree rooted at root.
//
// A nil root denotes the empty tree. If no node exists at index, one is
// created with the supplied deltas; if one exists, the deltas are added,
// and a node whose adjust and pin count both reach zero is removed from
// the tree. Include returns the tree's new root, which may differ from
// root due to rebalancing, and the node created or modified (nil when the
// node was removed).
//
// The total adjust of the returned tree must differ from the pre-call
// total by exactly deltaAdjust; any drift reports ErrInvariantViolation.
func Include(root *Node, index int64, deltaAdjust, deltaPin int64) (*Node, *Node, error) {
	if root != nil && root.parent != nil {
		return nil, nil, fmt.Errorf("%w: include requires a tree root, node %d has a parent", ErrInvariantViolation, root.offset)
	}
	before := Total(root)
	newRoot, touched := include(root, index, deltaAdjust, deltaPin)
	if newRoot != nil {
		newRoot.parent = nil
	}
	if drift := Total(newRoot) - before; drift != deltaAdjust {
		return nil, nil, fmt.Errorf("%w: include at %d drifted total adjust by %d, expected %d",
			ErrInvariantViolation, index, drift, deltaAdjust)
	}
	if touched != nil && touched.refCount < 0 {
		return nil, nil, fmt.Errorf("%w: negative pin count at offset %d", ErrInvariantViolation, index)
	}
	return newRoot, touched, nil
}

// include descends along the key order, applies the deltas and unwinds
// with replacement sub-roots, rotating a returned child above the current
// node whenever the child's offset outranks it.
func include(n *Node, index, deltaAdjust, deltaPin int64) (subRoot *Node, touched *Node) {
	if n == nil {
		if deltaAdjust == 0 && deltaPin == 0 {
			// Nothing to record; creating an idle node would violate
			// the no-idle-nodes invariant.
			return nil, nil
		}
		created := &Node{offset: index, adjust: deltaAdjust, refCount: deltaPin}
		created.recompute()
		return created, created
	}
	if index == n.offset {
		n.adjust += deltaAdjust
		n.refCount += deltaPin
		if n.adjust == 0 && n.refCount == 0 {
			return implode(n), nil
		}
		n.recompute()
		return n, n
	}
	if index < n.offset {
		sub, touched := include(n.left, index, deltaAdjust, deltaPin)
		n.setLeft(sub)
		n.recompute()
		if sub != nil && rank(sub.offset) > rank(n.offset) {
			return rotateUp(sub), touched
		}
		return n, touched
	}
	sub, touched := include(n.right, index, deltaAdjust, deltaPin)
	n.setRight(sub)
	n.recompute()
	if sub != nil && rank(sub.offset) > rank(n.offset) {
		return rotateUp(sub), touched
	}
	return n, touched
}

// rotateUp lifts child above its parent, reassigning the child's opposite
// subtree to the demoted parent. Aggregates of the rotated pair are
// refreshed; the caller links the returned node into the tree.
func rotateUp(child *Node) *Node {
	demoted := child.parent
	assert(demoted != nil, "rotateUp requires a parented child")
	if demoted.left == child {
		demoted.setLeft(child.right)
		child.setRight(demoted)
	} else {
		assert(demoted.right == child, "rotateUp child is not linked to its parent")
		demoted.setRight(child.left)
		child.setLeft(demoted)
	}
	demoted.recompute()
	child.recompute()
	child.parent = nil
	return child
}

// implode removes a node whose adjust and pin count both reached zero and
// returns the subtree taking its place.
//
// With two children the higher-ranked child is promoted and the other is
// reattached at the promoted child's flank facing the demoted side; the
// aggregates along the reattachment path are refreshed. This is O(depth)
// and happens at most once per node lifetime.
func implode(n *Node) *Node {
	left, right := n.left, n.right
	n.left, n.right, n.parent = nil, nil, nil
	if left == nil && right == nil {
		return nil
	}
	if left == nil {
		right.parent = nil
		return right
	}
	if right == nil {
		left.parent = nil
		return left
	}
	if rank(left.offset) >= rank(right.offset) {
		left.parent = nil
		at := left
		for at.right != nil {
			at = at.right
		}
		at.setRight(right)
		recomputeToTop(at)
		return left
	}
	right.parent = nil
	at := right
	for at.left != nil {
		at = at.left
	}
	at.setLeft(left)
	recomputeToTop(at)
	return right
}

// RootOf walks parent links to the top of the tree containing n.
func RootOf(n *Node) *Node {
	if n == nil {
		return nil
	}
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Total returns the sum of adjust over the whole tree. A complete
// population of paired reference endpoints always totals zero.
func Total(root *Node) int64 {
	if root == nil {
		return 0
	}
	return root.subTotal
}

// DepthAt returns the nesting depth at position index: the sum of adjust
// over all nodes with offset <= index. Logarithmic in a balanced tree.
func DepthAt(root *Node, index int64) int64 {
	var depth int64
	for n := root; n != nil; {
		if index < n.offset {
			n = n.left
			continue
		}
		depth += n.adjust
		if n.left != nil {
			depth += n.left.subTotal
		}
		n = n.right
	}
	return depth
}

// Enclosing returns the span from the tree's leftmost to its rightmost
// offset, and ok=false for an empty tree.
func Enclosing(root *Node) (span.Span, bool) {
	if root == nil {
		return span.Span{}, false
	}
	min := root
	for min.left != nil {
		min = min.left
	}
	max := root
	for max.right != nil {
		max = max.right
	}
	return span.Span{Offset: min.offset, Length: max.offset - min.offset}, true
}
