package hierarchy

import (
	"cmp"
	"slices"
)

// Node is a single element of a hierarchy. Its children are owned and kept in
// insertion order unless explicitly sorted.
//
// The zero value is a usable leaf with a zero payload.
type Node[T any] struct {
	Data     T        // Opaque payload (label, descriptor)
	Value    float64  // Sizing weight; internal nodes are overwritten by Sum
	Children []*Node[T]

	// Derived by EachBefore.
	Depth  int // Edges from the root (root = 0)
	Height int // Edges to the deepest descendant leaf (leaf = 0)

	// Layout output, zero until a layout has run.
	X, Y       float64
	Width      float64
	RectHeight float64
	Radius     float64
}

// New creates a detached node with the given payload and value.
func New[T any](data T, value float64) *Node[T] {
	return &Node[T]{Data: data, Value: value}
}

// Leaf creates a node meant to stay childless.
func Leaf[T any](data T, value float64) *Node[T] { return New(data, value) }

// Branch creates a node whose value will come from its children via Sum.
func Branch[T any](data T) *Node[T] { return New(data, 0) }

// AddChild appends child. Depth and height are not refreshed.
func (n *Node[T]) AddChild(child *Node[T]) {
	n.Children = append(n.Children, child)
}

// AddChildren appends children in order.
func (n *Node[T]) AddChildren(children ...*Node[T]) {
	n.Children = append(n.Children, children...)
}

// WithChildren replaces the children and returns n for chaining.
func (n *Node[T]) WithChildren(children ...*Node[T]) *Node[T] {
	n.Children = children
	return n
}

// IsLeaf reports whether the node has no children.
func (n *Node[T]) IsLeaf() bool { return len(n.Children) == 0 }

// ChildCount returns the number of direct children.
func (n *Node[T]) ChildCount() int { return len(n.Children) }

// Count returns the number of nodes in the subtree, including n.
func (n *Node[T]) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// LeafCount returns the number of leaves in the subtree. A leaf counts itself.
func (n *Node[T]) LeafCount() int {
	if n.IsLeaf() {
		return 1
	}
	total := 0
	for _, c := range n.Children {
		total += c.LeafCount()
	}
	return total
}

// Sum aggregates values bottom-up and returns the subtree total.
//
// Leaves keep their own value. Every internal node's value is overwritten
// with the sum of its children's aggregated values, so any value set on an
// internal node beforehand is lost. Calling Sum again returns the same total
// as long as no leaf value changed.
func (n *Node[T]) Sum() float64 {
	if n.IsLeaf() {
		return n.Value
	}
	var total float64
	for _, c := range n.Children {
		total += c.Sum()
	}
	n.Value = total
	return total
}

// EachBefore assigns Depth top-down (root = 0) and Height bottom-up
// (leaf = 0, internal = 1 + max child height) in a single traversal.
func (n *Node[T]) EachBefore() {
	n.computeDepthHeight(0)
}

func (n *Node[T]) computeDepthHeight(depth int) int {
	n.Depth = depth
	n.Height = 0
	for _, c := range n.Children {
		if h := c.computeDepthHeight(depth+1) + 1; h > n.Height {
			n.Height = h
		}
	}
	return n.Height
}

// MaxDepth returns the largest Depth in the subtree.
// Depths must be current (see EachBefore).
func (n *Node[T]) MaxDepth() int {
	m := n.Depth
	for _, c := range n.Children {
		m = max(m, c.MaxDepth())
	}
	return m
}

// SortByValue recursively orders every node's children by descending value.
// Equal values keep their insertion order.
func (n *Node[T]) SortByValue() {
	slices.SortStableFunc(n.Children, func(a, b *Node[T]) int {
		return cmp.Compare(b.Value, a.Value)
	})
	for _, c := range n.Children {
		c.SortByValue()
	}
}

// SortByHeight recursively orders every node's children by ascending height.
// Heights must be current (see EachBefore). Equal heights keep their
// insertion order.
func (n *Node[T]) SortByHeight() {
	slices.SortStableFunc(n.Children, func(a, b *Node[T]) int {
		return cmp.Compare(a.Height, b.Height)
	})
	for _, c := range n.Children {
		c.SortByHeight()
	}
}

// Clone returns a deep copy of the subtree: structure, values, derived
// fields and geometry. The payload is copied by assignment.
func (n *Node[T]) Clone() *Node[T] {
	return n.CloneFunc(func(d T) T { return d })
}

// CloneFunc is like Clone but copies each payload through fn, for payloads
// that hold references.
func (n *Node[T]) CloneFunc(fn func(T) T) *Node[T] {
	out := *n
	out.Data = fn(n.Data)
	out.Children = nil
	if len(n.Children) > 0 {
		out.Children = make([]*Node[T], len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.CloneFunc(fn)
		}
	}
	return &out
}
