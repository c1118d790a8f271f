package hierarchy

import "iter"

// Iterator walks a subtree in pre-order using an explicit stack, so traversal
// depth is not bounded by the call stack. An Iterator is single use; call
// [Node.Iter] for a fresh one.
type Iterator[T any] struct {
	stack []*Node[T]
}

// Iter returns a new pre-order iterator seeded with n.
func (n *Node[T]) Iter() *Iterator[T] {
	return &Iterator[T]{stack: []*Node[T]{n}}
}

// Next returns the next node, or false when the traversal is exhausted.
func (it *Iterator[T]) Next() (*Node[T], bool) {
	if len(it.stack) == 0 {
		return nil, false
	}
	last := len(it.stack) - 1
	n := it.stack[last]
	it.stack = it.stack[:last]
	// Reverse push so children pop left to right.
	for i := len(n.Children) - 1; i >= 0; i-- {
		it.stack = append(it.stack, n.Children[i])
	}
	return n, true
}

// All returns the pre-order sequence of the subtree rooted at n.
func (n *Node[T]) All() iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		it := n.Iter()
		for {
			node, ok := it.Next()
			if !ok || !yield(node) {
				return
			}
		}
	}
}

// Walk calls fn for every node in pre-order until fn returns false.
func (n *Node[T]) Walk(fn func(*Node[T]) bool) {
	for node := range n.All() {
		if !fn(node) {
			return
		}
	}
}

// Leaves returns the leaves of the subtree in pre-order.
func (n *Node[T]) Leaves() []*Node[T] {
	var out []*Node[T]
	for node := range n.All() {
		if node.IsLeaf() {
			out = append(out, node)
		}
	}
	return out
}
