package hierarchy

// Flat is a pre-order arena view of a tree with integer parent links.
// It is a snapshot: later changes to the tree's shape are not reflected.
type Flat[T any] struct {
	Nodes  []*Node[T]
	Parent []int // Parent[i] is the index of Nodes[i]'s parent, -1 for the root

	index map[*Node[T]]int
}

// Flatten builds the arena for the subtree rooted at root.
// The root is always at index 0.
func Flatten[T any](root *Node[T]) *Flat[T] {
	n := root.Count()
	f := &Flat[T]{
		Nodes:  make([]*Node[T], 0, n),
		Parent: make([]int, 0, n),
		index:  make(map[*Node[T]]int, n),
	}

	type frame struct {
		node   *Node[T]
		parent int
	}
	stack := []frame{{node: root, parent: -1}}
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		idx := len(f.Nodes)
		f.Nodes = append(f.Nodes, fr.node)
		f.Parent = append(f.Parent, fr.parent)
		f.index[fr.node] = idx

		for i := len(fr.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: fr.node.Children[i], parent: idx})
		}
	}
	return f
}

// Len returns the number of nodes in the arena.
func (f *Flat[T]) Len() int { return len(f.Nodes) }

// Index returns the arena index of n.
func (f *Flat[T]) Index(n *Node[T]) (int, bool) {
	i, ok := f.index[n]
	return i, ok
}

// Ancestors returns the indices from i's parent up to the root.
// Out-of-range indices yield nil.
func (f *Flat[T]) Ancestors(i int) []int {
	if i < 0 || i >= len(f.Parent) {
		return nil
	}
	var out []int
	for p := f.Parent[i]; p >= 0; p = f.Parent[p] {
		out = append(out, p)
	}
	return out
}

// Path returns the indices from the root down to i, inclusive.
func (f *Flat[T]) Path(i int) []int {
	anc := f.Ancestors(i)
	if anc == nil && (i < 0 || i >= len(f.Parent)) {
		return nil
	}
	out := make([]int, 0, len(anc)+1)
	for j := len(anc) - 1; j >= 0; j-- {
		out = append(out, anc[j])
	}
	return append(out, i)
}
