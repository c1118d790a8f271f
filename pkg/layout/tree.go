package layout

import "github.com/matzehuels/arbor/pkg/hierarchy"

// Default settings shared by the tree and cluster layouts.
const (
	DefaultSeparationSiblings = 1.0
	DefaultSeparationCousins  = 2.0
	DefaultSeparation         = 1.0
)

// Tree configures the tidy tree layout. The zero value is not useful; start
// from NewTree. Setters return a modified copy, so a Tree can be shared.
type Tree struct {
	width, height      float64
	separationSiblings float64
	separationCousins  float64

	fixed        bool
	nodeW, nodeH float64
}

// NewTree returns a size-fit configuration over a 1×1 frame with default
// separations.
func NewTree() Tree {
	return Tree{
		width:              1,
		height:             1,
		separationSiblings: DefaultSeparationSiblings,
		separationCousins:  DefaultSeparationCousins,
	}
}

// Size switches to size-fit mode over a width × height frame.
func (t Tree) Size(width, height float64) Tree {
	t.width, t.height = width, height
	t.fixed, t.nodeW, t.nodeH = false, 0, 0
	return t
}

// NodeSize switches to fixed mode, where each depth level is nodeHeight
// apart and each horizontal unit is nodeWidth wide.
func (t Tree) NodeSize(nodeWidth, nodeHeight float64) Tree {
	t.fixed, t.nodeW, t.nodeH = true, nodeWidth, nodeHeight
	t.width, t.height = 0, 0
	return t
}

// SeparationSiblings sets the gap between adjacent leaves at one depth.
// Negative values are clamped to 0.
func (t Tree) SeparationSiblings(sep float64) Tree {
	t.separationSiblings = max(sep, 0)
	return t
}

// SeparationCousins sets the gap kept after a centred parent at one depth.
// Negative values are clamped to 0.
func (t Tree) SeparationCousins(sep float64) Tree {
	t.separationCousins = max(sep, 0)
	return t
}

// Dimensions returns the size-fit frame; zero in fixed mode.
func (t Tree) Dimensions() (width, height float64) { return t.width, t.height }

// NodeDimensions returns the fixed node size and whether fixed mode is on.
func (t Tree) NodeDimensions() (width, height float64, ok bool) {
	return t.nodeW, t.nodeH, t.fixed
}

// Separations returns the sibling and cousin separations.
func (t Tree) Separations() (siblings, cousins float64) {
	return t.separationSiblings, t.separationCousins
}

// ApplyTree lays out a deep copy of root as a tidy tree and returns it.
func ApplyTree[T any](t Tree, root *hierarchy.Node[T]) *hierarchy.Node[T] {
	tree := root.Clone()
	tree.EachBefore()

	next := make([]float64, tree.Height+1)
	firstWalk(t, tree, next)

	minX, maxX := extentX(tree)
	maxDepth := float64(tree.MaxDepth())
	xRange := max(maxX-minX, 1)

	for n := range tree.All() {
		if t.fixed {
			n.X = (n.X - minX) * t.nodeW
			n.Y = n.Y * t.nodeH
			continue
		}
		n.X = (n.X - minX) / xRange * t.width
		n.Y = n.Y / max(maxDepth, 1) * t.height
	}
	return tree
}

// firstWalk assigns preliminary x in level units, post-order.
func firstWalk[T any](t Tree, n *hierarchy.Node[T], next []float64) {
	for _, c := range n.Children {
		firstWalk(t, c, next)
	}

	d := n.Depth
	if n.IsLeaf() {
		n.X = next[d]
		next[d] += t.separationSiblings
	} else {
		mid := (n.Children[0].X + n.Children[len(n.Children)-1].X) / 2
		n.X = max(mid, next[d])
		next[d] = n.X + t.separationCousins
	}
	n.Y = float64(d)
}

// extentX returns the minimum and maximum X over the subtree.
func extentX[T any](root *hierarchy.Node[T]) (float64, float64) {
	minX, maxX := root.X, root.X
	for n := range root.All() {
		minX = min(minX, n.X)
		maxX = max(maxX, n.X)
	}
	return minX, maxX
}
