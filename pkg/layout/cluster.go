package layout

import "github.com/matzehuels/arbor/pkg/hierarchy"

// Cluster configures the cluster layout, which spaces leaves evenly by their
// left-to-right index and centres every ancestor over its children.
type Cluster struct {
	width, height float64
	separation    float64
}

// NewCluster returns a configuration over a 1×1 frame with the default
// separation.
func NewCluster() Cluster {
	return Cluster{width: 1, height: 1, separation: DefaultSeparation}
}

// Size sets the target frame.
func (c Cluster) Size(width, height float64) Cluster {
	c.width, c.height = width, height
	return c
}

// Separation sets the spacing between consecutive leaves, clamped to >= 0.
func (c Cluster) Separation(sep float64) Cluster {
	c.separation = max(sep, 0)
	return c
}

// Dimensions returns the target frame.
func (c Cluster) Dimensions() (width, height float64) { return c.width, c.height }

// SeparationValue returns the leaf spacing.
func (c Cluster) SeparationValue() float64 { return c.separation }

// ApplyCluster lays out a deep copy of root as a cluster and returns it.
func ApplyCluster[T any](c Cluster, root *hierarchy.Node[T]) *hierarchy.Node[T] {
	tree := root.Clone()
	tree.EachBefore()

	leafIndex := 0
	positionLeaves(c, tree, &leafIndex)

	for n := range tree.All() {
		n.Y = float64(n.Depth)
	}

	_, maxX := extentX(tree)
	xRange := max(maxX, 1)
	yRange := max(float64(tree.MaxDepth()), 1)
	for n := range tree.All() {
		n.X = n.X / xRange * c.width
		n.Y = n.Y / yRange * c.height
	}
	return tree
}

// positionLeaves walks post-order with a single leaf counter for the whole
// tree, so leaf indices are disjoint across subtrees.
func positionLeaves[T any](c Cluster, n *hierarchy.Node[T], next *int) {
	if n.IsLeaf() {
		n.X = float64(*next) * c.separation
		*next++
		return
	}
	for _, child := range n.Children {
		positionLeaves(c, child, next)
	}
	n.X = (n.Children[0].X + n.Children[len(n.Children)-1].X) / 2
}
