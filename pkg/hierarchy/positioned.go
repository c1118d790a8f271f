package hierarchy

// PositionedNode is a read-only snapshot of a node and its computed geometry.
//
// The same shape serves rectangular layouts (tree, cluster, treemap) and
// circular ones: a Radius greater than zero means "circle centred at (X, Y)",
// anything else means "rectangle with top-left corner (X, Y)".
type PositionedNode[T any] struct {
	Data   T
	Value  float64
	X, Y   float64
	Width  float64
	Height float64
	Radius float64
	Depth  int
	IsLeaf bool
}

// Project builds the positioned snapshot of n. RectHeight becomes Height.
func Project[T any](n *Node[T]) PositionedNode[T] {
	return PositionedNode[T]{
		Data:   n.Data,
		Value:  n.Value,
		X:      n.X,
		Y:      n.Y,
		Width:  n.Width,
		Height: n.RectHeight,
		Radius: n.Radius,
		Depth:  n.Depth,
		IsLeaf: n.IsLeaf(),
	}
}

// Positioned is shorthand for Project(n).
func (n *Node[T]) Positioned() PositionedNode[T] { return Project(n) }

// PositionedNodes projects every node of the subtree, in pre-order.
func (n *Node[T]) PositionedNodes() []PositionedNode[T] {
	out := make([]PositionedNode[T], 0, n.Count())
	for node := range n.All() {
		out = append(out, Project(node))
	}
	return out
}

// Contains reports whether (px, py) lies inside the node's bounds.
// Rectangle bounds are inclusive on all four edges.
func (p PositionedNode[T]) Contains(px, py float64) bool {
	if p.Radius > 0 {
		dx, dy := px-p.X, py-p.Y
		return dx*dx+dy*dy <= p.Radius*p.Radius
	}
	return px >= p.X && px <= p.X+p.Width && py >= p.Y && py <= p.Y+p.Height
}

// Center returns the circle centre, or the rectangle midpoint.
func (p PositionedNode[T]) Center() (float64, float64) {
	if p.Radius > 0 {
		return p.X, p.Y
	}
	return p.X + p.Width/2, p.Y + p.Height/2
}

// HitTest returns the index of the deepest node containing (px, py), or -1.
// Among equally deep matches the later one wins, which in pre-order is the
// one drawn last.
func HitTest[T any](nodes []PositionedNode[T], px, py float64) int {
	best := -1
	for i, p := range nodes {
		if !p.Contains(px, py) {
			continue
		}
		if best < 0 || p.Depth >= nodes[best].Depth {
			best = i
		}
	}
	return best
}
