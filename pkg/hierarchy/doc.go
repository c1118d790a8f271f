// Package hierarchy provides the generic tree model consumed by the layout
// algorithms in pkg/layout.
//
// # Overview
//
// A [Node] owns an arbitrary payload, a numeric value used for sizing, and an
// ordered list of children. Depth, height and the geometry fields (X, Y,
// Width, RectHeight, Radius) are derived: they are meaningless until
// [Node.EachBefore] or a layout has run.
//
// A typical flow:
//
//	root := hierarchy.Branch("company")
//	sales := hierarchy.Branch("sales")
//	sales.AddChild(hierarchy.Leaf("domestic", 100))
//	sales.AddChild(hierarchy.Leaf("international", 150))
//	root.AddChild(sales)
//
//	root.Sum()              // internal values := sum of leaves
//	root.SortByValue()      // optional
//	positioned := layout.ApplyTree(layout.NewTree().Size(800, 400), root)
//
//	for n := range positioned.All() {
//	    p := n.Positioned()
//	    ...
//	}
//
// # Ownership
//
// Children are owned exclusively by their parent. Nodes carry no back
// pointer; when ancestor queries are needed, [Flatten] builds an arena of
// nodes with integer parent indices in one pass.
//
// # Limits
//
// Aggregation, depth/height computation, sorting and cloning are recursive,
// so their stack usage grows with tree height. Goroutine stacks grow on
// demand, which makes this a memory bound on pathological, list-shaped trees
// rather than a failure mode. The pre-order [Iterator] uses an explicit stack.
//
// # Concurrency
//
// A Node tree is not safe for concurrent mutation. Layouts work on private
// deep copies, so concurrent layouts over the same input tree are safe as long
// as nobody mutates the input meanwhile.
package hierarchy
