// Package layout computes 2-D positions for [hierarchy.Node] trees.
//
// Three algorithms are provided:
//
//   - [ApplyTree]: traditional top-down tidy tree, configured by [Tree]
//   - [ApplyCluster]: leaves placed by sequential index, ancestors centred
//     over their children, configured by [Cluster]
//   - [ApplyTreemap]: space-filling nested rectangles sized by value,
//     configured by [Treemap]
//
// Every layout deep-copies its input, refreshes depth and height on the copy,
// positions the copy and returns it. The caller's tree is never mutated, so
// the same tree can be laid out repeatedly with different settings.
//
// # Coordinates
//
// Results are relative to a layout-local origin (0, 0). In size-fit mode the
// tree and cluster layouts spread nodes across [0, width] × [0, height]; in
// the tree layout's fixed node-size mode x and y are multiples of the node
// size. Degenerate inputs never fail: divisions are guarded with max(x, 1), a
// single node lands on the origin, and a zero frame yields zero coordinates.
//
// # Tidy tree contour
//
// [ApplyTree] keeps one "next free x" cursor per depth. A parent is centred
// over its first and last child unless that would overlap a subtree already
// placed at the same depth, in which case it is pushed right to the cursor.
// This guarantees non-overlap wherever a parent is centred, but it is not the
// full Reingold–Tilford contour algorithm and does not produce minimal-width
// trees.
//
// # Cluster depth
//
// [ApplyCluster] sets each node's y from its own depth. Leaves that sit at
// different depths are not pulled down to a common baseline, unlike a
// classic dendrogram.
//
// # Kinds
//
// [Options] and [Apply] select an algorithm by [Kind] name ("tree", "cluster",
// "treemap") for callers driven by configuration, such as the CLI and the
// HTTP API.
package layout
