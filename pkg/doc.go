// Package pkg provides the core libraries for arbor hierarchy layout.
//
// # Overview
//
// Arbor computes 2-D positions for weighted trees and turns them into
// pictures. The pkg directory is organized into three areas:
//
//  1. Domain logic: [hierarchy] (generic tree nodes) and [layout] (tidy
//     tree, cluster and treemap algorithms)
//  2. Documents and output: [tree] (JSON/TOML tree and layout documents) and
//     [render] (SVG, DOT, PNG, PDF, JSON)
//  3. Infrastructure: [pipeline] (layout → render with caching), [cache]
//     (file, Redis, MongoDB backends), [errors], [observability], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	tree document (.json / .toml)
//	         ↓
//	    [tree] package (decode + validate into hierarchy.Node[tree.Payload])
//	         ↓
//	    [pipeline] package (sort, aggregate, run the selected layout)
//	         ↓
//	    [tree.Layout] document (positioned nodes + links)
//	         ↓
//	    [render] package (SVG/DOT/PNG/PDF/JSON)
//
// # Quick Start
//
// Lay out and render a tree document:
//
//	root, _ := tree.ReadFile("org.json")
//
//	opts := pipeline.Options{Formats: []string{"svg"}, ShowLabels: true}
//	opts.Kind = layout.KindTreemap
//	opts.Width, opts.Height = layout.Float(960), layout.Float(540)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(ctx, root, opts)
//	os.WriteFile("org.svg", result.Artifacts["svg"], 0o644)
//
// Or use the algorithms directly on any payload type:
//
//	root := hierarchy.Branch("root")
//	root.AddChildren(hierarchy.Leaf("a", 3), hierarchy.Leaf("b", 1))
//	positioned := layout.ApplyTreemap(layout.NewTreemap().Size(100, 100), root)
//
// # Main Packages
//
// [hierarchy] - Generic n-ary tree with aggregation (Sum, Count), ordering
// (SortByValue, SortByHeight), traversal (EachBefore, EachAfter, All) and
// point hit-testing over flattened positioned nodes.
//
// [layout] - Tidy tree, cluster dendrogram and treemap layouts. Every layout
// works on a deep copy; inputs are never mutated.
//
// [tree] - Tree documents and layout documents, the wire formats of the CLI
// and the HTTP API.
//
// [render] - Output sinks. Native SVG drawing, DOT export rendered through
// Graphviz, and rsvg-convert for PNG and PDF.
//
// [pipeline] - Layout and render stages shared by the CLI and the server,
// cached by content hash.
//
// [cache] - Cache interface with file, Redis, MongoDB and no-op backends.
//
// # Testing
//
// Run tests:
//
//	go test ./...                    # All tests
//	go test ./pkg/layout/...         # Specific package
//	go test -run Example ./pkg/...   # Examples only
//	go test -tags integration ./...  # Include MongoDB tests (needs ARBOR_TEST_MONGO_URI)
//
// [hierarchy]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/hierarchy
// [layout]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/layout
// [tree]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/tree
// [tree.Layout]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/tree#Layout
// [render]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/buildinfo
package pkg
