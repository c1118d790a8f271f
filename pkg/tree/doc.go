// Package tree provides the serialization formats for hierarchies and their
// layouts.
//
// It sits at the boundary between the generic [hierarchy.Node] model and
// files, API payloads and cache entries:
//
//   - [Node]: nested tree document, read from JSON or TOML
//   - [Payload]: the data carried by each hierarchy node after decoding
//   - [Layout]: a computed layout, flattened to positioned nodes and links
//
// # Tree Documents
//
// A tree document is a single root object with nested children. Leaves
// carry a value; internal values are ignored by layouts that aggregate.
//
//	{
//	  "id": "root",
//	  "children": [
//	    {"id": "a", "label": "Sales", "value": 250},
//	    {"id": "b", "children": [{"id": "b1", "value": 80}]}
//	  ]
//	}
//
// The same shape in TOML uses nested arrays of tables:
//
//	id = "root"
//
//	[[children]]
//	id = "a"
//	value = 250.0
//
// Common operations:
//
//	root, _ := tree.ReadFile("org.json")        // File → hierarchy
//	data, _ := tree.Marshal(root, tree.FormatTOML) // hierarchy → []byte
//
// Node IDs must be unique within a document. Nodes without an ID get one
// from their pre-order position ("n0", "n1", ...). Values must be finite.
//
// # Layout Documents
//
//	node, _ := layout.Apply(opts, root)
//	width, height := opts.Frame()
//	doc := tree.FromHierarchy(opts.Kind, width, height, node)
//	data, _ := tree.MarshalLayout(doc)
//
// Layout nodes are stored in pre-order with a parent index, so [Layout.Path]
// and [Layout.HitTest] work without the original tree.
//
// # Limits
//
// Conversion recurses once per tree level. Documents nested deeper than a
// few hundred thousand levels exhaust the goroutine stack.
package tree
