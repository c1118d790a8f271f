package tree

import (
	"fmt"
	"maps"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/hierarchy"
)

// Payload is the data attached to every decoded hierarchy node.
type Payload struct {
	ID    string
	Label string
	Meta  map[string]any
}

// DisplayLabel returns the label if set, otherwise the ID.
func (p Payload) DisplayLabel() string {
	if p.Label != "" {
		return p.Label
	}
	return p.ID
}

// Clone returns a copy of p whose Meta map is not shared with p.
func (p Payload) Clone() Payload {
	p.Meta = maps.Clone(p.Meta)
	return p
}

// Node is one node of a tree document.
type Node struct {
	ID       string         `json:"id,omitempty" toml:"id,omitempty"`
	Label    string         `json:"label,omitempty" toml:"label,omitempty"`
	Value    float64        `json:"value,omitempty" toml:"value,omitempty"`
	Meta     map[string]any `json:"meta,omitempty" toml:"meta,omitempty"`
	Children []Node         `json:"children,omitempty" toml:"children,omitempty"`
}

// ToHierarchy validates a document and converts it to a hierarchy.
// Missing IDs are filled from the pre-order position; duplicate IDs and
// non-finite values are rejected with ErrCodeInvalidTree.
func ToHierarchy(doc Node) (*hierarchy.Node[Payload], error) {
	c := &converter{seen: make(map[string]bool)}
	return c.convert(doc)
}

type converter struct {
	seen  map[string]bool
	index int
}

func (c *converter) convert(doc Node) (*hierarchy.Node[Payload], error) {
	id := doc.ID
	if id == "" {
		id = fmt.Sprintf("n%d", c.index)
	}
	c.index++

	if err := errors.ValidateNodeID(id); err != nil {
		return nil, err
	}
	if c.seen[id] {
		return nil, errors.New(errors.ErrCodeInvalidTree, "duplicate node id %q", id)
	}
	c.seen[id] = true

	if err := errors.ValidateWeight(doc.Value); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTree, err, "node %q", id)
	}

	n := hierarchy.New(Payload{ID: id, Label: doc.Label, Meta: doc.Meta}, doc.Value)
	for _, child := range doc.Children {
		cn, err := c.convert(child)
		if err != nil {
			return nil, err
		}
		n.AddChild(cn)
	}
	return n, nil
}

// ToDocument converts a hierarchy back to its document form.
func ToDocument(root *hierarchy.Node[Payload]) Node {
	doc := Node{
		ID:    root.Data.ID,
		Label: root.Data.Label,
		Value: root.Value,
		Meta:  root.Data.Meta,
	}
	if len(root.Children) > 0 {
		doc.Children = make([]Node, len(root.Children))
		for i, c := range root.Children {
			doc.Children[i] = ToDocument(c)
		}
	}
	return doc
}

// Clone deep-copies a decoded hierarchy, including every Meta map.
func Clone(root *hierarchy.Node[Payload]) *hierarchy.Node[Payload] {
	return root.CloneFunc(Payload.Clone)
}
