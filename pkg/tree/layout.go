package tree

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/hierarchy"
	"github.com/matzehuels/arbor/pkg/layout"
)

// Layout is the serialization format for a computed layout.
//
// Nodes are stored in pre-order; Parent is the index of the parent node in
// Nodes, -1 for the root. Tree and cluster layouts position node centres at
// (X, Y); treemap layouts give the top-left corner and a Width × Height
// rectangle.
//
// Hit-testing treats a node as a circle only when its Radius is positive.
// pipeline.ComputeLayout sets the configured node radius on tree and
// cluster nodes; FromHierarchy copies whatever Radius the hierarchy carries,
// so a point node with Radius 0 contains nothing but its exact centre.
type Layout struct {
	ID     string           `json:"id" bson:"id"`
	Kind   layout.Kind      `json:"kind" bson:"kind"`
	Width  float64          `json:"width" bson:"width"`
	Height float64          `json:"height" bson:"height"`
	Nodes  []PositionedNode `json:"nodes" bson:"nodes"`
	Links  []Link           `json:"links,omitempty" bson:"links,omitempty"`
}

// PositionedNode is one positioned node of a Layout.
type PositionedNode struct {
	ID     string         `json:"id" bson:"id"`
	Label  string         `json:"label,omitempty" bson:"label,omitempty"`
	Value  float64        `json:"value" bson:"value"`
	X      float64        `json:"x" bson:"x"`
	Y      float64        `json:"y" bson:"y"`
	Width  float64        `json:"width,omitempty" bson:"width,omitempty"`
	Height float64        `json:"height,omitempty" bson:"height,omitempty"`
	Radius float64        `json:"radius,omitempty" bson:"radius,omitempty"`
	Depth  int            `json:"depth" bson:"depth"`
	Leaf   bool           `json:"leaf,omitempty" bson:"leaf,omitempty"`
	Parent int            `json:"parent" bson:"parent"`
	Meta   map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n PositionedNode) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Link is a parent→child edge by node ID.
type Link struct {
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
}

// IsTreemap reports whether nodes are rectangles rather than points.
func (l *Layout) IsTreemap() bool { return l.Kind == layout.KindTreemap }

// FromHierarchy flattens a positioned hierarchy into a Layout with a fresh
// ID. Treemap layouts carry no links. Radius is copied as is; set it on the
// hierarchy first for circle hit-testing.
func FromHierarchy(kind layout.Kind, width, height float64, root *hierarchy.Node[Payload]) Layout {
	flat := hierarchy.Flatten(root)
	out := Layout{
		ID:     uuid.NewString(),
		Kind:   kind,
		Width:  width,
		Height: height,
		Nodes:  make([]PositionedNode, flat.Len()),
	}
	for i, n := range flat.Nodes {
		out.Nodes[i] = PositionedNode{
			ID:     n.Data.ID,
			Label:  n.Data.Label,
			Value:  n.Value,
			X:      n.X,
			Y:      n.Y,
			Width:  n.Width,
			Height: n.RectHeight,
			Radius: n.Radius,
			Depth:  n.Depth,
			Leaf:   n.IsLeaf(),
			Parent: flat.Parent[i],
			Meta:   n.Data.Meta,
		}
		if p := flat.Parent[i]; p >= 0 && kind != layout.KindTreemap {
			out.Links = append(out.Links, Link{Source: flat.Nodes[p].Data.ID, Target: n.Data.ID})
		}
	}
	return out
}

// Positioned converts the layout's nodes for use with hierarchy.HitTest.
func (l *Layout) Positioned() []hierarchy.PositionedNode[Payload] {
	out := make([]hierarchy.PositionedNode[Payload], len(l.Nodes))
	for i, n := range l.Nodes {
		out[i] = hierarchy.PositionedNode[Payload]{
			Data:   Payload{ID: n.ID, Label: n.Label, Meta: n.Meta},
			Value:  n.Value,
			X:      n.X,
			Y:      n.Y,
			Width:  n.Width,
			Height: n.Height,
			Radius: n.Radius,
			Depth:  n.Depth,
			IsLeaf: n.Leaf,
		}
	}
	return out
}

// HitTest returns the index of the deepest node containing (px, py), or -1.
func (l *Layout) HitTest(px, py float64) int {
	return hierarchy.HitTest(l.Positioned(), px, py)
}

// Path returns the node indices from the root down to node i, or nil when i
// is out of range.
func (l *Layout) Path(i int) []int {
	if i < 0 || i >= len(l.Nodes) {
		return nil
	}
	var path []int
	for j := i; j >= 0; j = l.Nodes[j].Parent {
		path = append(path, j)
	}
	for a, b := 0, len(path)-1; a < b; a, b = a+1, b-1 {
		path[a], path[b] = path[b], path[a]
	}
	return path
}

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout and checks its
// structure: a known kind, at least one node, parents that precede their
// children and links between known nodes.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// Validate checks the structural invariants UnmarshalLayout relies on.
func (l *Layout) Validate() error {
	kind, err := layout.ParseKind(string(l.Kind))
	if err != nil {
		return err
	}
	l.Kind = kind

	if len(l.Nodes) == 0 {
		return errors.New(errors.ErrCodeInvalidTree, "layout must contain nodes")
	}
	ids := make(map[string]bool, len(l.Nodes))
	for i, n := range l.Nodes {
		switch {
		case i == 0 && n.Parent != -1:
			return errors.New(errors.ErrCodeInvalidTree, "first layout node must be the root (parent -1)")
		case i > 0 && (n.Parent < 0 || n.Parent >= i):
			return errors.New(errors.ErrCodeInvalidTree, "node %q has invalid parent index %d", n.ID, n.Parent)
		}
		ids[n.ID] = true
	}
	for _, link := range l.Links {
		if !ids[link.Source] || !ids[link.Target] {
			return errors.New(errors.ErrCodeInvalidTree, "link %s→%s references an unknown node", link.Source, link.Target)
		}
	}
	return nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
