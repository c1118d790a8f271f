package layout

import (
	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/hierarchy"
)

// Kind names a layout algorithm.
type Kind string

const (
	KindTree    Kind = "tree"
	KindCluster Kind = "cluster"
	KindTreemap Kind = "treemap"
)

// Frame defaults used when Options leaves them unset.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
	DefaultKind   = KindTree
)

// ValidKinds is the set of supported layout kinds.
var ValidKinds = map[Kind]bool{
	KindTree:    true,
	KindCluster: true,
	KindTreemap: true,
}

// ParseKind converts a name to a Kind. The empty string selects DefaultKind.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return DefaultKind, nil
	}
	k := Kind(s)
	if !ValidKinds[k] {
		return "", errors.New(errors.ErrCodeInvalidLayout, "invalid layout: %q (must be one of: tree, cluster, treemap)", s)
	}
	return k, nil
}

// Options selects and configures a layout by name. It is the serialisable
// counterpart of Tree, Cluster and Treemap, used by configuration files and
// API requests.
//
// The frame and the separations are pointers: nil takes the default in
// ValidateAndSetDefaults, while an explicit 0 is kept. Use [Float] to set
// them from a literal.
type Options struct {
	Kind   Kind     `json:"kind,omitempty" toml:"kind"`
	Width  *float64 `json:"width,omitempty" toml:"width"`
	Height *float64 `json:"height,omitempty" toml:"height"`

	// Tree only. NodeWidth and NodeHeight select fixed mode and must be
	// given together.
	NodeWidth          float64  `json:"node_width,omitempty" toml:"node_width"`
	NodeHeight         float64  `json:"node_height,omitempty" toml:"node_height"`
	SeparationSiblings *float64 `json:"separation_siblings,omitempty" toml:"separation_siblings"`
	SeparationCousins  *float64 `json:"separation_cousins,omitempty" toml:"separation_cousins"`

	// Cluster only.
	Separation *float64 `json:"separation,omitempty" toml:"separation"`

	// Treemap only.
	Tiling       Tiling  `json:"tiling,omitempty" toml:"tiling"`
	Padding      float64 `json:"padding,omitempty" toml:"padding"`
	PaddingTop   float64 `json:"padding_top,omitempty" toml:"padding_top"`
	PaddingOuter float64 `json:"padding_outer,omitempty" toml:"padding_outer"`
	Round        bool    `json:"round,omitempty" toml:"round"`

	validated bool
}

// Float returns a pointer to v, for the optional fields of Options.
func Float(v float64) *float64 { return &v }

// valueOr dereferences p, falling back to def when p is nil.
func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// Clone returns a copy of o that shares no pointers with it, so decoding
// into the copy leaves o untouched.
func (o Options) Clone() Options {
	for _, p := range []**float64{&o.Width, &o.Height, &o.SeparationSiblings, &o.SeparationCousins, &o.Separation} {
		if *p != nil {
			*p = Float(**p)
		}
	}
	return o
}

// ValidateAndSetDefaults checks every field and fills in defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	kind, err := ParseKind(string(o.Kind))
	if err != nil {
		return err
	}
	o.Kind = kind

	tiling, err := ParseTiling(string(o.Tiling))
	if err != nil {
		return err
	}
	o.Tiling = tiling

	optional := []struct {
		name string
		p    **float64
		def  float64
	}{
		{"width", &o.Width, DefaultWidth},
		{"height", &o.Height, DefaultHeight},
		{"separation_siblings", &o.SeparationSiblings, DefaultSeparationSiblings},
		{"separation_cousins", &o.SeparationCousins, DefaultSeparationCousins},
		{"separation", &o.Separation, DefaultSeparation},
	}
	for _, f := range optional {
		if *f.p == nil {
			*f.p = Float(f.def)
			continue
		}
		if err := errors.ValidateDimension(f.name, **f.p); err != nil {
			return err
		}
	}

	dims := []struct {
		name string
		v    float64
	}{
		{"node_width", o.NodeWidth},
		{"node_height", o.NodeHeight},
		{"padding", o.Padding},
		{"padding_top", o.PaddingTop},
		{"padding_outer", o.PaddingOuter},
	}
	for _, d := range dims {
		if err := errors.ValidateDimension(d.name, d.v); err != nil {
			return err
		}
	}
	if (o.NodeWidth > 0) != (o.NodeHeight > 0) {
		return errors.New(errors.ErrCodeInvalidLayout,
			"node_width and node_height must be set together (got %v and %v)", o.NodeWidth, o.NodeHeight)
	}

	o.validated = true
	return nil
}

// Fixed reports whether the tree layout runs in fixed node-size mode.
func (o *Options) Fixed() bool {
	return o.NodeWidth > 0 && o.NodeHeight > 0
}

// Frame returns the width and height, with defaults for unset fields.
func (o *Options) Frame() (width, height float64) {
	return valueOr(o.Width, DefaultWidth), valueOr(o.Height, DefaultHeight)
}

// TreeSeparations returns the sibling and cousin separations, with defaults
// for unset fields.
func (o *Options) TreeSeparations() (siblings, cousins float64) {
	return valueOr(o.SeparationSiblings, DefaultSeparationSiblings),
		valueOr(o.SeparationCousins, DefaultSeparationCousins)
}

// ClusterSeparation returns the leaf spacing of the cluster layout.
func (o *Options) ClusterSeparation() float64 {
	return valueOr(o.Separation, DefaultSeparation)
}

// Tree builds the tidy tree configuration described by o.
func (o *Options) Tree() Tree {
	siblings, cousins := o.TreeSeparations()
	t := NewTree().SeparationSiblings(siblings).SeparationCousins(cousins)
	if o.Fixed() {
		return t.NodeSize(o.NodeWidth, o.NodeHeight)
	}
	return t.Size(o.Frame())
}

// Cluster builds the cluster configuration described by o.
func (o *Options) Cluster() Cluster {
	return NewCluster().Size(o.Frame()).Separation(o.ClusterSeparation())
}

// Treemap builds the treemap configuration described by o.
func (o *Options) Treemap() Treemap {
	return NewTreemap().
		Size(o.Frame()).
		Tiling(o.Tiling).
		Padding(o.Padding).
		PaddingTop(o.PaddingTop).
		PaddingOuter(o.PaddingOuter).
		Round(o.Round)
}

// Apply validates opts and runs the selected layout on a copy of root.
func Apply[T any](opts Options, root *hierarchy.Node[T]) (*hierarchy.Node[T], error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	switch opts.Kind {
	case KindCluster:
		return ApplyCluster(opts.Cluster(), root), nil
	case KindTreemap:
		return ApplyTreemap(opts.Treemap(), root), nil
	default:
		return ApplyTree(opts.Tree(), root), nil
	}
}

// Link is a parent→child edge between two positioned nodes.
type Link[T any] struct {
	Source hierarchy.PositionedNode[T]
	Target hierarchy.PositionedNode[T]
}

// Links returns every parent→child edge of the subtree, grouped by parent in
// pre-order and then by child position.
func Links[T any](root *hierarchy.Node[T]) []Link[T] {
	var links []Link[T]
	for n := range root.All() {
		src := hierarchy.Project(n)
		for _, c := range n.Children {
			links = append(links, Link[T]{Source: src, Target: hierarchy.Project(c)})
		}
	}
	return links
}
