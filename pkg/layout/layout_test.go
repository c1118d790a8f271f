package layout

import (
	"testing"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/hierarchy"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"", KindTree, false},
		{"tree", KindTree, false},
		{"cluster", KindCluster, false},
		{"treemap", KindTreemap, false},
		{"radial", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidLayout) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidLayout)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if o.Kind != KindTree || o.Tiling != TilingSquarify {
		t.Errorf("kind/tiling = %q/%q, want tree/squarify", o.Kind, o.Tiling)
	}
	if *o.Width != DefaultWidth || *o.Height != DefaultHeight {
		t.Errorf("frame = %v×%v, want %v×%v", *o.Width, *o.Height, DefaultWidth, DefaultHeight)
	}
	if *o.SeparationSiblings != DefaultSeparationSiblings || *o.SeparationCousins != DefaultSeparationCousins {
		t.Errorf("separations = %v, %v", *o.SeparationSiblings, *o.SeparationCousins)
	}
	if *o.Separation != DefaultSeparation {
		t.Errorf("separation = %v, want %v", *o.Separation, DefaultSeparation)
	}
	if o.Fixed() {
		t.Error("Fixed() = true without node size")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad kind", Options{Kind: "radial"}, errors.ErrCodeInvalidLayout},
		{"bad tiling", Options{Tiling: "spiral"}, errors.ErrCodeInvalidTiling},
		{"negative width", Options{Width: Float(-1)}, errors.ErrCodeInvalidInput},
		{"negative separation", Options{SeparationCousins: Float(-1)}, errors.ErrCodeInvalidInput},
		{"node width alone", Options{NodeWidth: 10}, errors.ErrCodeInvalidLayout},
		{"node height alone", Options{NodeHeight: 10}, errors.ErrCodeInvalidLayout},
		{"negative padding", Options{Padding: -2}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestApplyDispatch(t *testing.T) {
	root := sampleTree()

	tests := []struct {
		kind Kind
		want func() map[string]point
	}{
		{KindTree, func() map[string]point {
			out := ApplyTree(NewTree().Size(100, 100), root)
			return positions(out)
		}},
		{KindCluster, func() map[string]point {
			out := ApplyCluster(NewCluster().Size(100, 100), root)
			return positions(out)
		}},
		{KindTreemap, func() map[string]point {
			out := ApplyTreemap(NewTreemap().Size(100, 100), root)
			return positions(out)
		}},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			out, err := Apply(Options{Kind: tt.kind, Width: Float(100), Height: Float(100)}, root)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			checkPositions(t, out, tt.want())
		})
	}
}

func TestApplyFixedMode(t *testing.T) {
	out, err := Apply(Options{NodeWidth: 10, NodeHeight: 20}, sampleTree())
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	checkPositions(t, out, map[string]point{"leaf2": {10, 40}, "root": {15, 0}})
}

func TestApplyRejectsInvalidOptions(t *testing.T) {
	out, err := Apply(Options{Kind: "radial"}, sampleTree())
	if err == nil || out != nil {
		t.Errorf("Apply() = %v, %v, want nil and an error", out, err)
	}
}

func TestApplyKeepsExplicitZero(t *testing.T) {
	pair := func() *hierarchy.Node[string] {
		return hierarchy.Branch("r").WithChildren(hierarchy.Leaf("a", 1), hierarchy.Leaf("b", 1))
	}
	frame := Options{Width: Float(100), Height: Float(100)}
	with := func(edit func(*Options)) Options {
		o := frame.Clone()
		edit(&o)
		return o
	}

	tests := []struct {
		name string
		opts Options
		root func() *hierarchy.Node[string]
		want func(*hierarchy.Node[string]) *hierarchy.Node[string]
	}{
		{"sibling separation", with(func(o *Options) { o.SeparationSiblings = Float(0) }), pair,
			func(r *hierarchy.Node[string]) *hierarchy.Node[string] {
				return ApplyTree(NewTree().Size(100, 100).SeparationSiblings(0), r)
			}},
		{"cousin separation", with(func(o *Options) { o.SeparationCousins = Float(0) }), sampleTree,
			func(r *hierarchy.Node[string]) *hierarchy.Node[string] {
				return ApplyTree(NewTree().Size(100, 100).SeparationCousins(0), r)
			}},
		{"cluster separation", with(func(o *Options) { o.Kind = KindCluster; o.Separation = Float(0) }), sampleTree,
			func(r *hierarchy.Node[string]) *hierarchy.Node[string] {
				return ApplyCluster(NewCluster().Size(100, 100).Separation(0), r)
			}},
		{"zero frame", Options{Width: Float(0), Height: Float(0)}, pair,
			func(r *hierarchy.Node[string]) *hierarchy.Node[string] {
				return ApplyTree(NewTree().Size(0, 0), r)
			}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Apply(tt.opts, tt.root())
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			checkPositions(t, out, positions(tt.want(tt.root())))
		})
	}

	out, err := Apply(Options{Width: Float(0), Height: Float(0)}, pair())
	if err != nil {
		t.Fatal(err)
	}
	checkPositions(t, out, map[string]point{"r": {0, 0}, "a": {0, 0}, "b": {0, 0}})
}

func TestOptionsClone(t *testing.T) {
	o := Options{Width: Float(200), Separation: Float(0)}
	c := o.Clone()
	*c.Width = 50
	*c.Separation = 3

	if *o.Width != 200 || *o.Separation != 0 {
		t.Errorf("original changed through clone: width=%v separation=%v", *o.Width, *o.Separation)
	}
	if c.Height != nil {
		t.Errorf("Clone set Height = %v, want nil", *c.Height)
	}
}

func TestOptionsAccessorsBeforeValidation(t *testing.T) {
	var o Options
	if w, h := o.Frame(); w != DefaultWidth || h != DefaultHeight {
		t.Errorf("Frame() = %v×%v, want defaults", w, h)
	}
	if s, c := o.TreeSeparations(); s != DefaultSeparationSiblings || c != DefaultSeparationCousins {
		t.Errorf("TreeSeparations() = %v, %v", s, c)
	}
	o.Separation = Float(0)
	if got := o.ClusterSeparation(); got != 0 {
		t.Errorf("ClusterSeparation() = %v, want 0", got)
	}
}

func TestLinks(t *testing.T) {
	out := ApplyTree(NewTree().Size(100, 100), sampleTree())
	links := Links(out)

	if got, want := len(links), out.Count()-1; got != want {
		t.Fatalf("len(Links) = %d, want %d", got, want)
	}
	want := [][2]string{{"root", "child1"}, {"root", "child2"}, {"child1", "leaf1"}, {"child1", "leaf2"}}
	for i, l := range links {
		if l.Source.Data != want[i][0] || l.Target.Data != want[i][1] {
			t.Errorf("link %d = %s→%s, want %s→%s", i, l.Source.Data, l.Target.Data, want[i][0], want[i][1])
		}
	}
	if !approx(links[0].Target.X, 20) || !approx(links[0].Target.Y, 50) {
		t.Errorf("link target not positioned: %+v", links[0].Target)
	}
}

func positions(root *hierarchy.Node[string]) map[string]point {
	m := make(map[string]point)
	for n := range root.All() {
		m[n.Data] = point{n.X, n.Y}
	}
	return m
}
