package hierarchy

import (
	"slices"
	"testing"
)

// sampleTree builds root -> child1 -> {leaf1(10), leaf2(20)}, root -> child2(30).
func sampleTree() *Node[string] {
	root := Branch("root")
	child1 := Branch("child1")
	child1.AddChild(Leaf("leaf1", 10))
	child1.AddChild(Leaf("leaf2", 20))
	root.AddChild(child1)
	root.AddChild(Leaf("child2", 30))
	return root
}

func labels(nodes []*Node[string]) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Data
	}
	return out
}

func TestNew(t *testing.T) {
	n := New("test", 42)
	if n.Data != "test" {
		t.Errorf("Data = %q, want %q", n.Data, "test")
	}
	if n.Value != 42 {
		t.Errorf("Value = %v, want 42", n.Value)
	}
	if !n.IsLeaf() {
		t.Error("new node should be a leaf")
	}
}

func TestAddChild(t *testing.T) {
	parent := Branch("parent")
	parent.AddChild(Leaf("child", 10))

	if parent.ChildCount() != 1 {
		t.Errorf("ChildCount() = %d, want 1", parent.ChildCount())
	}
	if parent.IsLeaf() {
		t.Error("parent with a child should not be a leaf")
	}
	if parent.Depth != 0 || parent.Height != 0 {
		t.Error("AddChild should not refresh depth/height")
	}
}

func TestAddChildrenAndWithChildren(t *testing.T) {
	n := Branch("n")
	n.AddChildren(Leaf("a", 1), Leaf("b", 2))
	if got := labels(n.Children); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("children = %v, want [a b]", got)
	}

	n.WithChildren(Leaf("c", 3))
	if got := labels(n.Children); !slices.Equal(got, []string{"c"}) {
		t.Errorf("children after WithChildren = %v, want [c]", got)
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		name       string
		tree       *Node[string]
		wantCount  int
		wantLeaves int
	}{
		{"single", Leaf("x", 1), 1, 1},
		{"sample", sampleTree(), 5, 3},
		{"chain", Branch("a").WithChildren(Branch("b").WithChildren(Leaf("c", 1))), 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tree.Count(); got != tt.wantCount {
				t.Errorf("Count() = %d, want %d", got, tt.wantCount)
			}
			if got := tt.tree.LeafCount(); got != tt.wantLeaves {
				t.Errorf("LeafCount() = %d, want %d", got, tt.wantLeaves)
			}
		})
	}
}

func TestCountMatchesIterator(t *testing.T) {
	tree := sampleTree()

	visited := 0
	leaves := 0
	seen := map[*Node[string]]int{}
	for n := range tree.All() {
		visited++
		seen[n]++
		if n.IsLeaf() {
			leaves++
		}
	}

	if visited != tree.Count() {
		t.Errorf("iterator visited %d nodes, Count() = %d", visited, tree.Count())
	}
	if leaves != tree.LeafCount() {
		t.Errorf("iterator saw %d leaves, LeafCount() = %d", leaves, tree.LeafCount())
	}
	for n, c := range seen {
		if c != 1 {
			t.Errorf("node %q visited %d times", n.Data, c)
		}
	}
}

func TestSum(t *testing.T) {
	tree := sampleTree()

	if total := tree.Sum(); total != 60 {
		t.Errorf("Sum() = %v, want 60", total)
	}
	if tree.Value != 60 {
		t.Errorf("root.Value = %v, want 60", tree.Value)
	}
	if tree.Children[0].Value != 30 {
		t.Errorf("child1.Value = %v, want 30", tree.Children[0].Value)
	}
	if tree.Children[1].Value != 30 {
		t.Errorf("child2 (leaf) Value = %v, want 30", tree.Children[1].Value)
	}
}

func TestSumIdempotent(t *testing.T) {
	tree := sampleTree()
	first := tree.Sum()
	second := tree.Sum()
	if first != second {
		t.Errorf("Sum() not idempotent: %v then %v", first, second)
	}
}

func TestSumOverwritesInternalValue(t *testing.T) {
	n := New("internal", 1000)
	n.AddChild(Leaf("a", 1))
	if got := n.Sum(); got != 1 {
		t.Errorf("Sum() = %v, want 1", got)
	}
	if n.Value != 1 {
		t.Errorf("internal Value = %v, want 1 (overwritten)", n.Value)
	}
}

func TestEachBefore(t *testing.T) {
	tree := sampleTree()
	tree.EachBefore()

	checks := []struct {
		name   string
		node   *Node[string]
		depth  int
		height int
	}{
		{"root", tree, 0, 2},
		{"child1", tree.Children[0], 1, 1},
		{"leaf1", tree.Children[0].Children[0], 2, 0},
		{"leaf2", tree.Children[0].Children[1], 2, 0},
		{"child2", tree.Children[1], 1, 0},
	}
	for _, c := range checks {
		if c.node.Depth != c.depth {
			t.Errorf("%s.Depth = %d, want %d", c.name, c.node.Depth, c.depth)
		}
		if c.node.Height != c.height {
			t.Errorf("%s.Height = %d, want %d", c.name, c.node.Height, c.height)
		}
	}
	if got := tree.MaxDepth(); got != 2 {
		t.Errorf("MaxDepth() = %d, want 2", got)
	}
}

func TestEachBeforeRefreshesAfterReshape(t *testing.T) {
	tree := sampleTree()
	tree.EachBefore()

	leaf := tree.Children[1]
	leaf.AddChild(Branch("x").WithChildren(Leaf("y", 1)))
	tree.EachBefore()

	if tree.Height != 3 {
		t.Errorf("root.Height = %d, want 3", tree.Height)
	}
	if got := leaf.Children[0].Children[0].Depth; got != 3 {
		t.Errorf("y.Depth = %d, want 3", got)
	}
}

func TestSortByValue(t *testing.T) {
	root := Branch("root")
	root.AddChildren(Leaf("small", 1), Leaf("big", 50), Leaf("mid", 10))
	root.SortByValue()

	if got := labels(root.Children); !slices.Equal(got, []string{"big", "mid", "small"}) {
		t.Errorf("order = %v, want [big mid small]", got)
	}
}

func TestSortByValueRecursiveAndTies(t *testing.T) {
	tree := sampleTree()
	tree.Sum()
	tree.SortByValue()

	// child1 and child2 both total 30; stable sort keeps insertion order.
	if got := labels(tree.Children); !slices.Equal(got, []string{"child1", "child2"}) {
		t.Errorf("root children = %v, want [child1 child2]", got)
	}
	if got := labels(tree.Children[0].Children); !slices.Equal(got, []string{"leaf2", "leaf1"}) {
		t.Errorf("child1 children = %v, want [leaf2 leaf1]", got)
	}
}

func TestSortByHeight(t *testing.T) {
	tree := sampleTree()
	tree.EachBefore()
	tree.SortByHeight()

	if got := labels(tree.Children); !slices.Equal(got, []string{"child2", "child1"}) {
		t.Errorf("order = %v, want [child2 child1]", got)
	}
}

func TestClone(t *testing.T) {
	tree := sampleTree()
	tree.EachBefore()
	tree.Children[0].X = 12.5
	tree.Children[0].Radius = 3

	cp := tree.Clone()
	if cp == tree {
		t.Fatal("Clone returned the same pointer")
	}
	if cp.Count() != tree.Count() {
		t.Errorf("clone Count() = %d, want %d", cp.Count(), tree.Count())
	}
	if cp.Children[0].X != 12.5 || cp.Children[0].Radius != 3 {
		t.Error("clone should preserve geometry fields")
	}
	if cp.Height != 2 {
		t.Errorf("clone Height = %d, want 2", cp.Height)
	}

	cp.Children[0].Children[0].Value = 999
	cp.Children[0].AddChild(Leaf("extra", 1))
	if tree.Children[0].Children[0].Value != 10 {
		t.Error("mutating clone changed original value")
	}
	if tree.Children[0].ChildCount() != 2 {
		t.Error("mutating clone changed original structure")
	}
}

func TestCloneFunc(t *testing.T) {
	type payload struct{ tags []string }
	root := New(payload{tags: []string{"a"}}, 1)

	cp := root.CloneFunc(func(p payload) payload {
		return payload{tags: slices.Clone(p.tags)}
	})
	cp.Data.tags[0] = "changed"

	if root.Data.tags[0] != "a" {
		t.Error("CloneFunc should deep-copy payload through fn")
	}
}
