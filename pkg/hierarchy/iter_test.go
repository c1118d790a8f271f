package hierarchy

import (
	"slices"
	"testing"
)

func TestIteratorPreOrder(t *testing.T) {
	tree := sampleTree()

	var got []string
	it := tree.Iter()
	for {
		n, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, n.Data)
	}

	want := []string{"root", "child1", "leaf1", "leaf2", "child2"}
	if !slices.Equal(got, want) {
		t.Errorf("pre-order = %v, want %v", got, want)
	}

	if _, ok := it.Next(); ok {
		t.Error("exhausted iterator should stay exhausted")
	}
}

func TestAllRestartable(t *testing.T) {
	tree := sampleTree()
	seq := tree.All()

	first := labels(slices.Collect(seq))
	second := labels(slices.Collect(seq))
	if !slices.Equal(first, second) {
		t.Errorf("second traversal %v differs from first %v", second, first)
	}
}

func TestAllEarlyStop(t *testing.T) {
	tree := sampleTree()
	var got []string
	for n := range tree.All() {
		got = append(got, n.Data)
		if n.Data == "child1" {
			break
		}
	}
	if !slices.Equal(got, []string{"root", "child1"}) {
		t.Errorf("got %v, want [root child1]", got)
	}
}

func TestWalk(t *testing.T) {
	tree := sampleTree()
	count := 0
	tree.Walk(func(n *Node[string]) bool {
		count++
		return n.Data != "leaf1"
	})
	if count != 3 {
		t.Errorf("Walk visited %d nodes before stopping, want 3", count)
	}
}

func TestLeaves(t *testing.T) {
	tree := sampleTree()
	got := labels(tree.Leaves())
	want := []string{"leaf1", "leaf2", "child2"}
	if !slices.Equal(got, want) {
		t.Errorf("Leaves() = %v, want %v", got, want)
	}

	single := Leaf("only", 1)
	if n := len(single.Leaves()); n != 1 {
		t.Errorf("single node Leaves() len = %d, want 1", n)
	}
}

func TestIteratorDeepChain(t *testing.T) {
	root := Branch(0)
	cur := root
	for i := 1; i < 10000; i++ {
		next := Branch(i)
		cur.AddChild(next)
		cur = next
	}

	n := 0
	for range root.All() {
		n++
	}
	if n != 10000 {
		t.Errorf("visited %d nodes, want 10000", n)
	}
}
