package hierarchy_test

import (
	"fmt"

	"github.com/matzehuels/arbor/pkg/hierarchy"
)

func ExampleNode_Sum() {
	root := hierarchy.Branch("company")

	sales := hierarchy.Branch("sales")
	sales.AddChild(hierarchy.Leaf("domestic", 100))
	sales.AddChild(hierarchy.Leaf("international", 150))

	eng := hierarchy.Branch("engineering")
	eng.AddChild(hierarchy.Leaf("frontend", 80))
	eng.AddChild(hierarchy.Leaf("backend", 120))

	root.AddChildren(sales, eng)

	fmt.Println("total:", root.Sum())
	fmt.Println("sales:", sales.Value)
	fmt.Println("engineering:", eng.Value)
	// Output:
	// total: 450
	// sales: 250
	// engineering: 200
}

func ExampleNode_All() {
	root := hierarchy.Branch("root")
	a := hierarchy.Branch("a")
	a.AddChildren(hierarchy.Leaf("a1", 1), hierarchy.Leaf("a2", 1))
	root.AddChildren(a, hierarchy.Leaf("b", 1))
	root.EachBefore()

	for n := range root.All() {
		fmt.Printf("%d %s\n", n.Depth, n.Data)
	}
	// Output:
	// 0 root
	// 1 a
	// 2 a1
	// 2 a2
	// 1 b
}

func ExampleFlatten() {
	root := hierarchy.Branch("root")
	a := hierarchy.Branch("a")
	a.AddChild(hierarchy.Leaf("a1", 1))
	root.AddChild(a)

	f := hierarchy.Flatten(root)
	for _, i := range f.Path(2) {
		fmt.Println(f.Nodes[i].Data)
	}
	// Output:
	// root
	// a
	// a1
}
