package render

import "github.com/matzehuels/arbor/pkg/tree"

// JSON renders the layout document as indented JSON.
func JSON(l tree.Layout) ([]byte, error) {
	return tree.MarshalLayout(l)
}
