package pipeline

import (
	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/hierarchy"
	"github.com/matzehuels/arbor/pkg/layout"
	"github.com/matzehuels/arbor/pkg/tree"
)

// Prepare returns a copy of root with children ordered by sort. The input is
// never modified. SortValue aggregates values with Sum first, so branches
// are ordered by their subtree totals.
func Prepare(root *hierarchy.Node[tree.Payload], sort string) *hierarchy.Node[tree.Payload] {
	work := tree.Clone(root)
	switch sort {
	case SortValue:
		work.Sum()
		work.SortByValue()
	case SortHeight:
		work.EachBefore()
		work.SortByHeight()
	}
	return work
}

// ComputeLayout runs the layout stage without caching.
func ComputeLayout(root *hierarchy.Node[tree.Payload], opts Options) (tree.Layout, error) {
	if root == nil {
		return tree.Layout{}, errors.New(errors.ErrCodeInvalidTree, "tree is empty")
	}
	if err := opts.ValidateForLayout(); err != nil {
		return tree.Layout{}, err
	}

	positioned, err := layout.Apply(opts.Options, Prepare(root, opts.Sort))
	if err != nil {
		return tree.Layout{}, err
	}

	width, height := opts.Frame()
	if opts.Kind != layout.KindTreemap {
		for n := range positioned.All() {
			n.Radius = opts.NodeRadius
		}
	}
	if opts.Kind == layout.KindTree && opts.Fixed() {
		width, height = 0, 0
		for n := range positioned.All() {
			width, height = max(width, n.X), max(height, n.Y)
		}
	}

	return tree.FromHierarchy(opts.Kind, width, height, positioned), nil
}

// ComputeStats summarises a tree. TotalValue is the sum over leaves.
func ComputeStats(root *hierarchy.Node[tree.Payload]) Stats {
	if root == nil {
		return Stats{}
	}
	work := tree.Clone(root)
	work.EachBefore()
	return Stats{
		NodeCount:  work.Count(),
		LeafCount:  work.LeafCount(),
		MaxDepth:   work.MaxDepth(),
		TotalValue: work.Sum(),
	}
}
