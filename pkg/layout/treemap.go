package layout

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/hierarchy"
)

// Tiling selects how a treemap divides a parent's area among its children.
type Tiling string

const (
	// TilingSquarify packs rows of children so rectangles stay close to
	// square. Children are placed in descending value order.
	TilingSquarify Tiling = "squarify"
	// TilingBinary splits children into two value-balanced groups along the
	// longer side, recursively.
	TilingBinary Tiling = "binary"
	// TilingSlice stacks children top to bottom, each spanning the full width.
	TilingSlice Tiling = "slice"
	// TilingDice places children left to right, each spanning the full height.
	TilingDice Tiling = "dice"
	// TilingSliceDice slices at even depths and dices at odd depths.
	TilingSliceDice Tiling = "slice-dice"
)

var tilings = []Tiling{TilingSquarify, TilingBinary, TilingSlice, TilingDice, TilingSliceDice}

// ParseTiling converts a name to a Tiling. The empty string selects
// TilingSquarify.
func ParseTiling(s string) (Tiling, error) {
	if s == "" {
		return TilingSquarify, nil
	}
	for _, t := range tilings {
		if string(t) == s {
			return t, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidTiling, "unknown tiling %q (must be one of: squarify, binary, slice, dice, slice-dice)", s)
}

// Treemap configures the space-filling rectangle layout.
type Treemap struct {
	width, height float64
	padding       float64
	paddingTop    float64
	paddingOuter  float64
	tiling        Tiling
	round         bool
}

// NewTreemap returns a squarified configuration over a 1×1 frame without
// padding.
func NewTreemap() Treemap {
	return Treemap{width: 1, height: 1, tiling: TilingSquarify}
}

// Size sets the frame.
func (m Treemap) Size(width, height float64) Treemap {
	m.width, m.height = width, height
	return m
}

// Padding sets the inset applied inside every parent, clamped to >= 0.
func (m Treemap) Padding(p float64) Treemap {
	m.padding = max(p, 0)
	return m
}

// PaddingTop sets extra space reserved at the top of every parent, typically
// for a label strip. Clamped to >= 0.
func (m Treemap) PaddingTop(p float64) Treemap {
	m.paddingTop = max(p, 0)
	return m
}

// PaddingOuter sets the inset around the root, clamped to >= 0.
func (m Treemap) PaddingOuter(p float64) Treemap {
	m.paddingOuter = max(p, 0)
	return m
}

// Tiling sets the tiling method.
func (m Treemap) Tiling(t Tiling) Treemap {
	m.tiling = t
	return m
}

// Round enables rounding of every rectangle to whole units.
func (m Treemap) Round(round bool) Treemap {
	m.round = round
	return m
}

// Dimensions returns the frame.
func (m Treemap) Dimensions() (width, height float64) { return m.width, m.height }

// Method returns the tiling method.
func (m Treemap) Method() Tiling { return m.tiling }

// ApplyTreemap lays out a deep copy of root as a treemap and returns it.
// Values are aggregated with Sum on the copy first, so internal values on
// the input are ignored.
func ApplyTreemap[T any](m Treemap, root *hierarchy.Node[T]) *hierarchy.Node[T] {
	tree := root.Clone()
	tree.Sum()
	tree.EachBefore()

	tree.X = m.paddingOuter
	tree.Y = m.paddingOuter
	tree.Width = max(m.width-2*m.paddingOuter, 0)
	tree.RectHeight = max(m.height-2*m.paddingOuter, 0)

	tileNode(m, tree)

	if m.round {
		for n := range tree.All() {
			n.X = math.Round(n.X)
			n.Y = math.Round(n.Y)
			n.Width = math.Round(n.Width)
			n.RectHeight = math.Round(n.RectHeight)
		}
	}
	return tree
}

// rect is an axis-aligned area given by its corners.
type rect struct{ x0, y0, x1, y1 float64 }

func (r rect) w() float64 { return r.x1 - r.x0 }
func (r rect) h() float64 { return r.y1 - r.y0 }

func place[T any](n *hierarchy.Node[T], x, y, w, h float64) {
	n.X, n.Y, n.Width, n.RectHeight = x, y, w, h
}

func tileNode[T any](m Treemap, n *hierarchy.Node[T]) {
	if n.IsLeaf() {
		return
	}
	area := rect{
		x0: n.X + m.padding,
		y0: n.Y + m.padding + m.paddingTop,
		x1: n.X + n.Width - m.padding,
		y1: n.Y + n.RectHeight - m.padding,
	}
	if area.x1 <= area.x0 || area.y1 <= area.y0 || n.Value <= 0 {
		return
	}

	switch m.tiling {
	case TilingBinary:
		tileBinary(n.Children, area)
	case TilingSlice:
		tileSlice(n.Children, n.Value, area)
	case TilingDice:
		tileDice(n.Children, n.Value, area)
	case TilingSliceDice:
		if n.Depth%2 == 0 {
			tileSlice(n.Children, n.Value, area)
		} else {
			tileDice(n.Children, n.Value, area)
		}
	default:
		tileSquarify(n.Children, n.Value, area)
	}

	for _, c := range n.Children {
		tileNode(m, c)
	}
}

// tileSlice stacks children vertically in order.
func tileSlice[T any](kids []*hierarchy.Node[T], total float64, r rect) {
	y := r.y0
	for _, c := range kids {
		h := c.Value / total * r.h()
		place(c, r.x0, y, r.w(), h)
		y += h
	}
}

// tileDice lines children up horizontally in order.
func tileDice[T any](kids []*hierarchy.Node[T], total float64, r rect) {
	x := r.x0
	for _, c := range kids {
		w := c.Value / total * r.w()
		place(c, x, r.y0, w, r.h())
		x += w
	}
}

// tileBinary splits kids at the point closest to half the total value and
// recurses, cutting across the longer side of r.
func tileBinary[T any](kids []*hierarchy.Node[T], r rect) {
	switch len(kids) {
	case 0:
		return
	case 1:
		place(kids[0], r.x0, r.y0, r.w(), r.h())
		return
	}

	var total float64
	for _, c := range kids {
		total += c.Value
	}

	split := len(kids) - 1
	var left float64
	for i, c := range kids {
		left += c.Value
		if left >= total/2 {
			split = i + 1
			break
		}
	}
	split = min(max(split, 1), len(kids)-1)

	left = 0
	for _, c := range kids[:split] {
		left += c.Value
	}
	ratio := float64(split) / float64(len(kids))
	if total > 0 {
		ratio = left / total
	}

	if r.w() > r.h() {
		xs := r.x0 + r.w()*ratio
		tileBinary(kids[:split], rect{r.x0, r.y0, xs, r.y1})
		tileBinary(kids[split:], rect{xs, r.y0, r.x1, r.y1})
		return
	}
	ys := r.y0 + r.h()*ratio
	tileBinary(kids[:split], rect{r.x0, r.y0, r.x1, ys})
	tileBinary(kids[split:], rect{r.x0, ys, r.x1, r.y1})
}

// tileSquarify lays children out in rows along the shorter side of the
// remaining area, closing a row as soon as adding the next child would make
// its worst aspect ratio worse. Children without a positive value get an
// empty rectangle at the area's origin.
func tileSquarify[T any](kids []*hierarchy.Node[T], total float64, r rect) {
	order := make([]*hierarchy.Node[T], 0, len(kids))
	for _, c := range kids {
		if c.Value > 0 {
			order = append(order, c)
		} else {
			place(c, r.x0, r.y0, 0, 0)
		}
	}
	slices.SortStableFunc(order, func(a, b *hierarchy.Node[T]) int {
		return cmp.Compare(b.Value, a.Value)
	})

	scale := r.w() * r.h() / total
	for start := 0; start < len(order); {
		side := min(r.w(), r.h())

		end := start + 1
		rowArea := order[start].Value * scale
		worst := worstRatio(order[start:end], rowArea, scale, side)
		for end < len(order) {
			nextArea := rowArea + order[end].Value*scale
			nextWorst := worstRatio(order[start:end+1], nextArea, scale, side)
			if nextWorst > worst {
				break
			}
			rowArea, worst = nextArea, nextWorst
			end++
		}

		r = layoutRow(order[start:end], rowArea, scale, r, end == len(order))
		start = end
	}
}

// worstRatio returns the largest aspect ratio in a row of the given total
// area laid against a side of length side.
func worstRatio[T any](row []*hierarchy.Node[T], area, scale, side float64) float64 {
	if area <= 0 || side <= 0 {
		return math.Inf(1)
	}
	lo, hi := math.Inf(1), 0.0
	for _, c := range row {
		a := c.Value * scale
		lo, hi = min(lo, a), max(hi, a)
	}
	s2, a2 := side*side, area*area
	return max(s2*hi/a2, a2/(s2*lo))
}

// layoutRow positions one row and returns what is left of r. The final row
// fills the remainder exactly to avoid floating-point slivers.
func layoutRow[T any](row []*hierarchy.Node[T], area, scale float64, r rect, last bool) rect {
	if r.w() >= r.h() {
		// Column on the left edge, children stacked top to bottom.
		thick := area / r.h()
		if last {
			thick = r.w()
		}
		y := r.y0
		for i, c := range row {
			h := c.Value * scale / area * r.h()
			if i == len(row)-1 {
				h = r.y1 - y
			}
			place(c, r.x0, y, thick, h)
			y += h
		}
		return rect{r.x0 + thick, r.y0, r.x1, r.y1}
	}

	// Row along the top edge, children left to right.
	thick := area / r.w()
	if last {
		thick = r.h()
	}
	x := r.x0
	for i, c := range row {
		w := c.Value * scale / area * r.w()
		if i == len(row)-1 {
			w = r.x1 - x
		}
		place(c, x, r.y0, w, thick)
		x += w
	}
	return rect{r.x0, r.y0 + thick, r.x1, r.y1}
}
