package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/arbor/pkg/tree"
)

// Defaults for SVG output.
const (
	DefaultNodeRadius = 4.0
	DefaultMargin     = 20.0
)

// depthFills colours treemap rectangles by depth, cycling after the last.
var depthFills = []string{"#f4f1de", "#e07a5f", "#3d405b", "#81b29a", "#f2cc8f", "#a8dadc"}

// SVGOption customises SVG output.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels bool
	radius float64
	margin float64
}

// WithLabels draws node labels.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithNodeRadius sets the circle radius for nodes without a radius of their
// own. Ignored for treemaps.
func WithNodeRadius(radius float64) SVGOption {
	return func(r *svgRenderer) { r.radius = max(radius, 0) }
}

// WithMargin sets the blank border around the frame.
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = max(m, 0) } }

// SVG renders a layout document.
func SVG(l tree.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{radius: DefaultNodeRadius, margin: DefaultMargin}
	for _, opt := range opts {
		opt(&r)
	}

	m := r.margin
	w, h := l.Width+2*m, l.Height+2*m

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		-m, -m, w, h, w, h)
	buf.WriteString(`  <style>text { font-family: sans-serif; font-size: 11px; fill: #222; }</style>` + "\n")

	if l.IsTreemap() {
		renderRects(&buf, l, r)
	} else {
		renderLinks(&buf, l)
		renderCircles(&buf, l, r)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderRects(buf *bytes.Buffer, l tree.Layout, r svgRenderer) {
	for _, n := range l.Nodes {
		fill := depthFills[n.Depth%len(depthFills)]
		fmt.Fprintf(buf, `  <rect id="node-%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="#fff" stroke-width="1"><title>%s (%g)</title></rect>`+"\n",
			html.EscapeString(n.ID), n.X, n.Y, n.Width, n.Height, fill, html.EscapeString(n.DisplayLabel()), n.Value)
	}
	if !r.labels {
		return
	}
	for _, n := range l.Nodes {
		// Skip rectangles too small to hold a line of text.
		if !n.Leaf || n.Width < 30 || n.Height < 14 {
			continue
		}
		fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f">%s</text>`+"\n", n.X+3, n.Y+12, html.EscapeString(n.DisplayLabel()))
	}
}

func renderLinks(buf *bytes.Buffer, l tree.Layout) {
	for _, n := range l.Nodes[1:] {
		p := l.Nodes[n.Parent]
		midY := (p.Y + n.Y) / 2
		fmt.Fprintf(buf, `  <path d="M %.2f %.2f C %.2f %.2f, %.2f %.2f, %.2f %.2f" fill="none" stroke="#999" stroke-width="1.5"/>`+"\n",
			p.X, p.Y, p.X, midY, n.X, midY, n.X, n.Y)
	}
}

func renderCircles(buf *bytes.Buffer, l tree.Layout, r svgRenderer) {
	for _, n := range l.Nodes {
		radius := n.Radius
		if radius <= 0 {
			radius = r.radius
		}
		fill := "#fff"
		if n.Leaf {
			fill = "#3d405b"
		}
		fmt.Fprintf(buf, `  <circle id="node-%s" cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="#3d405b" stroke-width="1.5"><title>%s</title></circle>`+"\n",
			html.EscapeString(n.ID), n.X, n.Y, radius, fill, html.EscapeString(n.DisplayLabel()))
		if r.labels {
			fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" text-anchor="middle">%s</text>`+"\n",
				n.X, n.Y-radius-3, html.EscapeString(n.DisplayLabel()))
		}
	}
}
