package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/arbor/pkg/tree"
)

// Graphviz layout engines accepted by RenderDOTSVG.
const (
	EngineDot   = "dot"
	EngineNeato = "neato"
)

// pointsPerUnit scales layout units to Graphviz points.
const pointsPerUnit = 1.0

// ToDOT converts a layout to Graphviz DOT. Every node carries its computed
// position as a pinned pos attribute (y flipped, Graphviz grows upwards), so
// the neato engine reproduces the layout while dot lays the tree out afresh.
func ToDOT(l tree.Layout) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  ordering=out;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.1,0.05\"];\n")
	buf.WriteString("\n")

	for _, n := range l.Nodes {
		x, y := n.X, n.Y
		if l.IsTreemap() {
			x, y = n.X+n.Width/2, n.Y+n.Height/2
		}
		fmt.Fprintf(&buf, "  %q [label=%q, pos=\"%.2f,%.2f!\"];\n",
			n.ID, n.DisplayLabel(), x*pointsPerUnit, (l.Height-y)*pointsPerUnit)
	}

	buf.WriteString("\n")
	for _, n := range l.Nodes[1:] {
		fmt.Fprintf(&buf, "  %q -> %q;\n", l.Nodes[n.Parent].ID, n.ID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderDOTSVG renders a DOT graph to SVG using Graphviz. engine is
// EngineDot or EngineNeato; empty means EngineDot.
func RenderDOTSVG(ctx context.Context, dot, engine string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	switch engine {
	case "", EngineDot:
		gv.SetLayout(graphviz.DOT)
	case EngineNeato:
		gv.SetLayout(graphviz.NEATO)
	default:
		return nil, fmt.Errorf("unknown graphviz engine %q (want dot or neato)", engine)
	}

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's svg element with one whose viewBox
// starts at the origin and whose size matches it, keeping output scalable.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
