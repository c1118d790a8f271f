package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/layout"
	"github.com/matzehuels/arbor/pkg/pipeline"
)

// layoutFlags holds the layout flags of a command. Only flags the user set
// override the configuration file.
type layoutFlags struct {
	kind   string
	tiling string
	opts   pipeline.Options

	// Targets for the optional layout fields, copied as pointers when set.
	width, height                         float64
	separationSiblings, separationCousins float64
	separation                            float64

	noCache bool
	refresh bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.kind, "kind", "k", "", "layout: tree (default), cluster, treemap")
	fs.Float64Var(&f.width, "width", 0, "frame width (default 800)")
	fs.Float64Var(&f.height, "height", 0, "frame height (default 600)")
	fs.Float64Var(&f.opts.NodeWidth, "node-width", 0, "tree: fixed horizontal spacing per unit (with --node-height)")
	fs.Float64Var(&f.opts.NodeHeight, "node-height", 0, "tree: fixed vertical spacing per level (with --node-width)")
	fs.Float64Var(&f.separationSiblings, "separation-siblings", 0, "tree: gap between adjacent leaves (default 1)")
	fs.Float64Var(&f.separationCousins, "separation-cousins", 0, "tree: gap after a centred parent (default 2)")
	fs.Float64Var(&f.separation, "separation", 0, "cluster: gap between consecutive leaves (default 1)")
	fs.StringVar(&f.tiling, "tiling", "", "treemap: squarify (default), binary, slice, dice, slice-dice")
	fs.Float64Var(&f.opts.Padding, "padding", 0, "treemap: inset inside every parent")
	fs.Float64Var(&f.opts.PaddingTop, "padding-top", 0, "treemap: extra space at the top of every parent")
	fs.Float64Var(&f.opts.PaddingOuter, "padding-outer", 0, "treemap: inset around the root")
	fs.BoolVar(&f.opts.Round, "round", false, "treemap: round rectangles to whole units")
	fs.StringVar(&f.opts.Sort, "sort", "", "order children before layout: value, height")
	fs.Float64Var(&f.opts.NodeRadius, "node-radius", 0, "tree/cluster: node circle radius (default 4)")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable the layout cache")
	fs.BoolVar(&f.refresh, "refresh", false, "recompute even when cached")
}

// apply copies every flag the user set onto dst.
func (f *layoutFlags) apply(cmd *cobra.Command, dst *pipeline.Options) {
	changed := cmd.Flags().Changed
	if changed("kind") {
		dst.Kind = layout.Kind(f.kind)
	}
	if changed("tiling") {
		dst.Tiling = layout.Tiling(f.tiling)
	}
	optional := []struct {
		name string
		src  float64
		dst  **float64
	}{
		{"width", f.width, &dst.Width},
		{"height", f.height, &dst.Height},
		{"separation-siblings", f.separationSiblings, &dst.SeparationSiblings},
		{"separation-cousins", f.separationCousins, &dst.SeparationCousins},
		{"separation", f.separation, &dst.Separation},
	}
	for _, fl := range optional {
		if changed(fl.name) {
			*fl.dst = layout.Float(fl.src)
		}
	}
	floats := []struct {
		name string
		src  float64
		dst  *float64
	}{
		{"node-width", f.opts.NodeWidth, &dst.NodeWidth},
		{"node-height", f.opts.NodeHeight, &dst.NodeHeight},
		{"padding", f.opts.Padding, &dst.Padding},
		{"padding-top", f.opts.PaddingTop, &dst.PaddingTop},
		{"padding-outer", f.opts.PaddingOuter, &dst.PaddingOuter},
		{"node-radius", f.opts.NodeRadius, &dst.NodeRadius},
	}
	for _, fl := range floats {
		if changed(fl.name) {
			*fl.dst = fl.src
		}
	}
	if changed("round") {
		dst.Round = f.opts.Round
	}
	if changed("sort") {
		dst.Sort = f.opts.Sort
	}
	dst.Refresh = f.refresh
}

// renderFlags holds the output flags of a command.
type renderFlags struct {
	output     string
	formats    string
	showLabels bool
	engine     string
	pngScale   float64
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	fs.BoolVarP(&f.showLabels, "labels", "l", false, "draw node labels")
	fs.StringVar(&f.engine, "engine", "", "SVG engine: native (default), dot, neato")
	fs.Float64Var(&f.pngScale, "png-scale", 0, "PNG resolution multiplier (default 2)")
}

func (f *renderFlags) apply(cmd *cobra.Command, dst *pipeline.Options) {
	changed := cmd.Flags().Changed
	if changed("format") {
		dst.Formats = parseFormats(f.formats)
	}
	if changed("labels") {
		dst.ShowLabels = f.showLabels
	}
	if changed("engine") {
		dst.Engine = f.engine
	}
	if changed("png-scale") {
		dst.PNGScale = f.pngScale
	}
}

// options merges the configuration defaults with the set flags.
func (c *CLI) options(cmd *cobra.Command, lf *layoutFlags, rf *renderFlags) (pipeline.Options, error) {
	cfg, err := c.config()
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := cfg.Layout.Clone()
	if lf != nil {
		lf.apply(cmd, &opts)
	}
	if rf != nil {
		rf.apply(cmd, &opts)
	}
	opts.Logger = c.Logger
	return opts, nil
}
