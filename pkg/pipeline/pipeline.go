// Package pipeline provides the layout → render pipeline shared by the CLI
// and the HTTP server.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: preprocess the tree (optional sort), run the selected layout
//     and flatten the result into a [tree.Layout] document
//  2. Render: turn a layout document into output formats (SVG, PNG, PDF,
//     JSON, DOT)
//
// Each stage can be run on its own or through [Runner.Execute]. A [Runner]
// caches both stages by content hash, so repeated requests for the same
// tree and options cost a cache lookup.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	opts := pipeline.Options{Formats: []string{"svg"}}
//	opts.Kind = layout.KindTreemap
//	result, err := runner.Execute(ctx, root, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/layout"
	"github.com/matzehuels/arbor/pkg/render"
	"github.com/matzehuels/arbor/pkg/tree"
)

// Sort orders children before layout.
const (
	SortNone   = ""
	SortValue  = "value"
	SortHeight = "height"
)

// SVG engines. EngineNative draws the layout directly; the Graphviz engines
// render the DOT export.
const (
	EngineNative = "native"
	EngineDot    = render.EngineDot
	EngineNeato  = render.EngineNeato
)

// DefaultPNGScale is the resolution multiplier for PNG output.
const DefaultPNGScale = 2.0

// ValidSorts is the set of supported sort orders.
var ValidSorts = map[string]bool{
	SortNone:   true,
	SortValue:  true,
	SortHeight: true,
}

// ValidEngines is the set of supported SVG engines.
var ValidEngines = map[string]bool{
	EngineNative: true,
	EngineDot:    true,
	EngineNeato:  true,
}

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests; layout fields
// are inlined.
type Options struct {
	layout.Options

	// Layout preprocessing
	Sort       string  `json:"sort,omitempty" toml:"sort"`
	NodeRadius float64 `json:"node_radius,omitempty" toml:"node_radius"`
	Refresh    bool    `json:"refresh,omitempty" toml:"-"`

	// Render options
	Formats    []string `json:"formats,omitempty" toml:"formats"`
	ShowLabels bool     `json:"show_labels,omitempty" toml:"show_labels"`
	Engine     string   `json:"engine,omitempty" toml:"engine"`
	PNGScale   float64  `json:"png_scale,omitempty" toml:"png_scale"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// TreeHash is the content hash of the input tree.
	TreeHash string

	// Layout is the computed layout document.
	Layout tree.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	LeafCount  int
	MaxDepth   int
	TotalValue float64
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateSort checks that a sort order is valid.
func ValidateSort(sort string) error {
	if !ValidSorts[sort] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid sort: %q (must be one of: value, height)", sort)
	}
	return nil
}

// ValidateEngine checks that an SVG engine is valid.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid engine: %q (must be one of: native, dot, neato)", engine)
	}
	return nil
}

// ValidateAndSetDefaults checks every field and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	if err := o.Options.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if err := ValidateSort(o.Sort); err != nil {
		return err
	}
	if err := errors.ValidateDimension("node_radius", o.NodeRadius); err != nil {
		return err
	}
	if o.NodeRadius == 0 {
		o.NodeRadius = render.DefaultNodeRadius
	}
	o.setLogger()
	return nil
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{render.FormatSVG}
	}
	if err := render.ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Engine == "" {
		o.Engine = EngineNative
	}
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	if err := errors.ValidateDimension("png_scale", o.PNGScale); err != nil {
		return err
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	o.setLogger()
	return nil
}

// Clone returns a copy of o that shares neither the formats slice nor the
// optional layout fields with o.
func (o Options) Clone() Options {
	o.Options = o.Options.Clone()
	o.Formats = append([]string(nil), o.Formats...)
	return o
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	width, height := o.Frame()
	siblings, cousins := o.TreeSeparations()
	return cache.LayoutKeyOpts{
		Kind:               string(o.Kind),
		Width:              width,
		Height:             height,
		NodeWidth:          o.NodeWidth,
		NodeHeight:         o.NodeHeight,
		SeparationSiblings: siblings,
		SeparationCousins:  cousins,
		Separation:         o.ClusterSeparation(),
		Tiling:             string(o.Tiling),
		Padding:            o.Padding,
		PaddingTop:         o.PaddingTop,
		PaddingOuter:       o.PaddingOuter,
		Round:              o.Round,
		Sort:               o.Sort,
		NodeRadius:         o.NodeRadius,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, ShowLabels: o.ShowLabels}
	// JSON and DOT do not depend on the SVG engine.
	if format == render.FormatSVG || format == render.FormatPNG || format == render.FormatPDF {
		opts.Engine = o.Engine
	}
	return opts
}
