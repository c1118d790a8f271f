package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/arbor/pkg/render"
	"github.com/matzehuels/arbor/pkg/tree"
)

// RenderLayout generates output artifacts in the requested formats without
// caching. The SVG is produced at most once and shared by the PNG and PDF
// conversions.
func RenderLayout(ctx context.Context, l tree.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if len(l.Nodes) == 0 {
		return nil, fmt.Errorf("layout has no nodes")
	}

	var svg []byte
	svgOnce := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = buildSVG(ctx, l, opts)
		return svg, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case render.FormatSVG:
			data, err = svgOnce()
		case render.FormatPNG:
			if data, err = svgOnce(); err == nil {
				data, err = render.ToPNG(ctx, data, opts.PNGScale)
			}
		case render.FormatPDF:
			if data, err = svgOnce(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		case render.FormatJSON:
			data, err = render.JSON(l)
		case render.FormatDOT:
			data = []byte(render.ToDOT(l))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func buildSVG(ctx context.Context, l tree.Layout, opts Options) ([]byte, error) {
	if opts.Engine == EngineDot || opts.Engine == EngineNeato {
		return render.RenderDOTSVG(ctx, render.ToDOT(l), opts.Engine)
	}
	var svgOpts []render.SVGOption
	if opts.ShowLabels {
		svgOpts = append(svgOpts, render.WithLabels())
	}
	if opts.NodeRadius > 0 {
		svgOpts = append(svgOpts, render.WithNodeRadius(opts.NodeRadius))
	}
	return render.SVG(l, svgOpts...), nil
}
