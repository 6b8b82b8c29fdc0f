package pipeline

import (
	"context"
	"fmt"

	tlerrors "github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/render"
	"github.com/matzehuels/treelayout/pkg/render/nodelink"
	"github.com/matzehuels/treelayout/pkg/render/svg"
	"github.com/matzehuels/treelayout/pkg/render/text"
	"github.com/matzehuels/treelayout/pkg/tree"
	"github.com/matzehuels/treelayout/pkg/treelayout"
)

// Render generates output artifacts in the requested formats without caching.
// The tree supplies edges and labels and must have as many vertices as the layout.
func Render(ctx context.Context, l *treelayout.Layout, t *tree.Tree, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if t.Size() != l.Size() {
		return nil, tlerrors.New(tlerrors.ErrCodeInvalidInput, "tree has %d vertices, layout has %d", t.Size(), l.Size())
	}

	artifacts := make(map[string][]byte, len(opts.Formats))

	// PNG and PDF are converted from the SVG, render it once.
	var svgData []byte
	svgOnce := func() ([]byte, error) {
		if svgData != nil {
			return svgData, nil
		}
		data, err := renderSVG(ctx, l, t, opts)
		if err != nil {
			return nil, err
		}
		svgData = data
		return data, nil
	}

	for _, format := range opts.Formats {
		data, err := RenderFormat(ctx, l, t, format, opts, svgOnce)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat renders a single format. svgSource, when non-nil, supplies
// the SVG that PNG and PDF are converted from.
func RenderFormat(ctx context.Context, l *treelayout.Layout, t *tree.Tree, format string, opts Options, svgSource func() ([]byte, error)) ([]byte, error) {
	if svgSource == nil {
		svgSource = func() ([]byte, error) { return renderSVG(ctx, l, t, opts) }
	}

	switch format {
	case FormatSVG:
		return svgSource()
	case FormatDOT:
		return []byte(toDOT(l, t, opts)), nil
	case FormatPNG:
		data, err := svgSource()
		if err != nil {
			return nil, err
		}
		return render.ToPNG(ctx, data, opts.Scale)
	case FormatPDF:
		data, err := svgSource()
		if err != nil {
			return nil, err
		}
		return render.ToPDF(ctx, data)
	case FormatJSON:
		return treelayout.Marshal(l)
	case FormatText:
		s, err := text.Render(l, t, DefaultTextCols, DefaultTextRows)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	default:
		return nil, ValidateFormat(format)
	}
}

func renderSVG(ctx context.Context, l *treelayout.Layout, t *tree.Tree, opts Options) ([]byte, error) {
	if opts.Style == StyleGraphviz {
		return nodelink.RenderSVG(ctx, toDOT(l, t, opts))
	}
	style, err := svg.StyleByName(opts.Style)
	if err != nil {
		return nil, err
	}
	return svg.Render(l, t,
		svg.WithStyle(style),
		svg.WithSize(opts.Width, opts.Height),
		svg.WithMargin(opts.Margin),
		svg.WithLabelsIf(opts.Labels))
}

func toDOT(l *treelayout.Layout, t *tree.Tree, opts Options) string {
	return nodelink.ToDOT(l, t, nodelink.Options{Detailed: opts.Labels})
}
