package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	tlerrors "github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/tree"
	"github.com/matzehuels/treelayout/pkg/treelayout"
)

// DefaultScale is the number of points per layout unit.
const DefaultScale = 72.0

// Options configures node-link diagram rendering.
type Options struct {
	// Scale is the number of points per layout unit. Zero means DefaultScale.
	Scale float64

	// Detailed appends each vertex's (depth, offset) to its label.
	Detailed bool
}

// ToDOT converts a layout to Graphviz DOT with every vertex pinned at its
// layout position. t supplies labels and edges and may be nil; when set it
// must have the same size as l.
func ToDOT(l *treelayout.Layout, t *tree.Tree, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12, width=0.4, fixedsize=true];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("\n")

	for i, p := range l.All() {
		label := fmtLabel(i, p, t, opts.Detailed)
		x := (p.Offset() - l.MinOffset()) * scale
		y := (l.MinDepth() - p.Depth()) * scale
		fmt.Fprintf(&buf, "  \"%d\" [label=%q, pos=\"%.2f,%.2f!\"];\n", i, label, x, y)
	}

	if t != nil {
		buf.WriteString("\n")
		t.Edges(func(parent, child int) {
			fmt.Fprintf(&buf, "  \"%d\" -> \"%d\";\n", parent, child)
		})
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(i int, p treelayout.VertexPosition, t *tree.Tree, detailed bool) string {
	label := strconv.Itoa(i)
	if t != nil {
		label = t.Label(i)
	}
	if !detailed {
		return label
	}
	return strings.Join([]string{label, p.String()}, "\n")
}

// RenderSVG renders a DOT graph to SVG using the Graphviz neato engine.
// Returns the SVG bytes ready for display or further conversion with
// render.ToPDF or render.ToPNG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, tlerrors.Wrap(tlerrors.ErrCodeInvalidFormat, err, "parse DOT")
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

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// unitless one so the SVG scales like the other renderers' output.
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

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
