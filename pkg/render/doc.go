// Package render turns tree layouts into pictures.
//
// # Overview
//
// A [treelayout.Layout] only carries coordinates. Renderers combine it with
// the [tree.Tree] it was computed for to draw vertices and parent-child
// edges. Several output paths are provided:
//
//   - SVG drawn directly from the layout (in [svg] subpackage)
//   - Graphviz DOT with pinned positions (in [nodelink] subpackage)
//   - Plain text grids for terminals (in [text] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Every SVG producer in the
// subpackages can be piped through them.
//
//	out, err := svg.Render(l, t)
//	pdf, err := render.ToPDF(ctx, out)
//	png, err := render.ToPNG(ctx, out, 2.0)  // 2x scale
//
// [svg]: github.com/matzehuels/treelayout/pkg/render/svg
// [nodelink]: github.com/matzehuels/treelayout/pkg/render/nodelink
// [text]: github.com/matzehuels/treelayout/pkg/render/text
// [treelayout.Layout]: github.com/matzehuels/treelayout/pkg/treelayout.Layout
// [tree.Tree]: github.com/matzehuels/treelayout/pkg/tree.Tree
package render
