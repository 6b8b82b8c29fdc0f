// Package nodelink renders tree layouts through Graphviz.
//
// # Overview
//
// The layout already fixes every coordinate, so Graphviz is only used as a
// drawing backend: [ToDOT] pins each vertex with a `pos="x,y!"` attribute and
// [RenderSVG] runs the neato engine, which honors pinned positions instead
// of computing its own.
//
// # Usage
//
//	dot := nodelink.ToDOT(l, t, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, pipe the SVG through [render.ToPDF] or [render.ToPNG].
//
// # Coordinates
//
// Offsets map to x and depths to y, both multiplied by Options.Scale
// (points per layout unit). Graphviz's y axis points up, so depth is
// negated to keep roots on top.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
//
// [render.ToPDF]: github.com/matzehuels/treelayout/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/treelayout/pkg/render.ToPNG
package nodelink
