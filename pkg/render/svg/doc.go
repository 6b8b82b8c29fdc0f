// Package svg draws a tree layout as an SVG document.
//
// Each vertex becomes a circle and each parent-child link a straight line.
// The layout's bounding box is stretched onto the frame minus a margin on
// every side, with depth growing downward. A box that is flat on one axis
// (a single vertex, or a chain) is centered on that axis.
//
//	out, err := svg.Render(l, t,
//	    svg.WithStyle(svg.Outline{}),
//	    svg.WithSize(1024, 768),
//	    svg.WithLabels(),
//	)
//
// The tree is optional: with a nil tree only the vertices are drawn and
// labels fall back to vertex indices.
package svg
