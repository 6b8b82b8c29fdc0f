// Package treelayout provides the geometric result of laying out a tree:
// a (depth, offset) coordinate per vertex and the bounding box of the whole
// drawing.
//
// # Coordinates
//
// A [VertexPosition] places one vertex. With the root drawn on top, depth
// grows downward (it is the vertex's level or generation) and offset grows
// to the right (its lateral position within that level). Neither axis has a
// range restriction; NaN and infinities are stored as given.
//
// # Layouts
//
// A [Layout] is a fixed-size, indexed table of positions. Index i holds the
// position of the vertex the caller identifies as i. The table is sized once
// by [New] and never grows or shrinks; a layout algorithm fills it in place:
//
//	l := treelayout.New(3, 0, 10, 0, 2)
//	l.At(0).SetDepth(0)
//	l.At(0).SetOffset(5)
//
// The four bounding-box scalars are supplied by whoever computes the layout
// and are returned verbatim by [Layout.MinOffset], [Layout.MaxOffset],
// [Layout.MinDepth] and [Layout.MaxDepth]. The layout never derives them from
// its positions and never checks them on its own. Keeping the box consistent
// with the positions is the caller's job; [Layout.Validate] and
// [Layout.RecomputeBounds] exist for callers that want to check or rebuild it
// explicitly.
//
// # Index Policy
//
// Indexed access fails fast. [Layout.At] and [Layout.Vertex] panic with an
// [*IndexError] when the index is outside [0, Size()), the same way Go slice
// indexing does. [Layout.Lookup] is the checked variant and returns the
// error instead.
//
// # Concurrency
//
// A Layout is not safe for concurrent mutation. Callers that fill a layout
// from several goroutines must synchronize externally.
//
// # Serialization
//
// Layouts round-trip through JSON (and BSON via the same field names) with
// [Marshal], [Unmarshal], [WriteFile] and [ReadFile]:
//
//	{
//	  "min_offset": 0, "max_offset": 10, "min_depth": 0, "max_depth": 2,
//	  "vertices": [{"depth": 0, "offset": 5}, ...]
//	}
package treelayout
