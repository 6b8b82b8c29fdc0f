package treelayout

import "fmt"

// VertexPosition is the (depth, offset) position of one vertex in a tree
// layout. If the root of the tree is on top, positive depth is down and
// positive offset is right.
//
// The zero value is a valid position at the origin, but callers should not
// attach any meaning to it: a freshly allocated [Layout] slot simply has not
// been assigned yet.
type VertexPosition struct {
	depth  float64
	offset float64
}

// NewVertexPosition returns a position with the given depth and offset.
func NewVertexPosition(depth, offset float64) VertexPosition {
	return VertexPosition{depth: depth, offset: offset}
}

// Depth returns the depth of the vertex.
func (p VertexPosition) Depth() float64 { return p.depth }

// Offset returns the offset of the vertex.
func (p VertexPosition) Offset() float64 { return p.offset }

// SetDepth sets the depth. Any value is accepted, including NaN and ±Inf.
func (p *VertexPosition) SetDepth(value float64) { p.depth = value }

// SetOffset sets the offset. Any value is accepted, including NaN and ±Inf.
func (p *VertexPosition) SetOffset(value float64) { p.offset = value }

// String formats the position as "(depth, offset)".
func (p VertexPosition) String() string {
	return fmt.Sprintf("(%g, %g)", p.depth, p.offset)
}
