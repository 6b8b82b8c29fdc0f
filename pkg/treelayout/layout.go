package treelayout

import (
	"iter"
	"math"

	tlerrors "github.com/matzehuels/treelayout/pkg/errors"
)

// Bounds is the bounding box of a layout.
// If the tree is drawn top down, MinOffset is the left edge, MaxOffset the
// right edge, MinDepth the top and MaxDepth the bottom.
type Bounds struct {
	MinOffset float64 `json:"min_offset" bson:"min_offset"`
	MaxOffset float64 `json:"max_offset" bson:"max_offset"`
	MinDepth  float64 `json:"min_depth" bson:"min_depth"`
	MaxDepth  float64 `json:"max_depth" bson:"max_depth"`
}

// Width returns the horizontal extent of the box.
func (b Bounds) Width() float64 { return b.MaxOffset - b.MinOffset }

// Height returns the vertical extent of the box.
func (b Bounds) Height() float64 { return b.MaxDepth - b.MinDepth }

// Contains reports whether p lies inside the box, edges included.
// NaN coordinates are never contained.
func (b Bounds) Contains(p VertexPosition) bool {
	return p.depth >= b.MinDepth && p.depth <= b.MaxDepth &&
		p.offset >= b.MinOffset && p.offset <= b.MaxOffset
}

// Layout contains the layout of an entire tree: one [VertexPosition] per
// vertex plus the bounding box of all of them.
//
// The zero value is an empty layout with a zero bounding box.
type Layout struct {
	positions []VertexPosition
	bounds    Bounds
}

// New returns a layout with size unassigned vertex positions and the given
// bounding box. The box is stored as given: it is not clamped, reordered or
// checked against the positions. New panics if size is negative.
func New(size int, minOffset, maxOffset, minDepth, maxDepth float64) *Layout {
	return &Layout{
		positions: make([]VertexPosition, size),
		bounds: Bounds{
			MinOffset: minOffset,
			MaxOffset: maxOffset,
			MinDepth:  minDepth,
			MaxDepth:  maxDepth,
		},
	}
}

// NewWithBounds is New with the box passed as a [Bounds].
func NewWithBounds(size int, b Bounds) *Layout {
	return New(size, b.MinOffset, b.MaxOffset, b.MinDepth, b.MaxDepth)
}

// At returns a pointer to the position of vertex index for in-place
// editing. The pointer stays valid for the lifetime of the layout since the
// layout is never resized.
//
// At panics with an [*IndexError] if index is outside [0, Size()).
func (l *Layout) At(index int) *VertexPosition {
	if index < 0 || index >= len(l.positions) {
		panic(&IndexError{Index: index, Size: len(l.positions)})
	}
	return &l.positions[index]
}

// Vertex returns a copy of the position of vertex index.
// It panics with an [*IndexError] if index is outside [0, Size()).
func (l *Layout) Vertex(index int) VertexPosition {
	return *l.At(index)
}

// Lookup is the checked form of [Layout.At]. It returns an [*IndexError]
// instead of panicking when index is outside [0, Size()).
func (l *Layout) Lookup(index int) (*VertexPosition, error) {
	if index < 0 || index >= len(l.positions) {
		return nil, &IndexError{Index: index, Size: len(l.positions)}
	}
	return &l.positions[index], nil
}

// Size returns the number of vertices.
func (l *Layout) Size() int { return len(l.positions) }

// MinOffset returns the left edge of the bounding box.
func (l *Layout) MinOffset() float64 { return l.bounds.MinOffset }

// MaxOffset returns the right edge of the bounding box.
func (l *Layout) MaxOffset() float64 { return l.bounds.MaxOffset }

// MinDepth returns the top edge of the bounding box.
func (l *Layout) MinDepth() float64 { return l.bounds.MinDepth }

// MaxDepth returns the bottom edge of the bounding box.
func (l *Layout) MaxDepth() float64 { return l.bounds.MaxDepth }

// Bounds returns the stored bounding box.
func (l *Layout) Bounds() Bounds { return l.bounds }

// SetBounds replaces the stored bounding box. Like [New], it stores the box
// as given.
func (l *Layout) SetBounds(b Bounds) { l.bounds = b }

// Width returns MaxOffset - MinOffset.
func (l *Layout) Width() float64 { return l.bounds.Width() }

// Height returns MaxDepth - MinDepth.
func (l *Layout) Height() float64 { return l.bounds.Height() }

// Vertices returns the positions in index order. The returned slice is a
// copy; writes to it do not affect the layout.
func (l *Layout) Vertices() []VertexPosition {
	out := make([]VertexPosition, len(l.positions))
	copy(out, l.positions)
	return out
}

// All iterates over (index, position) pairs in index order.
func (l *Layout) All() iter.Seq2[int, VertexPosition] {
	return func(yield func(int, VertexPosition) bool) {
		for i, p := range l.positions {
			if !yield(i, p) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the layout.
func (l *Layout) Clone() *Layout {
	return &Layout{positions: l.Vertices(), bounds: l.bounds}
}

// RecomputeBounds scans the positions and returns the tightest box that
// contains them. An empty layout yields the zero box. The stored box is not
// modified; pass the result to [Layout.SetBounds] to adopt it.
//
// NaN coordinates are skipped.
func (l *Layout) RecomputeBounds() Bounds {
	b := Bounds{
		MinOffset: math.Inf(1),
		MaxOffset: math.Inf(-1),
		MinDepth:  math.Inf(1),
		MaxDepth:  math.Inf(-1),
	}
	var seenOffset, seenDepth bool
	for _, p := range l.positions {
		if !math.IsNaN(p.offset) {
			b.MinOffset = math.Min(b.MinOffset, p.offset)
			b.MaxOffset = math.Max(b.MaxOffset, p.offset)
			seenOffset = true
		}
		if !math.IsNaN(p.depth) {
			b.MinDepth = math.Min(b.MinDepth, p.depth)
			b.MaxDepth = math.Max(b.MaxDepth, p.depth)
			seenDepth = true
		}
	}
	if !seenOffset {
		b.MinOffset, b.MaxOffset = 0, 0
	}
	if !seenDepth {
		b.MinDepth, b.MaxDepth = 0, 0
	}
	return b
}

// Validate checks the invariants the layout trusts its caller to keep:
// a finite, well-ordered bounding box and finite positions that lie inside
// it. It reports the first violation found as a *errors.Error with code
// INVALID_BOUNDS or POSITION_OUT_OF_BOUNDS.
func (l *Layout) Validate() error {
	b := l.bounds
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"min_offset", b.MinOffset},
		{"max_offset", b.MaxOffset},
		{"min_depth", b.MinDepth},
		{"max_depth", b.MaxDepth},
	} {
		if err := tlerrors.ValidateFinite(f.name, f.v); err != nil {
			return tlerrors.Wrap(tlerrors.ErrCodeInvalidBounds, err, "bounding box is not finite")
		}
	}
	if b.MinOffset > b.MaxOffset {
		return tlerrors.New(tlerrors.ErrCodeInvalidBounds, "min_offset %g > max_offset %g", b.MinOffset, b.MaxOffset)
	}
	if b.MinDepth > b.MaxDepth {
		return tlerrors.New(tlerrors.ErrCodeInvalidBounds, "min_depth %g > max_depth %g", b.MinDepth, b.MaxDepth)
	}

	for i, p := range l.positions {
		if !b.Contains(p) {
			return tlerrors.New(tlerrors.ErrCodePositionOutOfBounds, "vertex %d at %s lies outside the bounding box", i, p)
		}
	}
	return nil
}
