// Package generate computes a [treelayout.Layout] for a [tree.Tree].
//
// The algorithm is the classic tidy drawing for ordered trees without
// subtree compaction:
//
//   - Depth is the vertex level times DepthSpacing, so roots sit at depth 0.
//   - Leaves get consecutive offsets, OffsetSpacing apart, in depth-first
//     order with children visited in index order.
//   - An inner vertex is centered between its first and last child.
//   - Roots of a forest are placed side by side with RootGap extra space
//     between neighboring subtrees.
//
// The bounding box handed to [treelayout.New] is the tight box around all
// positions, so the returned layout always satisfies [treelayout.Layout.Validate].
package generate

import (
	"math"

	tlerrors "github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/tree"
	"github.com/matzehuels/treelayout/pkg/treelayout"
)

const (
	// DefaultDepthSpacing is the distance between two levels.
	DefaultDepthSpacing = 1.0

	// DefaultOffsetSpacing is the distance between two neighboring leaves.
	DefaultOffsetSpacing = 1.0
)

// Options controls the spacing of a generated layout.
// Zero spacings are replaced by their defaults.
type Options struct {
	DepthSpacing  float64 `json:"depth_spacing,omitempty" bson:"depth_spacing" toml:"depth_spacing"`
	OffsetSpacing float64 `json:"offset_spacing,omitempty" bson:"offset_spacing" toml:"offset_spacing"`
	RootGap       float64 `json:"root_gap,omitempty" bson:"root_gap" toml:"root_gap"`
}

// SetDefaults fills zero spacings with their default values.
func (o *Options) SetDefaults() {
	if o.DepthSpacing == 0 {
		o.DepthSpacing = DefaultDepthSpacing
	}
	if o.OffsetSpacing == 0 {
		o.OffsetSpacing = DefaultOffsetSpacing
	}
}

// Validate checks that spacings are finite and positive and that RootGap is
// finite and not negative. Call SetDefaults first to accept zero values.
func (o Options) Validate() error {
	if err := tlerrors.ValidatePositive("depth_spacing", o.DepthSpacing); err != nil {
		return tlerrors.Wrap(tlerrors.ErrCodeInvalidOptions, err, "invalid layout options")
	}
	if err := tlerrors.ValidatePositive("offset_spacing", o.OffsetSpacing); err != nil {
		return tlerrors.Wrap(tlerrors.ErrCodeInvalidOptions, err, "invalid layout options")
	}
	if err := tlerrors.ValidateFinite("root_gap", o.RootGap); err != nil {
		return tlerrors.Wrap(tlerrors.ErrCodeInvalidOptions, err, "invalid layout options")
	}
	if o.RootGap < 0 {
		return tlerrors.New(tlerrors.ErrCodeInvalidOptions, "root_gap cannot be negative: %v", o.RootGap)
	}
	return nil
}

// Generate computes the layout of t. Vertex i of t is position i of the
// returned layout. An empty tree yields an empty layout with a zero box.
func Generate(t *tree.Tree, opts Options) (*treelayout.Layout, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	n := t.Size()
	if n == 0 {
		return treelayout.New(0, 0, 0, 0, 0), nil
	}

	offsets := placeOffsets(t, opts)

	b := treelayout.Bounds{
		MinOffset: math.Inf(1),
		MaxOffset: math.Inf(-1),
		MinDepth:  0,
		MaxDepth:  float64(t.Height()-1) * opts.DepthSpacing,
	}
	for _, off := range offsets {
		b.MinOffset = min(b.MinOffset, off)
		b.MaxOffset = max(b.MaxOffset, off)
	}

	l := treelayout.NewWithBounds(n, b)
	for v := range n {
		p := l.At(v)
		p.SetDepth(float64(t.Depth(v)) * opts.DepthSpacing)
		p.SetOffset(offsets[v])
	}
	return l, nil
}

// MustGenerate is like Generate but panics on error.
func MustGenerate(t *tree.Tree, opts Options) *treelayout.Layout {
	l, err := Generate(t, opts)
	if err != nil {
		panic(err)
	}
	return l
}

// placeOffsets assigns leaf offsets left to right and centers every inner
// vertex over its children. The traversal is iterative so that long chains
// do not grow the goroutine stack.
func placeOffsets(t *tree.Tree, opts Options) []float64 {
	offsets := make([]float64, t.Size())
	next := 0.0

	type frame struct {
		v       int
		visited bool
	}

	for i, root := range t.Roots() {
		if i > 0 {
			next += opts.RootGap
		}
		stack := []frame{{v: root}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			v := top.v
			kids := t.Children(v)

			if len(kids) == 0 {
				offsets[v] = next
				next += opts.OffsetSpacing
				stack = stack[:len(stack)-1]
				continue
			}
			if top.visited {
				offsets[v] = (offsets[kids[0]] + offsets[kids[len(kids)-1]]) / 2
				stack = stack[:len(stack)-1]
				continue
			}

			top.visited = true
			for j := len(kids) - 1; j >= 0; j-- {
				stack = append(stack, frame{v: kids[j]})
			}
		}
	}
	return offsets
}
