package svg

import (
	"bytes"
	"fmt"
	"strconv"

	tlerrors "github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/tree"
	"github.com/matzehuels/treelayout/pkg/treelayout"
)

const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
	DefaultMargin = 40.0
	DefaultRadius = 6.0
)

// Option configures SVG rendering.
type Option func(*renderer)

type renderer struct {
	style         Style
	width, height float64
	margin        float64
	radius        float64
	labels        bool
}

func WithStyle(s Style) Option      { return func(r *renderer) { r.style = s } }
func WithSize(w, h float64) Option  { return func(r *renderer) { r.width, r.height = w, h } }
func WithMargin(m float64) Option   { return func(r *renderer) { r.margin = m } }
func WithRadius(rad float64) Option { return func(r *renderer) { r.radius = rad } }
func WithLabels() Option            { return func(r *renderer) { r.labels = true } }
func WithLabelsIf(show bool) Option { return func(r *renderer) { r.labels = show } }

func newRenderer(opts ...Option) renderer {
	r := renderer{
		style:  Simple{},
		width:  DefaultWidth,
		height: DefaultHeight,
		margin: DefaultMargin,
		radius: DefaultRadius,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Render draws l as SVG. t supplies edges and labels and may be nil; when
// set it must have one vertex per layout position.
//
// Returns an INVALID_BOUNDS or POSITION_OUT_OF_BOUNDS error if the layout
// does not pass [treelayout.Layout.Validate], and INVALID_INPUT on a size
// mismatch or a frame too small for its margins.
func Render(l *treelayout.Layout, t *tree.Tree, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	if t != nil && t.Size() != l.Size() {
		return nil, tlerrors.New(tlerrors.ErrCodeInvalidInput, "tree has %d vertices but layout has %d", t.Size(), l.Size())
	}
	if r.width <= 2*r.margin || r.height <= 2*r.margin {
		return nil, tlerrors.New(tlerrors.ErrCodeInvalidInput, "frame %gx%g too small for margin %g", r.width, r.height, r.margin)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}

	proj := newProjection(l.Bounds(), r.width, r.height, r.margin)
	vertices := buildVertices(l, t, proj, r.radius)
	edges := buildEdges(t, vertices)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)
	r.style.RenderDefs(&buf)
	for _, e := range edges {
		r.style.RenderEdge(&buf, e)
	}
	for _, v := range vertices {
		r.style.RenderVertex(&buf, v)
	}
	if r.labels {
		for _, v := range vertices {
			r.style.RenderLabel(&buf, v)
		}
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// projection maps layout coordinates onto the frame.
type projection struct {
	b              treelayout.Bounds
	x0, y0, sx, sy float64
	cx, cy         float64
}

func newProjection(b treelayout.Bounds, width, height, margin float64) projection {
	p := projection{
		b:  b,
		x0: margin,
		y0: margin,
		cx: width / 2,
		cy: height / 2,
	}
	if w := b.Width(); w > 0 {
		p.sx = (width - 2*margin) / w
	}
	if h := b.Height(); h > 0 {
		p.sy = (height - 2*margin) / h
	}
	return p
}

func (p projection) point(pos treelayout.VertexPosition) (x, y float64) {
	x, y = p.cx, p.cy
	if p.sx > 0 {
		x = p.x0 + (pos.Offset()-p.b.MinOffset)*p.sx
	}
	if p.sy > 0 {
		y = p.y0 + (pos.Depth()-p.b.MinDepth)*p.sy
	}
	return x, y
}

func buildVertices(l *treelayout.Layout, t *tree.Tree, p projection, radius float64) []Vertex {
	out := make([]Vertex, 0, l.Size())
	for i, pos := range l.All() {
		x, y := p.point(pos)
		label := strconv.Itoa(i)
		if t != nil {
			label = t.Label(i)
		}
		out = append(out, Vertex{ID: i, Label: label, X: x, Y: y, R: radius})
	}
	return out
}

func buildEdges(t *tree.Tree, vertices []Vertex) []Edge {
	if t == nil {
		return nil
	}
	edges := make([]Edge, 0, len(vertices))
	t.Edges(func(parent, child int) {
		src, dst := vertices[parent], vertices[child]
		edges = append(edges, Edge{
			From: parent, To: child,
			X1: src.X, Y1: src.Y,
			X2: dst.X, Y2: dst.Y,
		})
	})
	return edges
}
