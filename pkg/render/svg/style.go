package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"

	tlerrors "github.com/matzehuels/treelayout/pkg/errors"
)

// Style names accepted by [StyleByName].
const (
	StyleSimple  = "simple"
	StyleOutline = "outline"
)

// Style defines the visual appearance of a rendered tree.
type Style interface {
	// Name returns the identifier used in options and config files.
	Name() string
	// RenderDefs writes SVG <defs> content, if any.
	RenderDefs(buf *bytes.Buffer)
	// RenderEdge writes the SVG for one parent-child line.
	RenderEdge(buf *bytes.Buffer, e Edge)
	// RenderVertex writes the SVG for one vertex marker.
	RenderVertex(buf *bytes.Buffer, v Vertex)
	// RenderLabel writes the SVG for a vertex label.
	RenderLabel(buf *bytes.Buffer, v Vertex)
}

// Vertex holds frame coordinates for one vertex.
type Vertex struct {
	ID    int
	Label string
	X, Y  float64
	R     float64
}

// Edge holds frame coordinates for one parent-child link.
type Edge struct {
	From, To       int
	X1, Y1, X2, Y2 float64
}

// StyleByName returns the style registered under name.
func StyleByName(name string) (Style, error) {
	switch name {
	case "", StyleSimple:
		return Simple{}, nil
	case StyleOutline:
		return Outline{}, nil
	}
	return nil, tlerrors.New(tlerrors.ErrCodeInvalidStyle, "unknown style %q (must be one of: simple, outline)", name)
}

// Simple draws filled dark vertices and thin grey edges.
type Simple struct{}

func (Simple) Name() string                 { return StyleSimple }
func (Simple) RenderDefs(buf *bytes.Buffer) {}

func (Simple) RenderEdge(buf *bytes.Buffer, e Edge) {
	fmt.Fprintf(buf, `  <line class="edge" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#888888" stroke-width="1.5"/>`+"\n",
		e.X1, e.Y1, e.X2, e.Y2)
}

func (Simple) RenderVertex(buf *bytes.Buffer, v Vertex) {
	fmt.Fprintf(buf, `  <circle class="vertex" id="v%d" cx="%.2f" cy="%.2f" r="%.2f" fill="#333333"/>`+"\n",
		v.ID, v.X, v.Y, v.R)
}

func (Simple) RenderLabel(buf *bytes.Buffer, v Vertex) {
	renderLabel(buf, v, v.Y-v.R-4, "#333333")
}

// Outline draws hollow vertices with a heavier stroke and the label inside.
type Outline struct{}

func (Outline) Name() string { return StyleOutline }

func (Outline) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <defs><marker id="dot" viewBox="0 0 4 4" refX="2" refY="2" markerWidth="4" markerHeight="4"><circle cx="2" cy="2" r="2" fill="#222222"/></marker></defs>` + "\n")
}

func (Outline) RenderEdge(buf *bytes.Buffer, e Edge) {
	fmt.Fprintf(buf, `  <line class="edge" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#222222" stroke-width="2"/>`+"\n",
		e.X1, e.Y1, e.X2, e.Y2)
}

func (Outline) RenderVertex(buf *bytes.Buffer, v Vertex) {
	fmt.Fprintf(buf, `  <circle class="vertex" id="v%d" cx="%.2f" cy="%.2f" r="%.2f" fill="white" stroke="#222222" stroke-width="2"/>`+"\n",
		v.ID, v.X, v.Y, v.R)
}

func (Outline) RenderLabel(buf *bytes.Buffer, v Vertex) {
	renderLabel(buf, v, v.Y, "#222222")
}

func renderLabel(buf *bytes.Buffer, v Vertex, y float64, color string) {
	size := max(8, min(16, v.R))
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		v.X, y, size, color, escapeXML(v.Label))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
