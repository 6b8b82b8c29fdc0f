// Package text draws tree layouts on a character grid.
//
// The layout's bounding box is stretched onto cols x rows cells. Vertices
// are marked with 'o' and edges are traced with '|', '-', '/' and '\'.
// Positions snap to the nearest cell, so close vertices may share one.
//
//	  o
//	 / \
//	o   o
//
// The grid is what the interactive preview draws; [Grid.Highlight] styles
// one vertex with lipgloss for the cursor.
package text

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	tlerrors "github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/tree"
	"github.com/matzehuels/treelayout/pkg/treelayout"
)

// VertexMark is the rune drawn at each vertex.
const VertexMark = 'o'

// MaxCells caps cols*rows to keep accidental huge grids out of memory.
const MaxCells = 1 << 22

// Cell is a grid coordinate.
type Cell struct {
	Row, Col int
}

// Grid is a rasterized layout.
type Grid struct {
	cells  [][]rune
	points []Cell
}

// Build rasterizes l onto a cols x rows grid. t supplies the edges and may
// be nil; when set it must have one vertex per layout position.
func Build(l *treelayout.Layout, t *tree.Tree, cols, rows int) (*Grid, error) {
	if cols < 1 || rows < 1 || cols*rows > MaxCells {
		return nil, tlerrors.New(tlerrors.ErrCodeInvalidInput, "invalid grid size %dx%d", cols, rows)
	}
	if t != nil && t.Size() != l.Size() {
		return nil, tlerrors.New(tlerrors.ErrCodeInvalidInput, "tree has %d vertices but layout has %d", t.Size(), l.Size())
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}

	g := &Grid{cells: make([][]rune, rows)}
	for r := range g.cells {
		g.cells[r] = []rune(strings.Repeat(" ", cols))
	}

	b := l.Bounds()
	g.points = make([]Cell, l.Size())
	for i, p := range l.All() {
		g.points[i] = Cell{
			Row: snap(p.Depth(), b.MinDepth, b.Height(), rows),
			Col: snap(p.Offset(), b.MinOffset, b.Width(), cols),
		}
	}

	if t != nil {
		t.Edges(func(parent, child int) {
			g.trace(g.points[parent], g.points[child])
		})
	}
	for _, c := range g.points {
		g.cells[c.Row][c.Col] = VertexMark
	}
	return g, nil
}

// Render is Build followed by String.
func Render(l *treelayout.Layout, t *tree.Tree, cols, rows int) (string, error) {
	g, err := Build(l, t, cols, rows)
	if err != nil {
		return "", err
	}
	return g.String(), nil
}

// snap maps v in [lo, lo+extent] to a cell index in [0, n).
// A flat extent lands in the middle cell.
func snap(v, lo, extent float64, n int) int {
	if extent <= 0 {
		return (n - 1) / 2
	}
	i := int(math.Round((v - lo) / extent * float64(n-1)))
	return max(0, min(n-1, i))
}

// trace draws the cells strictly between a and b.
func (g *Grid) trace(a, b Cell) {
	dr, dc := b.Row-a.Row, b.Col-a.Col
	steps := max(abs(dr), abs(dc))
	ch := edgeRune(dr, dc)
	for s := 1; s < steps; s++ {
		r := a.Row + int(math.Round(float64(dr*s)/float64(steps)))
		c := a.Col + int(math.Round(float64(dc*s)/float64(steps)))
		g.cells[r][c] = ch
	}
}

func edgeRune(dr, dc int) rune {
	switch {
	case dc == 0:
		return '|'
	case dr == 0:
		return '-'
	case (dr > 0) == (dc > 0):
		return '\\'
	default:
		return '/'
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Rows returns the grid height.
func (g *Grid) Rows() int { return len(g.cells) }

// Cols returns the grid width.
func (g *Grid) Cols() int {
	if len(g.cells) == 0 {
		return 0
	}
	return len(g.cells[0])
}

// Point returns the cell vertex v was drawn at.
func (g *Grid) Point(v int) Cell { return g.points[v] }

// String returns the grid with trailing spaces removed from every line.
func (g *Grid) String() string {
	var sb strings.Builder
	for _, row := range g.cells {
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Highlight returns the grid with vertex v rendered through style.
// Out-of-range v yields the plain grid.
func (g *Grid) Highlight(v int, style lipgloss.Style) string {
	if v < 0 || v >= len(g.points) {
		return g.String()
	}
	at := g.points[v]

	var sb strings.Builder
	for r, row := range g.cells {
		if r != at.Row {
			sb.WriteString(strings.TrimRight(string(row), " "))
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(string(row[:at.Col]))
		sb.WriteString(style.Render(string(row[at.Col])))
		sb.WriteString(strings.TrimRight(string(row[at.Col+1:]), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
