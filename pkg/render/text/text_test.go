package text

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	tlerrors "github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/tree"
	"github.com/matzehuels/treelayout/pkg/treelayout"
)

func sample() (*treelayout.Layout, *tree.Tree) {
	l := treelayout.New(3, 0, 2, 0, 1)
	l.At(0).SetOffset(1)
	l.At(1).SetDepth(1)
	l.At(2).SetDepth(1)
	l.At(2).SetOffset(2)
	return l, tree.MustNew([]int{tree.NoParent, 0, 0}, nil)
}

func TestRender(t *testing.T) {
	l, tr := sample()
	got, err := Render(l, tr, 5, 3)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := "  o\n / \\\no   o\n"
	if got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderStraightEdges(t *testing.T) {
	tests := []struct {
		name    string
		parents []int
		layout  func() *treelayout.Layout
		cols    int
		rows    int
		want    string
	}{
		{
			name:    "vertical chain",
			parents: []int{tree.NoParent, 0},
			layout: func() *treelayout.Layout {
				l := treelayout.New(2, 0, 0, 0, 1)
				l.At(1).SetDepth(1)
				return l
			},
			cols: 3,
			rows: 4,
			want: " o\n |\n |\n o\n",
		},
		{
			name:    "horizontal pair",
			parents: []int{tree.NoParent, 0},
			layout: func() *treelayout.Layout {
				l := treelayout.New(2, 0, 1, 0, 0)
				l.At(1).SetOffset(1)
				return l
			},
			cols: 5,
			rows: 1,
			want: "o---o\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.layout(), tree.MustNew(tt.parents, nil), tt.cols, tt.rows)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildPoints(t *testing.T) {
	l, tr := sample()
	g, err := Build(l, tr, 5, 3)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if g.Rows() != 3 || g.Cols() != 5 {
		t.Errorf("grid = %dx%d, want 5x3", g.Cols(), g.Rows())
	}
	want := []Cell{{0, 2}, {2, 0}, {2, 4}}
	for v, c := range want {
		if got := g.Point(v); got != c {
			t.Errorf("Point(%d) = %v, want %v", v, got, c)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	l, _ := sample()
	tests := []struct {
		name       string
		t          *tree.Tree
		cols, rows int
	}{
		{"zero cols", nil, 0, 3},
		{"zero rows", nil, 3, 0},
		{"too many cells", nil, MaxCells, 2},
		{"size mismatch", tree.MustNew([]int{tree.NoParent}, nil), 5, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(l, tt.t, tt.cols, tt.rows)
			if !tlerrors.Is(err, tlerrors.ErrCodeInvalidInput) {
				t.Errorf("Build() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestHighlight(t *testing.T) {
	l, tr := sample()
	g, _ := Build(l, tr, 5, 3)

	style := lipgloss.NewStyle().Bold(true)
	got := g.Highlight(0, style)
	if lines := strings.Split(got, "\n"); len(lines) != 4 {
		t.Errorf("Highlight() produced %d lines, want 4", len(lines))
	}
	if !strings.Contains(got, "o   o") {
		t.Error("Highlight() changed unselected rows")
	}
	if g.Highlight(-1, style) != g.String() {
		t.Error("Highlight(-1) should return the plain grid")
	}
}

func TestEmptyLayout(t *testing.T) {
	got, err := Render(treelayout.New(0, 0, 0, 0, 0), nil, 3, 2)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "\n\n" {
		t.Errorf("Render() = %q, want two empty lines", got)
	}
}
