package generate

import (
	"math"
	"testing"

	tlerrors "github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/tree"
	"github.com/matzehuels/treelayout/pkg/treelayout"
)

type point struct{ depth, offset float64 }

func positions(l *treelayout.Layout) []point {
	var out []point
	for _, p := range l.All() {
		out = append(out, point{p.Depth(), p.Offset()})
	}
	return out
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name    string
		parents []int
		opts    Options
		want    []point
		bounds  treelayout.Bounds
	}{
		{
			name:    "single vertex",
			parents: []int{tree.NoParent},
			want:    []point{{0, 0}},
			bounds:  treelayout.Bounds{},
		},
		{
			name:    "root with two leaves",
			parents: []int{tree.NoParent, 0, 0},
			want:    []point{{0, 0.5}, {1, 0}, {1, 1}},
			bounds:  treelayout.Bounds{MinOffset: 0, MaxOffset: 1, MinDepth: 0, MaxDepth: 1},
		},
		{
			name:    "uneven subtree",
			parents: []int{tree.NoParent, 0, 0, 0, 2},
			want:    []point{{0, 1}, {1, 0}, {1, 1}, {1, 2}, {2, 1}},
			bounds:  treelayout.Bounds{MinOffset: 0, MaxOffset: 2, MinDepth: 0, MaxDepth: 2},
		},
		{
			name:    "chain",
			parents: []int{tree.NoParent, 0, 1},
			want:    []point{{0, 0}, {1, 0}, {2, 0}},
			bounds:  treelayout.Bounds{MaxDepth: 2},
		},
		{
			name:    "forest with gap",
			parents: []int{tree.NoParent, tree.NoParent, 0, 1},
			opts:    Options{RootGap: 1},
			want:    []point{{0, 0}, {0, 2}, {1, 0}, {1, 2}},
			bounds:  treelayout.Bounds{MinOffset: 0, MaxOffset: 2, MinDepth: 0, MaxDepth: 1},
		},
		{
			name:    "custom spacing",
			parents: []int{tree.NoParent, 0, 0},
			opts:    Options{DepthSpacing: 2, OffsetSpacing: 3},
			want:    []point{{0, 1.5}, {2, 0}, {2, 3}},
			bounds:  treelayout.Bounds{MinOffset: 0, MaxOffset: 3, MinDepth: 0, MaxDepth: 2},
		},
		{
			name:    "child listed before parent",
			parents: []int{2, 2, tree.NoParent},
			want:    []point{{1, 0}, {1, 1}, {0, 0.5}},
			bounds:  treelayout.Bounds{MinOffset: 0, MaxOffset: 1, MinDepth: 0, MaxDepth: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Generate(tree.MustNew(tt.parents, nil), tt.opts)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			got := positions(l)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d positions, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("vertex %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
			if l.Bounds() != tt.bounds {
				t.Errorf("Bounds() = %+v, want %+v", l.Bounds(), tt.bounds)
			}
			if err := l.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestGenerateEmpty(t *testing.T) {
	l, err := Generate(tree.MustNew(nil, nil), Options{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if l.Size() != 0 {
		t.Errorf("Size() = %d, want 0", l.Size())
	}
	if l.Bounds() != (treelayout.Bounds{}) {
		t.Errorf("Bounds() = %+v, want zero box", l.Bounds())
	}
}

func TestGenerateBoundsMatchRecompute(t *testing.T) {
	tr := tree.MustNew([]int{tree.NoParent, 0, 0, 1, 1, 1, 2, tree.NoParent, 7}, nil)
	l := MustGenerate(tr, Options{DepthSpacing: 1.5, OffsetSpacing: 0.5, RootGap: 2})
	if got, want := l.Bounds(), l.RecomputeBounds(); got != want {
		t.Errorf("Bounds() = %+v, RecomputeBounds() = %+v", got, want)
	}
}

func TestGenerateParentCentered(t *testing.T) {
	tr := tree.MustNew([]int{tree.NoParent, 0, 0, 0, 1, 1, 3}, nil)
	l := MustGenerate(tr, Options{})
	for v := range tr.Size() {
		kids := tr.Children(v)
		if len(kids) == 0 {
			continue
		}
		want := (l.Vertex(kids[0]).Offset() + l.Vertex(kids[len(kids)-1]).Offset()) / 2
		if got := l.Vertex(v).Offset(); got != want {
			t.Errorf("vertex %d offset = %v, want %v", v, got, want)
		}
	}
}

func TestGenerateDeepChain(t *testing.T) {
	const n = 100_000
	parents := make([]int, n)
	parents[0] = tree.NoParent
	for i := 1; i < n; i++ {
		parents[i] = i - 1
	}
	l := MustGenerate(tree.MustNew(parents, nil), Options{})
	if got := l.MaxDepth(); got != n-1 {
		t.Errorf("MaxDepth() = %v, want %d", got, n-1)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", Options{}, false},
		{"custom", Options{DepthSpacing: 2, OffsetSpacing: 0.25, RootGap: 3}, false},
		{"negative depth spacing", Options{DepthSpacing: -1}, true},
		{"nan offset spacing", Options{OffsetSpacing: math.NaN()}, true},
		{"infinite depth spacing", Options{DepthSpacing: math.Inf(1)}, true},
		{"negative root gap", Options{RootGap: -1}, true},
		{"nan root gap", Options{RootGap: math.NaN()}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tree.MustNew([]int{tree.NoParent}, nil), tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Generate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !tlerrors.Is(err, tlerrors.ErrCodeInvalidOptions) {
				t.Errorf("error code = %v, want %v", tlerrors.GetCode(err), tlerrors.ErrCodeInvalidOptions)
			}
		})
	}
}
