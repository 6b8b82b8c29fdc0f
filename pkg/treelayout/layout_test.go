package treelayout

import (
	"errors"
	"math"
	"testing"

	tlerrors "github.com/matzehuels/treelayout/pkg/errors"
)

func TestNewStoresBoundsVerbatim(t *testing.T) {
	tests := []struct {
		name                   string
		size                   int
		minO, maxO, minD, maxD float64
	}{
		{"empty", 0, 0, 0, 0, 0},
		{"typical", 3, 0, 10, 0, 2},
		{"inverted box", 2, 5, -5, 3, 1},
		{"fractional", 1, 0.1, 0.30000000000000004, -0.5, 1e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.size, tt.minO, tt.maxO, tt.minD, tt.maxD)
			if l.Size() != tt.size {
				t.Errorf("Size() = %d, want %d", l.Size(), tt.size)
			}
			if l.MinOffset() != tt.minO {
				t.Errorf("MinOffset() = %v, want %v", l.MinOffset(), tt.minO)
			}
			if l.MaxOffset() != tt.maxO {
				t.Errorf("MaxOffset() = %v, want %v", l.MaxOffset(), tt.maxO)
			}
			if l.MinDepth() != tt.minD {
				t.Errorf("MinDepth() = %v, want %v", l.MinDepth(), tt.minD)
			}
			if l.MaxDepth() != tt.maxD {
				t.Errorf("MaxDepth() = %v, want %v", l.MaxDepth(), tt.maxD)
			}
		})
	}
}

func TestZeroLayout(t *testing.T) {
	var l Layout
	if l.Size() != 0 {
		t.Errorf("Size() = %d, want 0", l.Size())
	}
	if v := l.Vertices(); len(v) != 0 {
		t.Errorf("Vertices() = %v, want empty", v)
	}
	if b := l.Bounds(); b != (Bounds{}) {
		t.Errorf("Bounds() = %+v, want zero", b)
	}
}

func TestAtRoundTrip(t *testing.T) {
	l := New(4, 0, 1, 0, 1)
	for i := range l.Size() {
		l.At(i).SetDepth(float64(i))
		l.At(i).SetOffset(float64(-i))
	}

	l.At(2).SetDepth(42)

	for i := range l.Size() {
		wantDepth := float64(i)
		if i == 2 {
			wantDepth = 42
		}
		if got := l.At(i).Depth(); got != wantDepth {
			t.Errorf("At(%d).Depth() = %v, want %v", i, got, wantDepth)
		}
		if got := l.At(i).Offset(); got != float64(-i) {
			t.Errorf("At(%d).Offset() = %v, want %v", i, got, float64(-i))
		}
	}
}

func TestAtPointerStaysValid(t *testing.T) {
	l := New(2, 0, 0, 0, 0)
	p := l.At(1)
	l.At(0).SetDepth(1)
	p.SetOffset(7)

	if got := l.Vertex(1).Offset(); got != 7 {
		t.Errorf("Vertex(1).Offset() = %v, want 7", got)
	}
}

func TestAtOutOfRangePanics(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		index int
	}{
		{"negative", 3, -1},
		{"equal to size", 3, 3},
		{"beyond size", 3, 10},
		{"empty layout", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.size, 0, 0, 0, 0)
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("At() did not panic")
				}
				err, ok := r.(*IndexError)
				if !ok {
					t.Fatalf("panic value = %T, want *IndexError", r)
				}
				if err.Index != tt.index || err.Size != tt.size {
					t.Errorf("IndexError = %+v, want index %d size %d", err, tt.index, tt.size)
				}
				if !errors.Is(err, ErrIndexOutOfRange) {
					t.Error("errors.Is(err, ErrIndexOutOfRange) = false")
				}
			}()
			l.At(tt.index)
		})
	}
}

func TestLookup(t *testing.T) {
	l := New(2, 0, 0, 0, 0)

	p, err := l.Lookup(1)
	if err != nil {
		t.Fatalf("Lookup(1) error: %v", err)
	}
	p.SetDepth(5)
	if got := l.Vertex(1).Depth(); got != 5 {
		t.Errorf("Lookup pointer did not alias slot: Depth() = %v", got)
	}

	if _, err := l.Lookup(2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Lookup(2) error = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := l.Lookup(-1); err == nil {
		t.Error("Lookup(-1) should fail")
	}
}

func TestIndexErrorMessage(t *testing.T) {
	err := &IndexError{Index: 5, Size: 3}
	want := "vertex index 5 out of range [0, 3)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestVerticesOrderAndCopy(t *testing.T) {
	l := New(3, 0, 10, 0, 2)
	l.At(0).SetDepth(0)
	l.At(0).SetOffset(5)
	l.At(1).SetDepth(1)
	l.At(1).SetOffset(2)
	l.At(2).SetDepth(1)
	l.At(2).SetOffset(8)

	want := []VertexPosition{
		NewVertexPosition(0, 5),
		NewVertexPosition(1, 2),
		NewVertexPosition(1, 8),
	}
	got := l.Vertices()
	if len(got) != len(want) {
		t.Fatalf("len(Vertices()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Vertices()[%d] = %v, want %v", i, got[i], want[i])
		}
		if got[i] != l.Vertex(i) {
			t.Errorf("Vertices()[%d] = %v, Vertex(%d) = %v", i, got[i], i, l.Vertex(i))
		}
	}

	if b := l.Bounds(); b != (Bounds{MinOffset: 0, MaxOffset: 10, MinDepth: 0, MaxDepth: 2}) {
		t.Errorf("Bounds() changed: %+v", b)
	}

	got[0].SetDepth(99)
	if l.Vertex(0).Depth() != 0 {
		t.Error("writing to Vertices() result mutated the layout")
	}
}

func TestAll(t *testing.T) {
	l := New(3, 0, 0, 0, 0)
	for i := range l.Size() {
		l.At(i).SetOffset(float64(i * 10))
	}

	var idx []int
	for i, p := range l.All() {
		idx = append(idx, i)
		if p.Offset() != float64(i*10) {
			t.Errorf("All() position %d offset = %v", i, p.Offset())
		}
	}
	if len(idx) != 3 || idx[0] != 0 || idx[2] != 2 {
		t.Errorf("All() indices = %v, want [0 1 2]", idx)
	}

	count := 0
	for range l.All() {
		count++
		break
	}
	if count != 1 {
		t.Errorf("All() did not stop early: %d", count)
	}
}

func TestClone(t *testing.T) {
	l := New(1, 0, 1, 0, 1)
	l.At(0).SetDepth(1)

	c := l.Clone()
	c.At(0).SetDepth(0)

	if l.Vertex(0).Depth() != 1 {
		t.Error("Clone shares storage with original")
	}
	if c.Bounds() != l.Bounds() {
		t.Errorf("Clone bounds = %+v, want %+v", c.Bounds(), l.Bounds())
	}
}

func TestRecomputeBounds(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		l := New(0, 1, 2, 3, 4)
		if b := l.RecomputeBounds(); b != (Bounds{}) {
			t.Errorf("RecomputeBounds() = %+v, want zero", b)
		}
	})

	t.Run("scans positions without storing", func(t *testing.T) {
		l := New(3, 0, 0, 0, 0)
		*l.At(0) = NewVertexPosition(0, 5)
		*l.At(1) = NewVertexPosition(1, -2)
		*l.At(2) = NewVertexPosition(3, 8)

		want := Bounds{MinOffset: -2, MaxOffset: 8, MinDepth: 0, MaxDepth: 3}
		if b := l.RecomputeBounds(); b != want {
			t.Errorf("RecomputeBounds() = %+v, want %+v", b, want)
		}
		if l.Bounds() != (Bounds{}) {
			t.Errorf("RecomputeBounds modified stored box: %+v", l.Bounds())
		}

		l.SetBounds(want)
		if l.MaxDepth() != 3 {
			t.Errorf("MaxDepth() after SetBounds = %v, want 3", l.MaxDepth())
		}
	})

	t.Run("skips NaN", func(t *testing.T) {
		l := New(2, 0, 0, 0, 0)
		*l.At(0) = NewVertexPosition(math.NaN(), 4)
		*l.At(1) = NewVertexPosition(2, math.NaN())

		want := Bounds{MinOffset: 4, MaxOffset: 4, MinDepth: 2, MaxDepth: 2}
		if b := l.RecomputeBounds(); b != want {
			t.Errorf("RecomputeBounds() = %+v, want %+v", b, want)
		}
	})
}

func TestWidthHeight(t *testing.T) {
	l := New(0, -2, 8, 1, 4)
	if l.Width() != 10 {
		t.Errorf("Width() = %v, want 10", l.Width())
	}
	if l.Height() != 3 {
		t.Errorf("Height() = %v, want 3", l.Height())
	}
}

func TestValidate(t *testing.T) {
	build := func(b Bounds, pts ...VertexPosition) *Layout {
		l := NewWithBounds(len(pts), b)
		for i, p := range pts {
			*l.At(i) = p
		}
		return l
	}
	box := Bounds{MinOffset: 0, MaxOffset: 10, MinDepth: 0, MaxDepth: 2}

	tests := []struct {
		name     string
		layout   *Layout
		wantCode tlerrors.Code
	}{
		{"empty", build(Bounds{}), ""},
		{"consistent", build(box, NewVertexPosition(0, 5), NewVertexPosition(2, 10)), ""},
		{"inverted offsets", build(Bounds{MinOffset: 3, MaxOffset: 1}), tlerrors.ErrCodeInvalidBounds},
		{"inverted depths", build(Bounds{MinDepth: 3, MaxDepth: 1}), tlerrors.ErrCodeInvalidBounds},
		{"infinite box", build(Bounds{MaxOffset: math.Inf(1)}), tlerrors.ErrCodeInvalidBounds},
		{"outside box", build(box, NewVertexPosition(3, 5)), tlerrors.ErrCodePositionOutOfBounds},
		{"NaN position", build(box, NewVertexPosition(math.NaN(), 5)), tlerrors.ErrCodePositionOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.layout.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !tlerrors.Is(err, tt.wantCode) {
				t.Errorf("Validate() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{MinOffset: 0, MaxOffset: 1, MinDepth: 0, MaxDepth: 1}
	tests := []struct {
		p    VertexPosition
		want bool
	}{
		{NewVertexPosition(0, 0), true},
		{NewVertexPosition(1, 1), true},
		{NewVertexPosition(0.5, 0.5), true},
		{NewVertexPosition(-0.1, 0.5), false},
		{NewVertexPosition(0.5, 1.1), false},
	}
	for _, tt := range tests {
		if got := b.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}
