// Package tree provides the rooted tree (or forest) that a layout is
// computed for.
//
// Vertices are identified by their index 0..n-1, the same index used by
// [treelayout.Layout]. The structure is a parent array: Parent(i) is the
// index of i's parent, or [NoParent] for a root. Children keep the order in
// which they appear in the parent array, which is also the left-to-right
// order used by layout generators.
//
//	t, err := tree.New([]int{tree.NoParent, 0, 0, 1}, nil)
//	t.Children(0) // [1 2]
//	t.Depths()    // [0 1 1 2]
package tree

import (
	"strconv"

	tlerrors "github.com/matzehuels/treelayout/pkg/errors"
)

// NoParent marks a root vertex in a parent array.
const NoParent = -1

// Tree is an immutable rooted forest over vertices 0..n-1.
// The zero value is an empty tree. A Tree is safe for concurrent reads.
type Tree struct {
	parents  []int
	labels   []string
	children [][]int
	roots    []int
	depths   []int
}

// New builds a tree from a parent array and optional labels.
//
// Returns an INVALID_TREE error if a parent index is out of range, a vertex
// is its own parent, the parent links contain a cycle, or labels is non-empty
// with a length different from parents.
func New(parents []int, labels []string) (*Tree, error) {
	n := len(parents)
	if err := tlerrors.ValidateSize(n); err != nil {
		return nil, err
	}
	if len(labels) != 0 && len(labels) != n {
		return nil, tlerrors.New(tlerrors.ErrCodeInvalidTree, "got %d labels for %d vertices", len(labels), n)
	}
	for _, l := range labels {
		if err := tlerrors.ValidateLabel(l); err != nil {
			return nil, err
		}
	}

	t := &Tree{
		parents:  append([]int(nil), parents...),
		children: make([][]int, n),
		depths:   make([]int, n),
	}
	if len(labels) > 0 {
		t.labels = append([]string(nil), labels...)
	}

	for v, p := range parents {
		switch {
		case p == NoParent:
			t.roots = append(t.roots, v)
		case p < 0 || p >= n:
			return nil, tlerrors.New(tlerrors.ErrCodeInvalidTree, "vertex %d has parent %d outside [0, %d)", v, p, n)
		case p == v:
			return nil, tlerrors.New(tlerrors.ErrCodeInvalidTree, "vertex %d is its own parent", v)
		default:
			t.children[p] = append(t.children[p], v)
		}
	}

	// Breadth-first from the roots; a vertex left unvisited hangs off a cycle.
	visited := 0
	queue := append([]int(nil), t.roots...)
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		visited++
		for _, c := range t.children[v] {
			t.depths[c] = t.depths[v] + 1
			queue = append(queue, c)
		}
	}
	if visited != n {
		for v := range n {
			if t.depths[v] == 0 && parents[v] != NoParent {
				return nil, tlerrors.New(tlerrors.ErrCodeInvalidTree, "vertex %d is not reachable from a root (cycle in parent links)", v)
			}
		}
	}

	return t, nil
}

// MustNew is like New but panics on error. Intended for tests and examples.
func MustNew(parents []int, labels []string) *Tree {
	t, err := New(parents, labels)
	if err != nil {
		panic(err)
	}
	return t
}

// Size returns the number of vertices.
func (t *Tree) Size() int { return len(t.parents) }

// Parent returns the parent of v, or NoParent for a root.
func (t *Tree) Parent(v int) int { return t.parents[v] }

// Parents returns a copy of the parent array.
func (t *Tree) Parents() []int { return append([]int(nil), t.parents...) }

// Children returns the children of v in parent-array order.
// The returned slice must not be modified.
func (t *Tree) Children(v int) []int { return t.children[v] }

// IsLeaf reports whether v has no children.
func (t *Tree) IsLeaf(v int) bool { return len(t.children[v]) == 0 }

// Roots returns the root vertices in index order.
// The returned slice must not be modified.
func (t *Tree) Roots() []int { return t.roots }

// Depth returns the level of v (roots are at level 0).
func (t *Tree) Depth(v int) int { return t.depths[v] }

// Depths returns a copy of every vertex's level.
func (t *Tree) Depths() []int { return append([]int(nil), t.depths...) }

// Height returns the number of levels, 0 for an empty tree.
func (t *Tree) Height() int {
	if len(t.depths) == 0 {
		return 0
	}
	h := 0
	for _, d := range t.depths {
		h = max(h, d)
	}
	return h + 1
}

// HasLabels reports whether the tree carries explicit labels.
func (t *Tree) HasLabels() bool { return len(t.labels) > 0 }

// Label returns the label of v, or its decimal index when no label is set.
func (t *Tree) Label(v int) string {
	if len(t.labels) > 0 && t.labels[v] != "" {
		return t.labels[v]
	}
	return strconv.Itoa(v)
}

// Edges calls fn for every (parent, child) pair in index order of the child.
func (t *Tree) Edges(fn func(parent, child int)) {
	for v, p := range t.parents {
		if p != NoParent {
			fn(p, v)
		}
	}
}

// Walk visits the forest depth-first in pre-order, roots left to right.
// It stops early when fn returns false.
func (t *Tree) Walk(fn func(v int) bool) {
	stack := make([]int, 0, len(t.roots))
	for i := len(t.roots) - 1; i >= 0; i-- {
		stack = append(stack, t.roots[i])
	}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(v) {
			return
		}
		kids := t.children[v]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
}
