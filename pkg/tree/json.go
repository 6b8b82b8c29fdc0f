package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	tlerrors "github.com/matzehuels/treelayout/pkg/errors"
)

// =============================================================================
// Wire Format
// =============================================================================

// Data is the serialization form of a tree. Two shapes are accepted:
//
//	{"vertices": [{"id": 0, "parent": -1, "label": "root"}, {"id": 1, "parent": 0}]}
//	{"parents": [-1, 0, 0], "labels": ["root", "a", "b"]}
//
// The vertex-list shape allows ids in any order as long as they cover
// 0..n-1 exactly once. Output always uses the vertex-list shape.
type Data struct {
	Vertices []Vertex `json:"vertices,omitempty" bson:"vertices,omitempty"`
	Parents  []int    `json:"parents,omitempty" bson:"parents,omitempty"`
	Labels   []string `json:"labels,omitempty" bson:"labels,omitempty"`
}

// Vertex is one entry of the vertex-list shape.
type Vertex struct {
	ID     int    `json:"id" bson:"id"`
	Parent int    `json:"parent" bson:"parent"`
	Label  string `json:"label,omitempty" bson:"label,omitempty"`
}

// ToData converts the tree to its serialization form.
func (t *Tree) ToData() Data {
	d := Data{Vertices: make([]Vertex, len(t.parents))}
	for v, p := range t.parents {
		d.Vertices[v] = Vertex{ID: v, Parent: p}
		if t.HasLabels() {
			d.Vertices[v].Label = t.labels[v]
		}
	}
	return d
}

// FromData builds a tree from its serialization form.
func FromData(d Data) (*Tree, error) {
	if len(d.Vertices) > 0 && len(d.Parents) > 0 {
		return nil, tlerrors.New(tlerrors.ErrCodeInvalidTree, "tree must use either vertices or parents, not both")
	}
	if len(d.Vertices) == 0 {
		return New(d.Parents, d.Labels)
	}

	vs := slices.Clone(d.Vertices)
	slices.SortFunc(vs, func(a, b Vertex) int { return a.ID - b.ID })

	parents := make([]int, len(vs))
	var labels []string
	for i, v := range vs {
		if v.ID != i {
			return nil, tlerrors.New(tlerrors.ErrCodeInvalidTree, "vertex ids must cover 0..%d exactly once (missing or duplicate id near %d)", len(vs)-1, i)
		}
		parents[i] = v.Parent
		if v.Label != "" {
			if labels == nil {
				labels = make([]string, len(vs))
			}
			labels[i] = v.Label
		}
	}
	return New(parents, labels)
}

// =============================================================================
// Tree Serialization API
// =============================================================================

// Marshal converts a tree to indented JSON bytes.
func Marshal(t *Tree) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(t, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON writes a tree as indented JSON to w.
func WriteJSON(t *Tree, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t.ToData()); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a JSON tree from r.
func ReadJSON(r io.Reader) (*Tree, error) {
	var d Data
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, tlerrors.Wrap(tlerrors.ErrCodeInvalidFormat, err, "decode tree")
	}
	return FromData(d)
}

// WriteFile writes a tree to a JSON file.
func WriteFile(t *Tree, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(t, f)
}

// ReadFile reads a tree from a JSON file.
func ReadFile(path string) (*Tree, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, tlerrors.Wrap(tlerrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
