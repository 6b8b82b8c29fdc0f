package treelayout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	tlerrors "github.com/matzehuels/treelayout/pkg/errors"
)

// =============================================================================
// Wire Format
// =============================================================================

// Data is the serialization form of a [Layout], shared by the JSON file
// format, the HTTP API and the document store.
type Data struct {
	Bounds   `bson:",inline"`
	Vertices []Point `json:"vertices" bson:"vertices"`
}

// Point is the serialization form of a [VertexPosition].
type Point struct {
	Depth  float64 `json:"depth" bson:"depth"`
	Offset float64 `json:"offset" bson:"offset"`
}

// ToData converts the layout to its serialization form.
func (l *Layout) ToData() Data {
	d := Data{
		Bounds:   l.bounds,
		Vertices: make([]Point, len(l.positions)),
	}
	for i, p := range l.positions {
		d.Vertices[i] = Point{Depth: p.depth, Offset: p.offset}
	}
	return d
}

// FromData rebuilds a layout from its serialization form. The bounding box
// is taken verbatim, as with [New].
func FromData(d Data) (*Layout, error) {
	if err := tlerrors.ValidateSize(len(d.Vertices)); err != nil {
		return nil, err
	}
	l := NewWithBounds(len(d.Vertices), d.Bounds)
	for i, p := range d.Vertices {
		l.positions[i] = NewVertexPosition(p.Depth, p.Offset)
	}
	return l, nil
}

// MarshalJSON implements json.Marshaler.
func (l *Layout) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.ToData())
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Layout) UnmarshalJSON(data []byte) error {
	var d Data
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	decoded, err := FromData(d)
	if err != nil {
		return err
	}
	*l = *decoded
	return nil
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// Marshal serializes a layout to pretty-printed JSON bytes.
// It fails if any coordinate is NaN or infinite, which JSON cannot encode.
func Marshal(l *Layout) ([]byte, error) {
	return json.MarshalIndent(l.ToData(), "", "  ")
}

// Unmarshal deserializes JSON bytes into a layout.
func Unmarshal(data []byte) (*Layout, error) {
	var d Data
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, tlerrors.Wrap(tlerrors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	return FromData(d)
}

// Write encodes a layout as indented JSON to w.
func Write(l *Layout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l.ToData()); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a JSON layout from r.
func Read(r io.Reader) (*Layout, error) {
	var d Data
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, tlerrors.Wrap(tlerrors.ErrCodeInvalidFormat, err, "decode layout")
	}
	return FromData(d)
}

// WriteFile writes a layout to a JSON file.
func WriteFile(l *Layout, path string) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a layout from a JSON file.
func ReadFile(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, tlerrors.Wrap(tlerrors.ErrCodeFileNotFound, err, "read %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
