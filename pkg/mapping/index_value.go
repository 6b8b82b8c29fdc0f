// Package mapping holds small value types shared by index-based mappings.
package mapping

import (
	"encoding/json"
	"io"

	tlerrors "github.com/matzehuels/treelayout/pkg/errors"
)

// IndexValue pairs an index with a value.
type IndexValue struct {
	Index uint64  `json:"index" bson:"index"`
	Value float64 `json:"value" bson:"value"`
}

// Serialize writes v as a JSON object.
func (v IndexValue) Serialize(w io.Writer) error {
	return json.NewEncoder(w).Encode(v)
}

// Deserialize reads a JSON object written by Serialize. Both fields are
// required.
func (v *IndexValue) Deserialize(r io.Reader) error {
	var raw struct {
		Index *uint64  `json:"index"`
		Value *float64 `json:"value"`
	}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return tlerrors.Wrap(tlerrors.ErrCodeInvalidFormat, err, "decode index value")
	}
	if raw.Index == nil || raw.Value == nil {
		return tlerrors.New(tlerrors.ErrCodeInvalidFormat, "index value requires both index and value")
	}
	v.Index, v.Value = *raw.Index, *raw.Value
	return nil
}
