package mapping

import (
	"bytes"
	"os"
	"strings"
	"testing"

	tlerrors "github.com/matzehuels/treelayout/pkg/errors"
)

func TestSerialize(t *testing.T) {
	var buf bytes.Buffer
	if err := (IndexValue{Index: 7, Value: 0.5}).Serialize(&buf); err != nil {
		t.Fatalf("Serialize() = %v", err)
	}
	if got, want := buf.String(), "{\"index\":7,\"value\":0.5}\n"; got != want {
		t.Errorf("Serialize() wrote %q, want %q", got, want)
	}

	var got IndexValue
	if err := got.Deserialize(&buf); err != nil {
		t.Fatalf("Deserialize() = %v", err)
	}
	if got != (IndexValue{Index: 7, Value: 0.5}) {
		t.Errorf("Deserialize() = %+v", got)
	}
}

func TestDeserializeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing value", `{"index": 1}`},
		{"missing index", `{"value": 1}`},
		{"negative index", `{"index": -1, "value": 1}`},
		{"unknown field", `{"index": 1, "value": 1, "weight": 2}`},
		{"not json", `index=1`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v IndexValue
			err := v.Deserialize(strings.NewReader(tt.input))
			if !tlerrors.Is(err, tlerrors.ErrCodeInvalidFormat) {
				t.Errorf("Deserialize() = %v, want INVALID_FORMAT", err)
			}
		})
	}
}

func ExampleIndexValue_Serialize() {
	_ = IndexValue{Index: 3, Value: 1.25}.Serialize(os.Stdout)
	// Output:
	// {"index":3,"value":1.25}
}
