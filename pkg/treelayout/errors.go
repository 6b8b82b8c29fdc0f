package treelayout

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is matched by every [*IndexError] via errors.Is.
var ErrIndexOutOfRange = errors.New("vertex index out of range")

// IndexError reports an access to a vertex slot outside [0, Size).
// [Layout.At] and [Layout.Vertex] panic with it; [Layout.Lookup] returns it.
type IndexError struct {
	Index int
	Size  int
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("vertex index %d out of range [0, %d)", e.Index, e.Size)
}

// Is reports whether target is ErrIndexOutOfRange.
func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
