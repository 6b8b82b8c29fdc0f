// Package errors defines the coded errors shared by the treelayout library,
// the CLI and the HTTP API.
//
// Every failure that reaches a user carries a [Code]. The CLI prints the
// message, and the server maps the code to an HTTP status:
//
//	if err := t.Validate(); err != nil {
//	    return errors.Wrap(errors.ErrCodeInvalidTree, err, "parse %s", path)
//	}
//	...
//	if errors.Is(err, errors.ErrCodeInvalidTree) { ... }
//
// Codes are grouped by prefix: INVALID_* for bad input, *_NOT_FOUND for
// missing resources, NETWORK_ERROR and TIMEOUT for backends, and
// INTERNAL_ERROR for bugs.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a stable, machine-readable error identifier.
type Code string

const (
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidTree    Code = "INVALID_TREE"
	ErrCodeInvalidBounds  Code = "INVALID_BOUNDS"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle   Code = "INVALID_STYLE"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidOptions Code = "INVALID_OPTIONS"

	ErrCodeIndexOutOfRange     Code = "INDEX_OUT_OF_RANGE"
	ErrCodePositionOutOfBounds Code = "POSITION_OUT_OF_BOUNDS"

	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeLayoutNotFound Code = "LAYOUT_NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"

	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// IsInvalid reports whether c is one of the INVALID_* input codes.
func (c Code) IsInvalid() bool { return strings.HasPrefix(string(c), "INVALID_") }

// IsNotFound reports whether c names a missing resource.
func (c Code) IsNotFound() bool { return strings.HasSuffix(string(c), "NOT_FOUND") }

// Error pairs a Code with a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause that stays reachable through errors.Is and
// errors.As.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// if there is none.
func GetCode(err error) Code {
	if e, ok := as(err); ok {
		return e.Code
	}
	return ""
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// UserMessage returns the message of the outermost *Error without its code
// prefix, or err.Error() for uncoded errors.
func UserMessage(err error) string {
	if e, ok := as(err); ok {
		return e.Message
	}
	return err.Error()
}

func as(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
