package gzio

import (
	"errors"
	"fmt"
)

// Kind identifies which codec operation produced an Error.
type Kind string

const (
	KindJSONRead  Kind = "JSON_READ"
	KindJSONWrite Kind = "JSON_WRITE"
	KindTextRead  Kind = "TEXT_READ"
	KindTextWrite Kind = "TEXT_WRITE"
)

// IsJSON reports whether the kind belongs to the JSON codec.
func (k Kind) IsJSON() bool {
	return k == KindJSONRead || k == KindJSONWrite
}

// IsText reports whether the kind belongs to the text codec.
func (k Kind) IsText() bool {
	return k == KindTextRead || k == KindTextWrite
}

// IsRead reports whether the kind is a read operation.
func (k Kind) IsRead() bool {
	return k == KindJSONRead || k == KindTextRead
}

// IsWrite reports whether the kind is a write operation.
func (k Kind) IsWrite() bool {
	return k == KindJSONWrite || k == KindTextWrite
}

// Sentinel errors for classifying codec failures with errors.Is.
// The leaf sentinels match exactly one operation; ErrJSON and ErrText
// match both operations of their codec.
var (
	ErrJSON      = errors.New("json codec failure")
	ErrText      = errors.New("text codec failure")
	ErrJSONRead  = errors.New("json read failure")
	ErrJSONWrite = errors.New("json write failure")
	ErrTextRead  = errors.New("text read failure")
	ErrTextWrite = errors.New("text write failure")
)

// Error is the operational failure type returned by every codec
// operation. It carries the path of the file involved and a message
// preserving the underlying failure's description.
//
// Callers inspect it with errors.As, or classify it at any level of
// specificity with errors.Is against the package sentinels.
type Error struct {
	Kind    Kind
	Message string
	Path    string
	Cause   error
}

// Error returns a formatted error string including the kind, message, and cause if present.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause error for use with errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a sentinel covering this error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrJSON:
		return e.Kind.IsJSON()
	case ErrText:
		return e.Kind.IsText()
	case ErrJSONRead:
		return e.Kind == KindJSONRead
	case ErrJSONWrite:
		return e.Kind == KindJSONWrite
	case ErrTextRead:
		return e.Kind == KindTextRead
	case ErrTextWrite:
		return e.Kind == KindTextWrite
	}
	return false
}

// newError creates an Error for the given operation kind and path.
func newError(kind Kind, message, path string, cause error) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Path:    path,
		Cause:   cause,
	}
}
