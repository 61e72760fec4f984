// Package dsverrors defines the error taxonomy shared by every dsview
// component, wrapping github.com/grailbio/base/errors for composable,
// cause-preserving error messages.
package dsverrors

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Kind classifies the cause of an Error. The set mirrors the viewer's error
// taxonomy: Ok is the zero value and is never attached to a real error.
type Kind int

const (
	Ok Kind = iota
	Generic
	Memory
	FileIO
	Parse
	Display
	Cache
	InvalidArgs
	NotImplemented
)

func (k Kind) String() string {
	switch k {
	case Ok:
		return "ok"
	case Generic:
		return "generic"
	case Memory:
		return "memory"
	case FileIO:
		return "file_io"
	case Parse:
		return "parse"
	case Display:
		return "display"
	case Cache:
		return "cache"
	case InvalidArgs:
		return "invalid_args"
	case NotImplemented:
		return "not_implemented"
	default:
		return "unknown"
	}
}

// Error is a dsview error: a Kind plus an underlying cause, wrapped
// through grailbio/base/errors for composable messages.
type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.cause)
}

func (e *Error) Unwrap() error { return e.cause }

// E constructs a tagged Error, wrapping grailbio/base/errors.E(args...)
// and attaching one of our Kinds up front.
func E(kind Kind, args ...interface{}) error {
	return &Error{Kind: kind, cause: errors.E(args...)}
}

// Is reports whether err (or any error it wraps) carries the given Kind.
func Is(kind Kind, err error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			if e.Kind == kind {
				return true
			}
			err = e.cause
			continue
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
