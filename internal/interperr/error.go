// Package interperr constructs the plain-string error surfaces the
// looping-modifier engine raises (arity, shape-mismatch, empty-input,
// domain, and break-disallowed errors), mirroring the teacher's
// sentra/internal/errors package but scoped to the combinator core: no
// source location or call-stack rendering is needed here, only a
// message and — when one is available — the underlying cause captured
// with a real stack trace via github.com/pkg/errors.
package interperr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error is the concrete error type every combinator returns. Message is
// always the exact spec-mandated text (e.g. "Cannot reduce empty
// array"); Cause, when set, is available via errors.Unwrap for
// diagnosing a failure that originated below the combinator layer
// (formatting the unwrapped cause with %+v shows its captured stack;
// formatting Error itself prints only Message).
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Cause }

// New builds a combinator error with no underlying cause.
func New(message string) error {
	return &Error{Message: message}
}

// Newf is New with fmt.Sprintf formatting.
func Newf(format string, args ...interface{}) error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a stack-captured cause to a combinator-level message,
// used when a host call fails and the combinator needs to report both
// its own context and the original failure.
func Wrap(cause error, message string) error {
	if cause == nil {
		return New(message)
	}
	return &Error{Message: message, Cause: errors.WithStack(cause)}
}
