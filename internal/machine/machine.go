// Package machine defines the host stack-machine contract the
// combinators are built against (push, pop, call, call-with-break,
// signature inspection, error construction — spec.md §6), and a
// concrete implementation grounded on sentra's EnhancedVM: a flat value
// stack whose height is the slice length, and a hot-path profiler in the
// same spirit as EnhancedVM's loopCounter/instrCount bookkeeping. Panics
// raised inside a called function are not recovered.
package machine

import (
	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/primitive"
)

// Machine is the contract the looping-modifier engine requires from its
// host. Every combinator is written purely in terms of this interface;
// it never touches bytecode, globals, or frames directly.
type Machine interface {
	// Push leaves v on top of the stack.
	Push(v array.Value)
	// Pop removes and returns the top value. label identifies the
	// argument for error messages ("expected an array", etc.) when the
	// stack is empty.
	Pop(label string) (array.Value, error)
	// StackSize returns the current stack height.
	StackSize() int
	// TruncateStack discards down to height n, used to restore the
	// pre-call stack height after a permitted break.
	TruncateStack(n int)

	// Call invokes f with its arguments already pushed. If f's
	// signature reports Outputs == 1, exactly one value is left
	// pushed on return; Outputs == 0 leaves the stack unchanged
	// (modulo the consumed arguments).
	Call(f array.FnHandle) error
	// CallCatchBreak is Call, except a break signaled by f is
	// reported via broke instead of becoming a normal return. The
	// machine discards nothing on break: whatever f left on the stack
	// stays there, and combinators that need a balanced stack snapshot
	// its height before the call and truncate back to it.
	CallCatchBreak(f array.FnHandle) (broke bool, err error)
	// CallErrorOnBreak is Call, except a break signaled by f is
	// turned into an error carrying message — used by combinators
	// that do not permit break.
	CallErrorOnBreak(f array.FnHandle, message string) error

	// Error constructs a host error carrying message.
	Error(message string) error
	// Signature reports f's declared arity and output count.
	Signature(f array.FnHandle) array.Signature
	// AsFlippedPrimitive reports whether f is a recognized primitive
	// kernel, and whether a flip (argument-order swap) was applied at
	// the call site.
	AsFlippedPrimitive(f array.FnHandle) (prim primitive.Primitive, flipped bool, ok bool)
	// Invert returns f's functional inverse, used by repeat for
	// negative counts.
	Invert(f array.FnHandle) (array.FnHandle, error)
}
