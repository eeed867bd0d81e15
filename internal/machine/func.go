package machine

import (
	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/primitive"
)

// Func is a callable value native to this package: a Go closure
// wrapped with the signature/primitive metadata the combinators
// inspect before calling it. Real front ends (out of scope for this
// core — see spec.md §1) would instead hand over a compiled bytecode
// closure; VM.Call only needs something satisfying array.FnHandle plus
// a Body to run.
type Func struct {
	Name string
	Sig  array.Signature

	// Prim and Flipped describe a recognized primitive kernel, if any;
	// Prim is primitive.Unknown for ordinary user functions.
	Prim    primitive.Primitive
	Flipped bool

	// Body executes the function against m: it must pop exactly
	// Sig.Args values itself, and on ordinary (non-break) completion
	// push exactly Sig.Outputs values. On broke == true the VM leaves
	// whatever Body pushed on the stack as it is.
	Body func(m *VM) (broke bool, err error)

	// Invert, if set, returns this function's functional inverse
	// (used by repeat for negative counts).
	Invert func() (*Func, error)
}

func (f *Func) Signature() array.Signature { return f.Sig }

func (f *Func) String() string {
	if f.Name != "" {
		return f.Name
	}
	return "<fn>"
}
