// Package fastpath implements the specialized numeric kernels that let
// reduce, fold, scan, and table bypass the stack machine entirely for
// recognized primitives, per spec.md §4.1/§4.3/§4.7. Every kernel here
// must agree with the generic, host-call-driven path modulo the
// left-to-right evaluation order the generic path also preserves.
package fastpath

import (
	"math"

	"github.com/arraylang/loopmod/internal/primitive"
)

// Apply evaluates a recognized arithmetic or comparison primitive on
// two operands. flipped swaps the operand order before applying —
// needed because reduce/scan fold left-to-right and a flipped
// primitive (one whose call-site arguments were swapped) must still
// reduce in the original, non-flipped operand order.
func Apply(prim primitive.Primitive, flipped bool, a, b float64) float64 {
	if flipped {
		a, b = b, a
	}
	switch prim {
	case primitive.Add:
		return a + b
	case primitive.Sub:
		return a - b
	case primitive.Mul:
		return a * b
	case primitive.Div:
		return a / b
	case primitive.Max:
		return math.Max(a, b)
	case primitive.Min:
		return math.Min(a, b)
	case primitive.Equal:
		return boolF(a == b)
	case primitive.NotEqual:
		return boolF(a != b)
	case primitive.Less:
		return boolF(a < b)
	case primitive.LessEqual:
		return boolF(a <= b)
	case primitive.Greater:
		return boolF(a > b)
	case primitive.GreaterEqual:
		return boolF(a >= b)
	default:
		panic("fastpath: unsupported primitive " + prim.String())
	}
}

func boolF(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
