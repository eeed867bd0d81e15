package fastpath

import (
	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/primitive"
)

// Table implements the fast path of spec.md §4.7: the outer product
// over elements of xs and ys. Arithmetic, comparison, and join/couple
// kernels are all handled here; join/couple produce a trailing axis of
// 2 (the paired elements) instead of a scalar cell. Iteration order is
// xs outermost (slowest), ys innermost (fastest), matching the spec's
// stack push convention of "ys-element then xs-element".
func Table(prim primitive.Primitive, flipped bool, xs, ys array.Value) (result array.Value, handled bool) {
	if !prim.TableSet() {
		return nil, false
	}
	ax, ok1 := array.AsFloats(xs)
	ay, ok2 := array.AsFloats(ys)
	if !ok1 || !ok2 {
		return nil, false
	}

	if prim == primitive.Join || prim == primitive.Couple {
		out := make([]float64, 0, len(ax)*len(ay)*2)
		for _, a := range ax {
			for _, b := range ay {
				out = append(out, a, b)
			}
		}
		shape := append(append(xs.Shape().Clone(), ys.Shape()...), 2)
		return array.FromFloats(shape, out), true
	}

	out := make([]float64, 0, len(ax)*len(ay))
	for _, a := range ax {
		for _, b := range ay {
			out = append(out, Apply(prim, flipped, a, b))
		}
	}
	shape := append(xs.Shape().Clone(), ys.Shape()...)
	return array.FromFloats(shape, out), true
}
