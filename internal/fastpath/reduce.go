package fastpath

import (
	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/primitive"
)

// Reduce implements the fast path of spec.md §4.1: handled is false
// whenever the input's dtype or the primitive's shape doesn't admit a
// fast path, signaling the caller to fall back to the generic,
// host-call-driven reduce.
func Reduce(prim primitive.Primitive, flipped bool, xs array.Value) (result array.Value, handled bool) {
	if !prim.ArithSet() {
		return nil, false
	}
	data, ok := array.AsFloats(xs)
	if !ok {
		return nil, false
	}
	shape := xs.Shape()

	switch shape.Rank() {
	case 0:
		return array.FromFloats(array.Shape{}, []float64{data[0]}), true
	case 1:
		if len(data) == 0 {
			id, ok := prim.Identity()
			if !ok {
				return nil, false
			}
			return array.FromFloats(array.Shape{}, []float64{id}), true
		}
		acc := data[0]
		for _, x := range data[1:] {
			acc = Apply(prim, flipped, acc, x)
		}
		return array.FromFloats(array.Shape{}, []float64{acc}), true
	default:
		rowCount := shape.RowCount()
		tail := shape.Tail()
		rowLen := tail.FlatLen()
		if rowCount == 0 {
			id, ok := prim.Identity()
			if !ok {
				return nil, false
			}
			out := make([]float64, rowLen)
			for i := range out {
				out[i] = id
			}
			return array.FromFloats(tail, out), true
		}
		acc := make([]float64, rowLen)
		copy(acc, data[:rowLen])
		for i := 1; i < rowCount; i++ {
			base := i * rowLen
			for j := 0; j < rowLen; j++ {
				acc[j] = Apply(prim, flipped, acc[j], data[base+j])
			}
		}
		return array.FromFloats(tail, acc), true
	}
}

// Fold is Reduce seeded by an explicit initial accumulator instead of
// the first row (spec.md §4.2): the empty-array case is always
// well-defined, so Fold never needs an identity value.
func Fold(prim primitive.Primitive, flipped bool, init float64, xs array.Value) (result array.Value, handled bool) {
	if !prim.ArithSet() {
		return nil, false
	}
	data, ok := array.AsFloats(xs)
	if !ok {
		return nil, false
	}
	shape := xs.Shape()

	switch shape.Rank() {
	case 0:
		return array.FromFloats(array.Shape{}, []float64{Apply(prim, flipped, init, data[0])}), true
	case 1:
		acc := init
		for _, x := range data {
			acc = Apply(prim, flipped, acc, x)
		}
		return array.FromFloats(array.Shape{}, []float64{acc}), true
	default:
		rowCount := shape.RowCount()
		tail := shape.Tail()
		rowLen := tail.FlatLen()
		acc := make([]float64, rowLen)
		for i := range acc {
			acc[i] = init
		}
		for i := 0; i < rowCount; i++ {
			base := i * rowLen
			for j := 0; j < rowLen; j++ {
				acc[j] = Apply(prim, flipped, acc[j], data[base+j])
			}
		}
		return array.FromFloats(tail, acc), true
	}
}
