package fastpath

import (
	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/primitive"
)

// Scan implements the fast path of spec.md §4.3 for rank >= 1 inputs
// (rank-0 is an error the caller must reject before reaching here).
func Scan(prim primitive.Primitive, flipped bool, xs array.Value) (result array.Value, handled bool) {
	if !prim.ArithSet() {
		return nil, false
	}
	data, ok := array.AsFloats(xs)
	if !ok {
		return nil, false
	}
	shape := xs.Shape()
	rowCount := shape.RowCount()
	if rowCount == 0 {
		return array.FromFloats(shape, []float64{}), true
	}

	if shape.Rank() == 1 {
		out := make([]float64, len(data))
		out[0] = data[0]
		for i := 1; i < len(data); i++ {
			out[i] = Apply(prim, flipped, out[i-1], data[i])
		}
		return array.FromFloats(shape, out), true
	}

	tail := shape.Tail()
	rowLen := tail.FlatLen()
	out := make([]float64, len(data))
	copy(out[:rowLen], data[:rowLen])
	for i := 1; i < rowCount; i++ {
		base := i * rowLen
		prevBase := (i - 1) * rowLen
		for j := 0; j < rowLen; j++ {
			out[base+j] = Apply(prim, flipped, out[prevBase+j], data[base+j])
		}
	}
	return array.FromFloats(shape, out), true
}
