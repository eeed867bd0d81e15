package array

import "fmt"

// Leaves decomposes v into its individual scalar cells in flat order,
// each wrapped as a rank-0 Value of the same kind — the traversal Each
// iterates over.
func Leaves(v Value) []Value {
	n := v.FlatLen()
	out := make([]Value, n)
	switch a := v.(type) {
	case NumArray:
		for i, x := range a.data {
			out[i] = Scalar(x)
		}
	case ByteArray:
		for i, x := range a.data {
			out[i] = ByteScalar(x)
		}
	case CharArray:
		for i, x := range a.data {
			out[i] = CharScalar(x)
		}
	case FuncArray:
		for i, x := range a.data {
			out[i] = FuncScalar(x)
		}
	default:
		panic(fmt.Sprintf("unsupported value kind %T", v))
	}
	return out
}

// Stack flattens a sequence of equally-shaped cell values (as produced
// by a per-leaf or per-row function call) into one array whose shape is
// prefix ++ cellShape. All cells must share a kind and shape.
func Stack(prefix Shape, cells []Value) (Value, error) {
	if len(cells) == 0 {
		return ReassembleEmpty(KindNum, Shape{}), nil
	}
	kind := cells[0].Kind()
	cellShape := cells[0].Shape()
	for _, c := range cells[1:] {
		if c.Kind() != kind {
			return nil, fmt.Errorf("cannot combine results of differing type (%s and %s)", kind, c.Kind())
		}
		if !c.Shape().Equal(cellShape) {
			return nil, fmt.Errorf("cannot combine results of differing %s and %s", cellShape.Describe(), c.Shape().Describe())
		}
	}
	assembled, err := Reassemble(cells)
	if err != nil {
		return nil, err
	}
	if prefix.FlatLen() == len(cells) && prefix.Rank() != 1 {
		return reshapeLeading(assembled, prefix)
	}
	return assembled, nil
}

// reshapeLeading replaces v's leading dimension (len(cells)) with the
// full prefix shape, keeping the trailing cell shape intact.
func reshapeLeading(v Value, prefix Shape) (Value, error) {
	tail := v.Shape().Tail()
	newShape := append(append(Shape{}, prefix...), tail...)
	switch a := v.(type) {
	case NumArray:
		return NewNum(newShape, a.data)
	case ByteArray:
		return NewByte(newShape, a.data)
	case CharArray:
		return NewChar(newShape, a.data)
	case FuncArray:
		return NewFunc(newShape, a.data)
	default:
		return nil, fmt.Errorf("unsupported value kind %T", v)
	}
}

// AsFloats returns v's flat data promoted to float64, and whether v's
// kind is eligible for a numeric fast path (Num or Byte).
func AsFloats(v Value) ([]float64, bool) {
	switch a := v.(type) {
	case NumArray:
		return a.data, true
	case ByteArray:
		out := make([]float64, len(a.data))
		for i, b := range a.data {
			out[i] = float64(b)
		}
		return out, true
	default:
		return nil, false
	}
}

// FromFloats builds a NumArray from a flat float64 buffer and shape —
// numeric fast paths always promote their result to Num (see DESIGN.md
// for the byte-widening rationale).
func FromFloats(shape Shape, data []float64) Value {
	return NumArray{shape: shape, data: data}
}

// AsFunc unwraps a rank-0 FuncArray to the single FnHandle it carries —
// the conversion every combinator needs after popping "the function"
// off the stack, since a callable flows through the stack as a Value
// like anything else.
func AsFunc(v Value) (FnHandle, bool) {
	fa, ok := v.(FuncArray)
	if !ok || fa.FlatLen() != 1 {
		return nil, false
	}
	return fa.data[0], true
}
