package array

import (
	"fmt"
	"strconv"
	"strings"
)

// NumArray is a dtype-tagged array of float64 elements.
type NumArray struct {
	shape Shape
	data  []float64
}

// NewNum builds a NumArray, validating that len(data) == shape.FlatLen().
func NewNum(shape Shape, data []float64) (NumArray, error) {
	if len(data) != shape.FlatLen() {
		return NumArray{}, fmt.Errorf("data length %d doesn't match %s", len(data), shape.Describe())
	}
	return NumArray{shape: shape, data: data}, nil
}

// Scalar builds a rank-0 NumArray holding a single value.
func Scalar(v float64) NumArray {
	return NumArray{shape: Shape{}, data: []float64{v}}
}

// Vector builds a rank-1 NumArray from the given values.
func Vector(vs ...float64) NumArray {
	return NumArray{shape: Shape{len(vs)}, data: vs}
}

func (a NumArray) Kind() Kind     { return KindNum }
func (a NumArray) Shape() Shape   { return a.shape }
func (a NumArray) Rank() int      { return a.shape.Rank() }
func (a NumArray) FlatLen() int   { return len(a.data) }
func (a NumArray) RowCount() int  { return a.shape.RowCount() }
func (a NumArray) Data() []float64 { return a.data }

func (a NumArray) Row(i int) Value {
	shape, data, err := genericRow(a.shape, a.data, i)
	if err != nil {
		panic(err)
	}
	return NumArray{shape: shape, data: data}
}

func (a NumArray) Rows() []Value {
	n := a.RowCount()
	out := make([]Value, n)
	for i := 0; i < n; i++ {
		out[i] = a.Row(i)
	}
	return out
}

// Clone shares the existing data buffer (copy-on-write): cheap because
// nothing mutates data in place.
func (a NumArray) Clone() Value { return a }

func (a NumArray) String() string {
	parts := make([]string, len(a.data))
	for i, v := range a.data {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return fmt.Sprintf("Num%s%s", a.shape, "["+strings.Join(parts, " ")+"]")
}

func reassembleNum(rows []Value) (Value, error) {
	cellShape := rows[0].Shape()
	datas := make([][]float64, len(rows))
	for i, r := range rows {
		datas[i] = r.(NumArray).data
	}
	shape, data := genericReassemble(cellShape, datas)
	return NumArray{shape: shape, data: data}, nil
}
