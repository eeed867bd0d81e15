package array

import "fmt"

// CharArray is a dtype-tagged array of rune elements.
type CharArray struct {
	shape Shape
	data  []rune
}

func NewChar(shape Shape, data []rune) (CharArray, error) {
	if len(data) != shape.FlatLen() {
		return CharArray{}, fmt.Errorf("data length %d doesn't match %s", len(data), shape.Describe())
	}
	return CharArray{shape: shape, data: data}, nil
}

func CharScalar(r rune) CharArray { return CharArray{shape: Shape{}, data: []rune{r}} }

func Str(s string) CharArray {
	rs := []rune(s)
	return CharArray{shape: Shape{len(rs)}, data: rs}
}

func (a CharArray) Kind() Kind    { return KindChar }
func (a CharArray) Shape() Shape  { return a.shape }
func (a CharArray) Rank() int     { return a.shape.Rank() }
func (a CharArray) FlatLen() int  { return len(a.data) }
func (a CharArray) RowCount() int { return a.shape.RowCount() }
func (a CharArray) Data() []rune  { return a.data }

func (a CharArray) Row(i int) Value {
	shape, data, err := genericRow(a.shape, a.data, i)
	if err != nil {
		panic(err)
	}
	return CharArray{shape: shape, data: data}
}

func (a CharArray) Rows() []Value {
	n := a.RowCount()
	out := make([]Value, n)
	for i := 0; i < n; i++ {
		out[i] = a.Row(i)
	}
	return out
}

func (a CharArray) Clone() Value { return a }

func (a CharArray) String() string {
	return fmt.Sprintf("Char%s%q", a.shape, string(a.data))
}

func reassembleChar(rows []Value) (Value, error) {
	cellShape := rows[0].Shape()
	datas := make([][]rune, len(rows))
	for i, r := range rows {
		datas[i] = r.(CharArray).data
	}
	shape, data := genericReassemble(cellShape, datas)
	return CharArray{shape: shape, data: data}, nil
}
