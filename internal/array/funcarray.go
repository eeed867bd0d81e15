package array

import "fmt"

// FuncArray is a dtype-tagged array of function handles.
type FuncArray struct {
	shape Shape
	data  []FnHandle
}

func NewFunc(shape Shape, data []FnHandle) (FuncArray, error) {
	if len(data) != shape.FlatLen() {
		return FuncArray{}, fmt.Errorf("data length %d doesn't match %s", len(data), shape.Describe())
	}
	return FuncArray{shape: shape, data: data}, nil
}

func FuncScalar(f FnHandle) FuncArray { return FuncArray{shape: Shape{}, data: []FnHandle{f}} }

func (a FuncArray) Kind() Kind         { return KindFunc }
func (a FuncArray) Shape() Shape       { return a.shape }
func (a FuncArray) Rank() int          { return a.shape.Rank() }
func (a FuncArray) FlatLen() int       { return len(a.data) }
func (a FuncArray) RowCount() int      { return a.shape.RowCount() }
func (a FuncArray) Data() []FnHandle   { return a.data }

func (a FuncArray) Row(i int) Value {
	shape, data, err := genericRow(a.shape, a.data, i)
	if err != nil {
		panic(err)
	}
	return FuncArray{shape: shape, data: data}
}

func (a FuncArray) Rows() []Value {
	n := a.RowCount()
	out := make([]Value, n)
	for i := 0; i < n; i++ {
		out[i] = a.Row(i)
	}
	return out
}

func (a FuncArray) Clone() Value { return a }

func (a FuncArray) String() string {
	return fmt.Sprintf("Func%s(%d handles)", a.shape, len(a.data))
}

func reassembleFunc(rows []Value) (Value, error) {
	cellShape := rows[0].Shape()
	datas := make([][]FnHandle, len(rows))
	for i, r := range rows {
		datas[i] = r.(FuncArray).data
	}
	shape, data := genericReassemble(cellShape, datas)
	return FuncArray{shape: shape, data: data}, nil
}
