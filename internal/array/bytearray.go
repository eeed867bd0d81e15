package array

import (
	"fmt"
	"strconv"
	"strings"
)

// ByteArray is a dtype-tagged array of u8 elements (Sentra's "Byte"
// dtype: packed booleans and small integers).
type ByteArray struct {
	shape Shape
	data  []byte
}

func NewByte(shape Shape, data []byte) (ByteArray, error) {
	if len(data) != shape.FlatLen() {
		return ByteArray{}, fmt.Errorf("data length %d doesn't match %s", len(data), shape.Describe())
	}
	return ByteArray{shape: shape, data: data}, nil
}

func ByteScalar(v byte) ByteArray { return ByteArray{shape: Shape{}, data: []byte{v}} }

func (a ByteArray) Kind() Kind    { return KindByte }
func (a ByteArray) Shape() Shape  { return a.shape }
func (a ByteArray) Rank() int     { return a.shape.Rank() }
func (a ByteArray) FlatLen() int  { return len(a.data) }
func (a ByteArray) RowCount() int { return a.shape.RowCount() }
func (a ByteArray) Data() []byte  { return a.data }

func (a ByteArray) Row(i int) Value {
	shape, data, err := genericRow(a.shape, a.data, i)
	if err != nil {
		panic(err)
	}
	return ByteArray{shape: shape, data: data}
}

func (a ByteArray) Rows() []Value {
	n := a.RowCount()
	out := make([]Value, n)
	for i := 0; i < n; i++ {
		out[i] = a.Row(i)
	}
	return out
}

func (a ByteArray) Clone() Value { return a }

func (a ByteArray) String() string {
	parts := make([]string, len(a.data))
	for i, v := range a.data {
		parts[i] = strconv.Itoa(int(v))
	}
	return fmt.Sprintf("Byte%s%s", a.shape, "["+strings.Join(parts, " ")+"]")
}

func reassembleByte(rows []Value) (Value, error) {
	cellShape := rows[0].Shape()
	datas := make([][]byte, len(rows))
	for i, r := range rows {
		datas[i] = r.(ByteArray).data
	}
	shape, data := genericReassemble(cellShape, datas)
	return ByteArray{shape: shape, data: data}, nil
}
