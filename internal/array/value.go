package array

import "fmt"

// Kind tags the element type carried by a Value, mirroring the
// dtype-tagged union described by the data model: f64, u8-byte, char,
// and function-handle.
type Kind int

const (
	KindNum Kind = iota
	KindByte
	KindChar
	KindFunc
)

func (k Kind) String() string {
	switch k {
	case KindNum:
		return "num"
	case KindByte:
		return "byte"
	case KindChar:
		return "char"
	case KindFunc:
		return "func"
	default:
		return "unknown"
	}
}

// Signature describes a callable's declared arity and output count, the
// minimal inspection contract the combinators need from a function
// value.
type Signature struct {
	Args    int
	Outputs int
}

// FnHandle is the minimal contract a callable value must expose to the
// array model. The stack machine (package machine) supplies concrete
// implementations; this package only needs enough to hold function
// values inside a FuncArray and to report arity for shape bookkeeping.
type FnHandle interface {
	Signature() Signature
	fmt.Stringer
}

// Value is any array-shaped, dtype-tagged value flowing through the
// stack machine: a tagged union of {Num, Byte, Char, Func} arrays, each
// carrying a shape and a contiguous flat data buffer of length
// shape.FlatLen().
type Value interface {
	Kind() Kind
	Shape() Shape
	Rank() int
	FlatLen() int
	// RowCount is shape[0] at rank>=1, else 1 (rank-0 arrays expose
	// their single cell as one row).
	RowCount() int
	// Row returns the rank-(n-1) subarray at index i. For a rank-0
	// array, Row(0) returns the array itself.
	Row(i int) Value
	// Rows decomposes the value into its full row sequence.
	Rows() []Value
	// Clone returns a value that shares the underlying data buffer
	// (the copy-on-write strategy: cloning a header is O(1); any
	// operation that transforms data builds a new backing slice
	// rather than mutating in place).
	Clone() Value
	fmt.Stringer
}

// Reassemble rebuilds a single Value of the given row count from a
// sequence of same-shaped, same-kind row values — the inverse of Rows.
// An empty rows slice is an error, since it carries no kind or cell
// shape; ReassembleEmpty builds a RowCount-0 array for that case.
func Reassemble(rows []Value) (Value, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("cannot reassemble zero rows without a cell shape")
	}
	kind := rows[0].Kind()
	cellShape := rows[0].Shape()
	for _, r := range rows[1:] {
		if r.Kind() != kind {
			return nil, fmt.Errorf("cannot reassemble rows of mixed type (%s and %s)", kind, r.Kind())
		}
		if !r.Shape().Equal(cellShape) {
			return nil, fmt.Errorf("cannot reassemble rows of differing %s and %s", cellShape.Describe(), r.Shape().Describe())
		}
	}
	switch kind {
	case KindNum:
		return reassembleNum(rows)
	case KindByte:
		return reassembleByte(rows)
	case KindChar:
		return reassembleChar(rows)
	case KindFunc:
		return reassembleFunc(rows)
	default:
		return nil, fmt.Errorf("cannot reassemble values of unknown kind")
	}
}

// ReassembleEmpty builds a RowCount-0 array of the given kind and cell
// shape, used when a combinator must preserve a leading dimension of 0.
func ReassembleEmpty(kind Kind, cellShape Shape) Value {
	shape := cellShape.Prepend(0)
	switch kind {
	case KindNum:
		return NumArray{shape: shape, data: []float64{}}
	case KindByte:
		return ByteArray{shape: shape, data: []byte{}}
	case KindChar:
		return CharArray{shape: shape, data: []rune{}}
	case KindFunc:
		return FuncArray{shape: shape, data: []FnHandle{}}
	default:
		panic("unknown kind")
	}
}
