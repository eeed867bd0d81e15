// Package array implements the array value model: dtype-tagged arrays
// with shape plus flat storage, row iteration, and shape-compatible
// pervasion support used by the combinator engine.
package array

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// Shape is an ordered sequence of non-negative dimensions.
type Shape []int

// Rank returns len(shape).
func (s Shape) Rank() int { return len(s) }

// FlatLen returns product(shape); rank 0 has FlatLen 1.
func (s Shape) FlatLen() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// RowCount is shape[0] at rank >= 1, else 1 (a rank-0 array has a
// single cell that participates in row iteration as its own row).
func (s Shape) RowCount() int {
	if len(s) == 0 {
		return 1
	}
	return s[0]
}

// Tail returns shape[1:], the shape of one row.
func (s Shape) Tail() Shape {
	if len(s) == 0 {
		return Shape{}
	}
	out := make(Shape, len(s)-1)
	copy(out, s[1:])
	return out
}

// RowLen is FlatLen(Tail()): the number of flat elements per row.
func (s Shape) RowLen() int {
	return s.Tail().FlatLen()
}

// Prepend returns a new shape with n as the leading dimension.
func (s Shape) Prepend(n int) Shape {
	out := make(Shape, 0, len(s)+1)
	out = append(out, n)
	out = append(out, s...)
	return out
}

// Clone returns a copy that does not alias s's backing array.
func (s Shape) Clone() Shape {
	return slices.Clone(s)
}

// Equal reports whether two shapes have identical dimensions.
func (s Shape) Equal(o Shape) bool {
	return slices.Equal(s, o)
}

// PrefixEqual reports whether the first n dimensions of s and o agree.
// Shapes shorter than n are never prefix-equal beyond their own length.
func PrefixEqual(s, o Shape, n int) bool {
	if n > len(s) || n > len(o) {
		return false
	}
	return slices.Equal(s[:n], o[:n])
}

func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = strconv.Itoa(d)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Describe renders a shape the way error messages in the spec do:
// "shape [2 3]".
func (s Shape) Describe() string {
	return fmt.Sprintf("shape %s", s.String())
}
