package combinator

import (
	"github.com/arraylang/loopmod/internal/array"
	"github.com/arraylang/loopmod/internal/fastpath"
	"github.com/arraylang/loopmod/internal/interperr"
)

// Table pops (f, xs, ys) and computes the outer combination over every
// element of xs against every element of ys, per spec.md §4.7. A
// recognized primitive takes the fastpath kernel (arithmetic,
// comparisons, join/couple); break is disallowed in either path.
func Table(m Machine) error {
	f, err := popFunc(m, "function")
	if err != nil {
		return err
	}
	xs, err := m.Pop("first array")
	if err != nil {
		return err
	}
	ys, err := m.Pop("second array")
	if err != nil {
		return err
	}

	if prim, flipped, ok := m.AsFlippedPrimitive(f); ok {
		if r, handled := fastpath.Table(prim, flipped, xs, ys); handled {
			recordDispatch(m, "table", true, false)
			m.Push(r)
			return nil
		}
	}
	recordDispatch(m, "table", false, false)

	xLeaves := array.Leaves(xs)
	yLeaves := array.Leaves(ys)
	message := "break is not allowed in table"
	cells := make([]array.Value, 0, len(xLeaves)*len(yLeaves))
	for _, x := range xLeaves {
		for _, y := range yLeaves {
			if err := callNoBreak(m, f, message, y, x); err != nil {
				return err
			}
			v, err := m.Pop("table result")
			if err != nil {
				return err
			}
			cells = append(cells, v)
		}
	}
	prefix := append(append(array.Shape{}, xs.Shape()...), ys.Shape()...)
	result, err := array.Stack(prefix, cells)
	if err != nil {
		return interperr.Wrap(err, "Cannot combine table's results")
	}
	m.Push(result)
	return nil
}
